package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Soulima01/Pranaya/internal/middleware"
	"github.com/Soulima01/Pranaya/internal/store"
	"github.com/Soulima01/Pranaya/internal/utils"
)

// TrackerHandler serves the health drawer: hydration, medications, vaccines
// and cycle date.
type TrackerHandler struct {
	Store *store.Store
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(s *store.Store) *TrackerHandler {
	return &TrackerHandler{Store: s}
}

// TrackersResponse bundles the tracker state with the derived water goal.
type TrackersResponse struct {
	Trackers  store.Trackers `json:"trackers"`
	WaterGoal int            `json:"waterGoal"`
}

// GetTrackers returns the tracker state. Opening the tracking surface is the
// pull-based trigger for the daily reset check, so it runs here.
func (h *TrackerHandler) GetTrackers(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	state, err := h.Store.Trackers(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load trackers: "+err.Error())
		return
	}

	utils.Success(c, "Trackers fetched successfully", TrackersResponse{
		Trackers:  state.Trackers,
		WaterGoal: state.WaterGoal(),
	})
}

// AddWaterRequest represents the request body for logging water intake.
type AddWaterRequest struct {
	Amount int `json:"amount"` // millilitres; one glass (250) when omitted
}

// AddWater logs water intake and returns the new daily total.
func (h *TrackerHandler) AddWater(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req AddWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	total, err := h.Store.AddWater(userID, req.Amount)
	if err != nil {
		utils.InternalServerError(c, "Failed to log water: "+err.Error())
		return
	}

	utils.Success(c, "Water logged", gin.H{"water": total})
}

// AddMedicationRequest represents the request body for adding a medication.
type AddMedicationRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddMedication appends a new unchecked medication to the daily checklist.
func (h *TrackerHandler) AddMedication(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req AddMedicationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	med, err := h.Store.AddMedication(userID, req.Name)
	if err != nil {
		utils.InternalServerError(c, "Failed to add medication: "+err.Error())
		return
	}

	utils.Created(c, "Medication added", med)
}

// ToggleMedicationRequest represents the request body for toggling a
// medication. Taken is optional: absent means flip the current flag.
type ToggleMedicationRequest struct {
	Taken *bool `json:"taken"`
}

// ToggleMedication flips or explicitly sets a medication's taken flag.
func (h *TrackerHandler) ToggleMedication(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req ToggleMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	med, err := h.Store.ToggleMedication(userID, c.Param("id"), req.Taken)
	if err != nil {
		utils.InternalServerError(c, "Failed to toggle medication: "+err.Error())
		return
	}
	if med == nil {
		utils.NotFound(c, "Medication not found")
		return
	}

	utils.Success(c, "Medication updated", med)
}

// RemoveMedication deletes a medication from the checklist.
func (h *TrackerHandler) RemoveMedication(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.Store.RemoveMedication(userID, c.Param("id")); err != nil {
		utils.InternalServerError(c, "Failed to remove medication: "+err.Error())
		return
	}

	utils.Success(c, "Medication removed", nil)
}

// AddVaccineRequest represents the request body for recording a vaccine.
type AddVaccineRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddVaccine records a vaccine. Vaccines persist across daily resets.
func (h *TrackerHandler) AddVaccine(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req AddVaccineRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Store.AddVaccine(userID, req.Name); err != nil {
		utils.InternalServerError(c, "Failed to add vaccine: "+err.Error())
		return
	}

	utils.Created(c, "Vaccine recorded", gin.H{"name": req.Name})
}

// RemoveVaccine removes vaccine records matching the exact name.
func (h *TrackerHandler) RemoveVaccine(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	name := c.Param("name")
	if err := h.Store.RemoveVaccine(userID, name); err != nil {
		utils.InternalServerError(c, "Failed to remove vaccine: "+err.Error())
		return
	}

	utils.Success(c, "Vaccine removed", nil)
}

// SetPeriodDateRequest represents the request body for updating the cycle date.
type SetPeriodDateRequest struct {
	Date string `json:"date" binding:"required"`
}

// SetPeriodDate overwrites the last recorded cycle-start date.
func (h *TrackerHandler) SetPeriodDate(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req SetPeriodDateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Store.SetPeriodDate(userID, req.Date); err != nil {
		utils.InternalServerError(c, "Failed to set period date: "+err.Error())
		return
	}

	utils.Success(c, "Period date updated", gin.H{"periodDate": req.Date})
}
