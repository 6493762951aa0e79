package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Soulima01/Pranaya/internal/middleware"
	"github.com/Soulima01/Pranaya/internal/store"
	"github.com/Soulima01/Pranaya/internal/utils"
)

// ProfileHandler serves the onboarding health profile.
type ProfileHandler struct {
	Store *store.Store
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(s *store.Store) *ProfileHandler {
	return &ProfileHandler{Store: s}
}

// GetProfile returns the user's health profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	profile, err := h.Store.Profile(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to load profile: "+err.Error())
		return
	}

	utils.Success(c, "Profile fetched successfully", profile)
}

// UpdateProfile merges a partial update into the health profile. Fields are
// stored as submitted; the onboarding UI owns validation, the server does
// not reject values here.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var patch store.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	profile, err := h.Store.SetProfile(userID, patch)
	if err != nil {
		utils.InternalServerError(c, "Failed to update profile: "+err.Error())
		return
	}

	utils.Success(c, "Profile updated successfully", profile)
}

// CompleteAssessment marks the onboarding questionnaire as finished,
// unlocking the chat surface. Idempotent.
func (h *ProfileHandler) CompleteAssessment(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	profile, err := h.Store.CompleteAssessment(userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to complete assessment: "+err.Error())
		return
	}

	utils.Success(c, "Assessment completed", profile)
}
