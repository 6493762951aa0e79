package store

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender enum
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// DefaultWaterAmount is one glass of water in millilitres.
const DefaultWaterAmount = 250

// fallbackWeightKg is assumed when the profile has no usable weight.
const fallbackWeightKg = 60

// mlPerKg is the hydration formula rate: 35 ml per kg of body weight.
const mlPerKg = 35

// dateLayout is the calendar-day key used for the daily reset. Day
// granularity only, no time-of-day.
const dateLayout = "2006-01-02"

// Profile holds the demographic and medical fields collected during the
// onboarding assessment. Numeric fields are kept as strings exactly as the
// user entered them; consumers apply fallbacks when parsing.
type Profile struct {
	Name               string `json:"name"`
	Age                string `json:"age"`
	Height             string `json:"height"`
	Weight             string `json:"weight"`
	Gender             Gender `json:"gender"`
	IsDiabetic         string `json:"isDiabetic"`
	HasHypertension    string `json:"hasHypertension"`
	ExistingConditions string `json:"existingConditions"`
	IsAssessmentDone   bool   `json:"isAssessmentDone"`
}

// ProfilePatch carries a partial profile update. Only non-nil fields are
// merged; the profile record is never replaced wholesale. Values are stored
// as-is without validation, which is a caller (UI) responsibility.
type ProfilePatch struct {
	Name               *string `json:"name"`
	Age                *string `json:"age"`
	Height             *string `json:"height"`
	Weight             *string `json:"weight"`
	Gender             *Gender `json:"gender"`
	IsDiabetic         *string `json:"isDiabetic"`
	HasHypertension    *string `json:"hasHypertension"`
	ExistingConditions *string `json:"existingConditions"`
}

// Medication is a daily checklist entry. The id is assigned at creation and
// stable for the item's lifetime; Taken is cleared on every new calendar day.
type Medication struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Taken bool   `json:"taken"`
}

// Medications normalizes the stored medication list on load. Early snapshots
// stored medications as bare name strings; those entries no longer match the
// expected shape and are dropped rather than failing the whole snapshot.
type Medications []Medication

// UnmarshalJSON decodes each entry individually and skips anything that is
// not a well-formed medication object.
func (m *Medications) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*m = Medications{}
		return nil
	}

	meds := make(Medications, 0, len(raw))
	for _, entry := range raw {
		var med Medication
		if err := json.Unmarshal(entry, &med); err != nil {
			continue // legacy bare-string or otherwise malformed entry
		}
		if med.Name == "" {
			continue
		}
		if med.ID == "" {
			med.ID = uuid.New().String()
		}
		meds = append(meds, med)
	}
	*m = meds
	return nil
}

// Trackers is the mutable daily/ongoing health-tracking state. Water and the
// medication Taken flags are the only fields touched by the daily reset;
// vaccines, period date and medication membership persist indefinitely.
type Trackers struct {
	LastResetDate string      `json:"lastResetDate"`
	Water         int         `json:"water"`
	Meds          Medications `json:"meds"`
	Vaccines      []string    `json:"vaccines"`
	PeriodDate    string      `json:"periodDate,omitempty"`
}

// State is the persisted snapshot unit: one profile plus one tracker
// aggregate per user. Mutation methods are total and synchronous; callers
// serialize access and handle persistence.
type State struct {
	Profile  Profile  `json:"profile"`
	Trackers Trackers `json:"trackers"`
}

// NewState returns the default state for a user with no prior snapshot.
func NewState(now time.Time) *State {
	return &State{
		Profile: Profile{
			IsDiabetic:      "No",
			HasHypertension: "No",
		},
		Trackers: Trackers{
			LastResetDate: DateKey(now),
			Meds:          Medications{},
			Vaccines:      []string{},
		},
	}
}

// DateKey reduces a time to its calendar-day identity.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// normalize repairs a state decoded from an older or partial snapshot so the
// rest of the code never sees nil collections or a missing reset marker.
func (s *State) normalize(now time.Time) {
	if s.Trackers.Meds == nil {
		s.Trackers.Meds = Medications{}
	}
	if s.Trackers.Vaccines == nil {
		s.Trackers.Vaccines = []string{}
	}
	if s.Trackers.LastResetDate == "" {
		s.Trackers.LastResetDate = DateKey(now)
	}
}

// Merge applies a partial profile update field-by-field.
func (s *State) Merge(patch ProfilePatch) {
	if patch.Name != nil {
		s.Profile.Name = *patch.Name
	}
	if patch.Age != nil {
		s.Profile.Age = *patch.Age
	}
	if patch.Height != nil {
		s.Profile.Height = *patch.Height
	}
	if patch.Weight != nil {
		s.Profile.Weight = *patch.Weight
	}
	if patch.Gender != nil {
		s.Profile.Gender = *patch.Gender
	}
	if patch.IsDiabetic != nil {
		s.Profile.IsDiabetic = *patch.IsDiabetic
	}
	if patch.HasHypertension != nil {
		s.Profile.HasHypertension = *patch.HasHypertension
	}
	if patch.ExistingConditions != nil {
		s.Profile.ExistingConditions = *patch.ExistingConditions
	}
}

// CompleteAssessment marks the onboarding questionnaire as done. Idempotent.
func (s *State) CompleteAssessment() {
	s.Profile.IsAssessmentDone = true
}

// CheckDailyReset compares the current calendar date against the stored
// reset marker. On a new day it zeroes the water counter and unchecks every
// medication in one transition; within the same day it is a no-op. Safe to
// call arbitrarily often.
func (s *State) CheckDailyReset(now time.Time) bool {
	today := DateKey(now)
	if s.Trackers.LastResetDate == today {
		return false
	}
	s.Trackers.LastResetDate = today
	s.Trackers.Water = 0
	for i := range s.Trackers.Meds {
		s.Trackers.Meds[i].Taken = false
	}
	return true
}

// WaterGoal derives the daily hydration target from the stored body weight.
// The weight is free text, so only the leading digits count: "70.5" and
// "70 kg" both read as 70. Empty, zero or non-numeric weights fall back to
// 60 kg.
func (s *State) WaterGoal() int {
	weight := leadingInt(strings.TrimSpace(s.Profile.Weight))
	if weight <= 0 {
		weight = fallbackWeightKg
	}
	return weight * mlPerKg
}

// leadingInt parses the leading run of digits, returning 0 when the string
// does not start with one.
func leadingInt(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0
	}
	return n
}

// AddWater accumulates millilitres for the current day. There is no upper
// clamp; the display layer caps progress bars, not the stored value.
func (s *State) AddWater(amount int) int {
	s.Trackers.Water += amount
	return s.Trackers.Water
}

// AddMed appends a new unchecked medication and returns it.
func (s *State) AddMed(name string) Medication {
	med := Medication{ID: uuid.New().String(), Name: name}
	s.Trackers.Meds = append(s.Trackers.Meds, med)
	return med
}

// ToggleMed sets the matching entry's taken flag to the explicit status when
// given, otherwise flips it. Unknown ids are a no-op.
func (s *State) ToggleMed(id string, status *bool) *Medication {
	for i := range s.Trackers.Meds {
		if s.Trackers.Meds[i].ID != id {
			continue
		}
		if status != nil {
			s.Trackers.Meds[i].Taken = *status
		} else {
			s.Trackers.Meds[i].Taken = !s.Trackers.Meds[i].Taken
		}
		return &s.Trackers.Meds[i]
	}
	return nil
}

// RemoveMed deletes the matching entry. Unknown ids are a no-op.
func (s *State) RemoveMed(id string) {
	meds := s.Trackers.Meds[:0]
	for _, med := range s.Trackers.Meds {
		if med.ID != id {
			meds = append(meds, med)
		}
	}
	s.Trackers.Meds = meds
}

// FindMed returns the first medication whose name contains the given name,
// case-insensitively. This is the dedup heuristic used when the assistant
// reports a medicine intake; first match wins.
func (s *State) FindMed(name string) *Medication {
	needle := strings.ToLower(name)
	for i := range s.Trackers.Meds {
		if strings.Contains(strings.ToLower(s.Trackers.Meds[i].Name), needle) {
			return &s.Trackers.Meds[i]
		}
	}
	return nil
}

// AddVaccine appends a vaccine record. No dedup is enforced.
func (s *State) AddVaccine(name string) {
	s.Trackers.Vaccines = append(s.Trackers.Vaccines, name)
}

// RemoveVaccine filters out records matching the exact name.
func (s *State) RemoveVaccine(name string) {
	vaccines := s.Trackers.Vaccines[:0]
	for _, v := range s.Trackers.Vaccines {
		if v != name {
			vaccines = append(vaccines, v)
		}
	}
	s.Trackers.Vaccines = vaccines
}

// SetPeriodDate overwrites the last recorded cycle-start date.
func (s *State) SetPeriodDate(date string) {
	s.Trackers.PeriodDate = date
}
