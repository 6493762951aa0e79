package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Soulima01/Pranaya/internal/models"
)

// Store owns the persisted profile and tracker state for every user. It is
// an explicit handle injected into the surfaces that need it; there is no
// ambient global. Each operation is a read-modify-write of the user's
// snapshot performed under the store lock, so a daily reset can never be
// observed half-applied.
type Store struct {
	db  *gorm.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewStore creates a store backed by the given database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// load fetches and decodes a user's snapshot. A missing row or an
// unparseable blob initializes to defaults rather than failing.
func (s *Store) load(userID string) (*State, *models.HealthSnapshot, error) {
	var snap models.HealthSnapshot
	err := s.db.Where("user_id = ?", userID).First(&snap).Error
	if err == gorm.ErrRecordNotFound {
		return NewState(s.now()), &models.HealthSnapshot{UserID: userID}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	state := NewState(s.now())
	if len(snap.Data) > 0 {
		if err := json.Unmarshal(snap.Data, state); err != nil {
			// Corrupt blob: start over from defaults, keep the row.
			state = NewState(s.now())
		}
	}
	state.normalize(s.now())
	return state, &snap, nil
}

// save writes the state back into the snapshot row.
func (s *Store) save(state *State, snap *models.HealthSnapshot) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	snap.Data = data
	if err := s.db.Save(snap).Error; err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}

// update runs a mutation against the user's state and persists the result.
func (s *Store) update(userID string, mutate func(*State)) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, snap, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	mutate(state)
	if err := s.save(state, snap); err != nil {
		return nil, err
	}
	return state, nil
}

// State returns the user's current profile and trackers without mutating.
func (s *Store) State(userID string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, _, err := s.load(userID)
	return state, err
}

// Profile returns the user's profile.
func (s *Store) Profile(userID string) (Profile, error) {
	state, err := s.State(userID)
	if err != nil {
		return Profile{}, err
	}
	return state.Profile, nil
}

// SetProfile merges the patch into the user's profile and returns the result.
func (s *Store) SetProfile(userID string, patch ProfilePatch) (Profile, error) {
	state, err := s.update(userID, func(st *State) { st.Merge(patch) })
	if err != nil {
		return Profile{}, err
	}
	return state.Profile, nil
}

// CompleteAssessment marks onboarding as finished for the user.
func (s *Store) CompleteAssessment(userID string) (Profile, error) {
	state, err := s.update(userID, func(st *State) { st.CompleteAssessment() })
	if err != nil {
		return Profile{}, err
	}
	return state.Profile, nil
}

// Trackers runs the daily reset check and returns the user's tracker state.
// This is the pull-based entry point invoked whenever a tracking surface
// opens; the reset and the read happen under the same lock.
func (s *Store) Trackers(userID string) (*State, error) {
	return s.update(userID, func(st *State) { st.CheckDailyReset(s.now()) })
}

// AddWater adds the given amount (millilitres) and returns the new total.
func (s *Store) AddWater(userID string, amount int) (int, error) {
	if amount <= 0 {
		amount = DefaultWaterAmount
	}
	state, err := s.update(userID, func(st *State) { st.AddWater(amount) })
	if err != nil {
		return 0, err
	}
	return state.Trackers.Water, nil
}

// AddMedication appends a new unchecked medication.
func (s *Store) AddMedication(userID, name string) (Medication, error) {
	var med Medication
	_, err := s.update(userID, func(st *State) { med = st.AddMed(name) })
	return med, err
}

// ToggleMedication toggles or explicitly sets a medication's taken flag.
// Returns nil when the id does not match any entry.
func (s *Store) ToggleMedication(userID, id string, status *bool) (*Medication, error) {
	var med *Medication
	_, err := s.update(userID, func(st *State) {
		if m := st.ToggleMed(id, status); m != nil {
			copied := *m
			med = &copied
		}
	})
	return med, err
}

// RemoveMedication deletes a medication entry. Unknown ids are a no-op.
func (s *Store) RemoveMedication(userID, id string) error {
	_, err := s.update(userID, func(st *State) { st.RemoveMed(id) })
	return err
}

// LogMedication records an assistant-reported medicine intake. If an
// existing entry matches by case-insensitive substring its taken flag is
// set, otherwise a new unchecked entry is created. The find and the write
// happen in one update so two intents cannot race into duplicates.
func (s *Store) LogMedication(userID, name string) (Medication, bool, error) {
	var med Medication
	var created bool
	_, err := s.update(userID, func(st *State) {
		if existing := st.FindMed(name); existing != nil {
			taken := true
			st.ToggleMed(existing.ID, &taken)
			med = *existing
			med.Taken = true
			return
		}
		med = st.AddMed(name)
		created = true
	})
	return med, created, err
}

// AddVaccine appends a vaccine record.
func (s *Store) AddVaccine(userID, name string) error {
	_, err := s.update(userID, func(st *State) { st.AddVaccine(name) })
	return err
}

// RemoveVaccine removes records matching the exact name.
func (s *Store) RemoveVaccine(userID, name string) error {
	_, err := s.update(userID, func(st *State) { st.RemoveVaccine(name) })
	return err
}

// SetPeriodDate overwrites the last recorded cycle-start date.
func (s *Store) SetPeriodDate(userID, date string) error {
	_, err := s.update(userID, func(st *State) { st.SetPeriodDate(date) })
	return err
}
