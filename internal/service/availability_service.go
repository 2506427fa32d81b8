package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kashala/atm-finder-go/internal/models"
	"github.com/patrickmn/go-cache"
)

// StateStore is the remote home of availability states.
// Implemented by repository.StateRepository; tests use a fake.
type StateStore interface {
	FindByATM(ctx context.Context, atmID string) (*models.ATMState, error)
	Create(ctx context.Context, st *models.ATMState) error
	Update(ctx context.Context, id string, isAvailable bool, lastUpdated time.Time, userID string) error
	List(ctx context.Context) ([]models.ATMState, error)
}

// Notifier receives availability change events.
type Notifier interface {
	Notify(ev models.ChangeEvent)
}

type cachedState struct {
	Available   bool
	LastUpdated time.Time
}

// AvailabilityService keeps an optimistically-updated local copy of the
// per-ATM availability flags. A write updates the cache first, then the
// store, and rolls the cache back on failure. Writes to the same ATM id
// are serialized through a per-id mutex, so the find-then-write sequence
// cannot race against itself and create duplicate rows.
type AvailabilityService struct {
	store    StateStore
	notifier Notifier // may be nil

	states *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	savingMu sync.RWMutex
	saving   map[string]bool
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(store StateStore, notifier Notifier) *AvailabilityService {
	return &AvailabilityService{
		store:    store,
		notifier: notifier,
		states:   cache.New(30*time.Minute, time.Hour),
		locks:    make(map[string]*sync.Mutex),
		saving:   make(map[string]bool),
	}
}

// Refresh replaces the cached flags with the store's current state list.
func (s *AvailabilityService) Refresh(ctx context.Context) error {
	states, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh availability states: %w", err)
	}

	for _, st := range states {
		s.states.Set(st.ATMID, cachedState{Available: st.IsAvailable, LastUpdated: st.LastUpdated}, cache.DefaultExpiration)
	}
	return nil
}

// Get returns the cached availability flag for an ATM.
func (s *AvailabilityService) Get(atmID string) (available bool, known bool) {
	v, ok := s.states.Get(atmID)
	if !ok {
		return false, false
	}
	return v.(cachedState).Available, true
}

// Snapshot returns the cached flags and their last-updated timestamps.
func (s *AvailabilityService) Snapshot() (map[string]bool, map[string]time.Time) {
	flags := make(map[string]bool)
	updated := make(map[string]time.Time)
	for atmID, item := range s.states.Items() {
		st := item.Object.(cachedState)
		flags[atmID] = st.Available
		updated[atmID] = st.LastUpdated
	}
	return flags, updated
}

// Saving reports whether a write for the ATM is currently in flight.
func (s *AvailabilityService) Saving(atmID string) bool {
	s.savingMu.RLock()
	defer s.savingMu.RUnlock()
	return s.saving[atmID]
}

// Save records a new availability flag for an ATM. The cached value is
// updated before the store round trip and restored if the store write
// fails.
func (s *AvailabilityService) Save(ctx context.Context, atmID string, available bool, userID string) error {
	if atmID == "" {
		return fmt.Errorf("atm id is required")
	}
	if userID == "" {
		userID = "anonymous"
	}

	lock := s.lockFor(atmID)
	lock.Lock()
	defer lock.Unlock()

	s.setSaving(atmID, true)
	defer s.setSaving(atmID, false)

	prev, hadPrev := s.states.Get(atmID)

	now := time.Now().UTC()
	s.states.Set(atmID, cachedState{Available: available, LastUpdated: now}, cache.DefaultExpiration)

	event, err := s.persist(ctx, atmID, available, userID, now)
	if err != nil {
		// Rollback to the pre-call value.
		if hadPrev {
			s.states.Set(atmID, prev, cache.DefaultExpiration)
		} else {
			s.states.Delete(atmID)
		}
		return err
	}

	if s.notifier != nil {
		s.notifier.Notify(models.ChangeEvent{
			Event:       event,
			ATMID:       atmID,
			IsAvailable: available,
			LastUpdated: now,
		})
	}
	return nil
}

func (s *AvailabilityService) persist(ctx context.Context, atmID string, available bool, userID string, now time.Time) (string, error) {
	existing, err := s.store.FindByATM(ctx, atmID)
	if err != nil {
		return "", err
	}

	if existing != nil {
		if err := s.store.Update(ctx, existing.ID, available, now, userID); err != nil {
			return "", err
		}
		return "update", nil
	}

	st := &models.ATMState{
		ID:          uuid.NewString(),
		ATMID:       atmID,
		IsAvailable: available,
		LastUpdated: now,
		UserID:      userID,
	}
	if err := s.store.Create(ctx, st); err != nil {
		return "", err
	}
	return "create", nil
}

func (s *AvailabilityService) lockFor(atmID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[atmID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[atmID] = l
	}
	return l
}

func (s *AvailabilityService) setSaving(atmID string, v bool) {
	s.savingMu.Lock()
	defer s.savingMu.Unlock()
	if v {
		s.saving[atmID] = true
	} else {
		delete(s.saving, atmID)
	}
}

// List returns the store's state rows, most recent first.
func (s *AvailabilityService) List(ctx context.Context) ([]models.ATMState, error) {
	return s.store.List(ctx)
}
