package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/kashala/atm-finder-go/internal/database"
	"github.com/kashala/atm-finder-go/internal/models"
)

// testDB opens a throwaway database with migrations and seed data applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Seed(db); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}
	return db
}

func TestATMListUnfiltered(t *testing.T) {
	repo := NewATMRepository(testDB(t))

	atms, err := repo.List(context.Background(), models.ATMFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(atms) != len(database.LubumbashiATMs) {
		t.Errorf("got %d atms, want %d", len(atms), len(database.LubumbashiATMs))
	}
	for _, atm := range atms {
		if len(atm.Services) == 0 {
			t.Errorf("atm %s has no services after scan", atm.ID)
		}
	}
}

func TestATMListFilters(t *testing.T) {
	repo := NewATMRepository(testDB(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		filter models.ATMFilter
		check  func(t *testing.T, atms []models.ATM)
	}{
		{
			name:   "by bank",
			filter: models.ATMFilter{Bank: "Rawbank"},
			check: func(t *testing.T, atms []models.ATM) {
				if len(atms) != 4 {
					t.Errorf("got %d Rawbank atms, want 4", len(atms))
				}
				for _, atm := range atms {
					if atm.Bank != "Rawbank" {
						t.Errorf("atm %s has bank %q", atm.ID, atm.Bank)
					}
				}
			},
		},
		{
			name:   "open now",
			filter: models.ATMFilter{OpenNow: true},
			check: func(t *testing.T, atms []models.ATM) {
				for _, atm := range atms {
					if !atm.IsOpen {
						t.Errorf("atm %s is closed", atm.ID)
					}
				}
			},
		},
		{
			name:   "query matches name case-insensitively",
			filter: models.ATMFilter{Query: "aéroport"},
			check: func(t *testing.T, atms []models.ATM) {
				if len(atms) != 1 || atms[0].ID != "rawbank_4" {
					t.Errorf("got %+v, want only rawbank_4", atms)
				}
			},
		},
		{
			name:   "radius prefilter",
			filter: models.ATMFilter{Lat: -11.6647, Lon: 27.4794, RadiusKm: 1},
			check: func(t *testing.T, atms []models.ATM) {
				if len(atms) == 0 || len(atms) == len(database.LubumbashiATMs) {
					t.Errorf("bounding box kept %d of %d atms", len(atms), len(database.LubumbashiATMs))
				}
				for _, atm := range atms {
					if atm.ID == "rawbank_4" {
						t.Error("airport atm survived a 1km bounding box around the city center")
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atms, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			tt.check(t, atms)
		})
	}
}

func TestATMGetByID(t *testing.T) {
	repo := NewATMRepository(testDB(t))
	ctx := context.Background()

	atm, err := repo.GetByID(ctx, "rawbank_1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if atm == nil || atm.Name != "Rawbank - Avenue Mobutu" {
		t.Errorf("got %+v, want the Avenue Mobutu atm", atm)
	}

	missing, err := repo.GetByID(ctx, "nope")
	if err != nil {
		t.Fatalf("GetByID for a missing id failed: %v", err)
	}
	if missing != nil {
		t.Errorf("got %+v for a missing id, want nil", missing)
	}
}

func TestATMBanks(t *testing.T) {
	repo := NewATMRepository(testDB(t))

	banks, err := repo.Banks(context.Background())
	if err != nil {
		t.Fatalf("Banks failed: %v", err)
	}
	if len(banks) != 8 {
		t.Errorf("got %d banks, want 8: %v", len(banks), banks)
	}
	for i := 1; i < len(banks); i++ {
		if banks[i-1] >= banks[i] {
			t.Errorf("banks not sorted: %v", banks)
		}
	}
}

func TestStateRepositoryRoundTrip(t *testing.T) {
	repo := NewStateRepository(testDB(t))
	ctx := context.Background()

	st, err := repo.FindByATM(ctx, "rawbank_1")
	if err != nil {
		t.Fatalf("FindByATM failed: %v", err)
	}
	if st != nil {
		t.Fatalf("got %+v for an atm with no state, want nil", st)
	}

	created := &models.ATMState{
		ID:          "state-1",
		ATMID:       "rawbank_1",
		IsAvailable: true,
		LastUpdated: time.Now().UTC().Truncate(time.Second),
		UserID:      "user-1",
	}
	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	st, err = repo.FindByATM(ctx, "rawbank_1")
	if err != nil {
		t.Fatalf("FindByATM after create failed: %v", err)
	}
	if st == nil || !st.IsAvailable || st.UserID != "user-1" {
		t.Fatalf("got %+v after create", st)
	}

	if err := repo.Update(ctx, st.ID, false, time.Now().UTC(), "user-2"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	st, err = repo.FindByATM(ctx, "rawbank_1")
	if err != nil {
		t.Fatalf("FindByATM after update failed: %v", err)
	}
	if st.IsAvailable || st.UserID != "user-2" {
		t.Errorf("got %+v after update", st)
	}
}

func TestStateUpdateMissingRow(t *testing.T) {
	repo := NewStateRepository(testDB(t))
	if err := repo.Update(context.Background(), "ghost", true, time.Now(), "user-1"); err == nil {
		t.Error("Update of a missing row returned no error")
	}
}

func TestStateListOrder(t *testing.T) {
	repo := NewStateRepository(testDB(t))
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, atmID := range []string{"tmb_1", "bcdc_1", "equity_1"} {
		st := &models.ATMState{
			ID:          atmID + "-state",
			ATMID:       atmID,
			IsAvailable: true,
			LastUpdated: base.Add(time.Duration(i) * time.Hour),
			UserID:      "user-1",
		}
		if err := repo.Create(ctx, st); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	states, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(states) != 3 {
		t.Fatalf("got %d states, want 3", len(states))
	}
	if states[0].ATMID != "equity_1" || states[2].ATMID != "tmb_1" {
		t.Errorf("states not ordered newest first: %s, %s, %s",
			states[0].ATMID, states[1].ATMID, states[2].ATMID)
	}
}

func TestVisitRepository(t *testing.T) {
	repo := NewVisitRepository(testDB(t))
	ctx := context.Background()

	travelTime := 12
	entries := []*models.VisitEntry{
		{ID: "v1", UserID: "user-1", ATMName: "Rawbank - Avenue Mobutu", ATMAddress: "Avenue Mobutu", TravelTimeMin: &travelTime, CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "v2", UserID: "user-1", ATMName: "BCDC - Avenue Sendwe", ATMAddress: "Avenue Sendwe", CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "v3", UserID: "user-2", ATMName: "TMB - Avenue Kasavubu", ATMAddress: "Avenue Kasavubu", CreatedAt: time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC)},
	}
	for _, e := range entries {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	visits, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(visits) != 2 {
		t.Fatalf("got %d visits for user-1, want 2", len(visits))
	}
	if visits[0].ID != "v2" {
		t.Errorf("visits not newest first: %s before %s", visits[0].ID, visits[1].ID)
	}
	if visits[0].TravelTimeMin != nil {
		t.Errorf("v2 travel time = %v, want nil", *visits[0].TravelTimeMin)
	}
	if visits[1].TravelTimeMin == nil || *visits[1].TravelTimeMin != 12 {
		t.Errorf("v1 travel time = %v, want 12", visits[1].TravelTimeMin)
	}

	n, err := repo.DeleteByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("DeleteByUser failed: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d entries, want 2", n)
	}

	others, err := repo.ListByUser(ctx, "user-2")
	if err != nil {
		t.Fatalf("ListByUser for user-2 failed: %v", err)
	}
	if len(others) != 1 {
		t.Errorf("user-2 history shrank to %d entries", len(others))
	}
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	ctx := context.Background()

	u := &models.User{
		ID:           "user-1",
		Name:         "Kashala",
		Email:        "kashala@example.com",
		PasswordHash: "$2a$10$fakefakefakefakefakefa",
		Prefs:        map[string]interface{}{"hasSeenGuide": false},
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	byEmail, err := repo.GetByEmail(ctx, "kashala@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != "user-1" {
		t.Fatalf("got %+v by email", byEmail)
	}
	if seen, ok := byEmail.Prefs["hasSeenGuide"].(bool); !ok || seen {
		t.Errorf("prefs did not round-trip: %+v", byEmail.Prefs)
	}

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail for a missing email failed: %v", err)
	}
	if missing != nil {
		t.Errorf("got %+v for a missing email, want nil", missing)
	}

	if err := repo.UpdatePrefs(ctx, "user-1", map[string]interface{}{"hasSeenGuide": true, "lastLat": -11.66}); err != nil {
		t.Fatalf("UpdatePrefs failed: %v", err)
	}
	byID, err := repo.GetByID(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if seen, _ := byID.Prefs["hasSeenGuide"].(bool); !seen {
		t.Errorf("prefs not updated: %+v", byID.Prefs)
	}

	if err := repo.UpdatePrefs(ctx, "ghost", nil); err == nil {
		t.Error("UpdatePrefs for a missing user returned no error")
	}
}
