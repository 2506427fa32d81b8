package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kashala/atm-finder-go/internal/database"
	"github.com/kashala/atm-finder-go/internal/repository"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "auth.db")})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	session, err := auth.Register(ctx, "Jean Kashala", "Jean@Example.com ", "motdepasse123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if session.Token == "" {
		t.Error("register returned an empty token")
	}
	if session.User.Email != "jean@example.com" {
		t.Errorf("email = %q, want normalized jean@example.com", session.User.Email)
	}
	if session.User.PasswordHash == "motdepasse123" {
		t.Error("password stored in plaintext")
	}

	session, err = auth.Login(ctx, "jean@example.com", "motdepasse123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	userID, err := auth.ParseToken(session.Token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if userID != session.User.ID {
		t.Errorf("token subject = %q, want %q", userID, session.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "Jean", "jean@example.com", "motdepasse123"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, err := auth.Register(ctx, "Autre Jean", "jean@example.com", "autremotdepasse")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate Register error = %v, want ErrEmailTaken", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "Jean", "jean@example.com", "motdepasse123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := auth.Login(ctx, "jean@example.com", "mauvais"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := auth.Login(ctx, "inconnu@example.com", "motdepasse123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	for _, tt := range []struct{ name, email, password string }{
		{"", "jean@example.com", "motdepasse123"},
		{"Jean", "", "motdepasse123"},
		{"Jean", "jean@example.com", ""},
	} {
		if _, err := auth.Register(ctx, tt.name, tt.email, tt.password); err == nil {
			t.Errorf("Register(%q, %q, %q) returned no error", tt.name, tt.email, tt.password)
		}
	}
}

func TestParseTokenRejectsForgery(t *testing.T) {
	auth := newTestAuthService(t)
	other := NewAuthService(nil, "other-secret", time.Hour)

	session, err := auth.Register(context.Background(), "Jean", "jean@example.com", "motdepasse123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := other.ParseToken(session.Token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
	if _, err := auth.ParseToken("not.a.token"); err == nil {
		t.Error("garbage token was accepted")
	}
}

func TestUpdatePrefsMergesAndDeletes(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	session, err := auth.Register(ctx, "Jean", "jean@example.com", "motdepasse123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	id := session.User.ID

	u, err := auth.UpdatePrefs(ctx, id, map[string]interface{}{"hasSeenGuide": true, "lastLat": -11.66})
	if err != nil {
		t.Fatalf("UpdatePrefs failed: %v", err)
	}
	if seen, _ := u.Prefs["hasSeenGuide"].(bool); !seen {
		t.Errorf("prefs after patch = %+v", u.Prefs)
	}

	u, err = auth.UpdatePrefs(ctx, id, map[string]interface{}{"lastLat": nil})
	if err != nil {
		t.Fatalf("UpdatePrefs with nil value failed: %v", err)
	}
	if _, ok := u.Prefs["lastLat"]; ok {
		t.Errorf("nil patch value did not delete the key: %+v", u.Prefs)
	}
	if _, ok := u.Prefs["hasSeenGuide"]; !ok {
		t.Errorf("unrelated key was dropped: %+v", u.Prefs)
	}

	stored, err := auth.GetUser(ctx, id)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if _, ok := stored.Prefs["lastLat"]; ok {
		t.Errorf("deleted key survived persistence: %+v", stored.Prefs)
	}
}
