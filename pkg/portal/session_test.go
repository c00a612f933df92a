package portal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return NewSession(path, nil, zerolog.Nop()), path
}

func TestSession_LoginKnownPatient(t *testing.T) {
	s, path := newTestSession(t)
	s.Restore()

	ok, err := s.Login(context.Background(), "patient@demo.com", "patient123", UserTypePatient)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !ok {
		t.Fatal("Login() = false, want true")
	}
	if !s.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after login")
	}
	user := s.Current()
	if user == nil || user.Type != UserTypePatient {
		t.Errorf("Current() = %+v, want patient", user)
	}

	// Durable copy written.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("session file not written: %v", err)
	}
}

func TestSession_LoginWrongPassword(t *testing.T) {
	s, _ := newTestSession(t)
	s.Restore()

	ok, err := s.Login(context.Background(), "patient@demo.com", "nope", UserTypePatient)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if ok {
		t.Fatal("Login() = true with wrong password")
	}
	if s.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after failed login")
	}
}

func TestSession_LoginWrongRole(t *testing.T) {
	s, _ := newTestSession(t)
	s.Restore()

	// Correct password but the doctor role does not match.
	ok, _ := s.Login(context.Background(), "patient@demo.com", "patient123", UserTypeDoctor)
	if ok {
		t.Error("Login() = true for mismatched role")
	}
}

func TestSession_LogoutIdempotent(t *testing.T) {
	s, path := newTestSession(t)
	s.Restore()
	if _, err := s.Login(context.Background(), "doctor@demo.com", "doctor123", UserTypeDoctor); err != nil {
		t.Fatal(err)
	}

	s.Logout()
	if s.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file still present after logout: %v", err)
	}

	// Second logout with nothing persisted must not blow up.
	s.Logout()
	if s.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after double logout")
	}
}

func TestSession_RestoreValidState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	first := NewSession(path, nil, zerolog.Nop())
	first.Restore()
	if _, err := first.Login(context.Background(), "sarah@demo.com", "demo123", UserTypePatient); err != nil {
		t.Fatal(err)
	}

	second := NewSession(path, nil, zerolog.Nop())
	if !second.Loading() {
		t.Error("Loading() = false before Restore")
	}
	second.Restore()
	if second.Loading() {
		t.Error("Loading() = true after Restore")
	}
	if !second.IsAuthenticated() {
		t.Fatal("IsAuthenticated() = false after restore of valid state")
	}
	if got := second.Current().Email; got != "sarah@demo.com" {
		t.Errorf("Current().Email = %q", got)
	}
}

func TestSession_RestoreCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewSession(path, nil, zerolog.Nop())
	s.Restore() // must not panic or error

	if s.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after corrupt restore")
	}
	if s.Loading() {
		t.Error("Loading() = true after corrupt restore")
	}
}

func TestSession_RestoreMissingFile(t *testing.T) {
	s, _ := newTestSession(t)
	s.Restore()
	if s.IsAuthenticated() || s.Loading() {
		t.Error("empty session expected when nothing was persisted")
	}
}

func TestSession_RestoreRoleMismatch(t *testing.T) {
	// A state file whose role tag disagrees with the stored identity is
	// treated as corrupt.
	path := filepath.Join(t.TempDir(), "session.json")
	state := `{"user":{"id":"1","name":"X","email":"x@y.z","type":"patient"},"role":"doctor"}`
	if err := os.WriteFile(path, []byte(state), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewSession(path, nil, zerolog.Nop())
	s.Restore()
	if s.IsAuthenticated() {
		t.Error("IsAuthenticated() = true for mismatched role tag")
	}
}

// newTokenGatedServer serves login plus a notifications route that rejects
// requests without the issued bearer token, like the real API does.
func newTokenGatedServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"user":    map[string]any{"id": "1", "name": "John Doe", "email": "patient@demo.com", "type": "patient"},
				"token":   "tok123",
			})
		case strings.HasPrefix(r.URL.Path, "/api/notifications/"):
			if r.Header.Get("Authorization") != "Bearer tok123" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{"error": "Authorization header required"})
				return
			}
			json.NewEncoder(w).Encode(NotificationList{
				Notifications: []Notification{{ID: "n1", UserID: "1"}},
				UnreadCount:   1,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestSession_RestoreReinstallsToken(t *testing.T) {
	srv := newTokenGatedServer(t)
	defer srv.Close()
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewSession(path, NewClient(srv.URL), zerolog.Nop())
	first.Restore()
	ok, err := first.Login(context.Background(), "patient@demo.com", "patient123", UserTypePatient)
	if err != nil || !ok {
		t.Fatalf("Login() = %v, %v", ok, err)
	}

	// A fresh process: new client, state restored from disk only.
	client := NewClient(srv.URL)
	second := NewSession(path, client, zerolog.Nop())
	second.Restore()
	if !second.IsAuthenticated() {
		t.Fatal("IsAuthenticated() = false after restore")
	}

	// Authenticated calls must work straight away, no re-login.
	list, err := client.Notifications(context.Background(), "1", false, 0)
	if err != nil {
		t.Fatalf("Notifications() after restore error = %v", err)
	}
	if list.UnreadCount != 1 {
		t.Errorf("UnreadCount = %d, want 1", list.UnreadCount)
	}
}

func TestSession_RestoredSessionFeedsPoller(t *testing.T) {
	srv := newTokenGatedServer(t)
	defer srv.Close()
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewSession(path, NewClient(srv.URL), zerolog.Nop())
	first.Restore()
	if ok, err := first.Login(context.Background(), "patient@demo.com", "patient123", UserTypePatient); err != nil || !ok {
		t.Fatalf("Login() = %v, %v", ok, err)
	}

	client := NewClient(srv.URL)
	restored := NewSession(path, client, zerolog.Nop())
	restored.Restore()

	p := NewPoller(client, restored.Current().ID, DefaultPollInterval, zerolog.Nop())
	p.Start(context.Background())
	defer p.Stop()

	if got := len(p.Notifications()); got != 1 {
		t.Errorf("Notifications() = %d after restore, want 1", got)
	}
	if p.UnreadCount() != 1 {
		t.Errorf("UnreadCount() = %d, want 1", p.UnreadCount())
	}
}

func TestSession_LogoutClearsPersistedToken(t *testing.T) {
	srv := newTokenGatedServer(t)
	defer srv.Close()
	path := filepath.Join(t.TempDir(), "session.json")

	client := NewClient(srv.URL)
	s := NewSession(path, client, zerolog.Nop())
	s.Restore()
	if ok, err := s.Login(context.Background(), "patient@demo.com", "patient123", UserTypePatient); err != nil || !ok {
		t.Fatalf("Login() = %v, %v", ok, err)
	}
	s.Logout()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file still present after logout: %v", err)
	}
	if _, err := client.Notifications(context.Background(), "1", false, 0); !IsHTTPError(err) {
		t.Errorf("Notifications() after logout error = %v, want HTTPError", err)
	}
}

func TestSession_FailedLoginDoesNotTouchState(t *testing.T) {
	s, path := newTestSession(t)
	s.Restore()
	if _, err := s.Login(context.Background(), "patient@demo.com", "patient123", UserTypePatient); err != nil {
		t.Fatal(err)
	}

	ok, _ := s.Login(context.Background(), "patient@demo.com", "wrong", UserTypePatient)
	if ok {
		t.Fatal("unexpected login success")
	}
	// Prior identity and its durable copy both survive.
	if !s.IsAuthenticated() {
		t.Error("previous session lost after failed login")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("session file lost after failed login: %v", err)
	}
}
