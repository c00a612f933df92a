package portal

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// rosterEntry is one account of the built-in demo roster, used when no
// remote client is configured.
type rosterEntry struct {
	user     User
	password string
}

var demoRoster = []rosterEntry{
	{User{ID: "1", Name: "John Doe", Email: "patient@demo.com", Type: UserTypePatient, Phone: "+91 98765 43210"}, "patient123"},
	{User{ID: "2", Name: "Sarah Smith", Email: "sarah@demo.com", Type: UserTypePatient, Phone: "+91 98765 43211"}, "demo123"},
	{User{ID: "1", Name: "Dr. Ramesh Kumar", Email: "doctor@demo.com", Type: UserTypeDoctor, Specialization: "General Physician", Phone: "+919876543220"}, "doctor123"},
	{User{ID: "2", Name: "Dr. Priya Sharma", Email: "drpriya@demo.com", Type: UserTypeDoctor, Specialization: "Dermatologist", Phone: "+919876543221"}, "demo123"},
}

// sessionState is the durable form of an authenticated session: the
// identity, its role tag and the bearer token, always written and cleared
// together. Without the token a restored session could not make a single
// authenticated call until the next login.
type sessionState struct {
	User  *User  `json:"user"`
	Role  string `json:"role"`
	Token string `json:"token,omitempty"`
}

// Session holds the currently authenticated identity and keeps a durable
// copy of it across restarts. All methods are safe for interleaved use; the
// credential check inside Login is atomic with respect to other calls.
type Session struct {
	mu      sync.Mutex
	path    string
	client  *Client // nil means check the demo roster locally
	user    *User
	loading bool
	log     zerolog.Logger
}

// NewSession creates a session persisted at path. client may be nil, in
// which case Login checks the built-in demo roster instead of the server.
// The session reports loading=true until Restore has run.
func NewSession(path string, client *Client, log zerolog.Logger) *Session {
	return &Session{
		path:    path,
		client:  client,
		loading: true,
		log:     log.With().Str("component", "session").Logger(),
	}
}

// Restore loads a previously persisted identity. It fails soft: any read or
// parse problem yields an empty session and is never surfaced to the caller.
// loading is cleared exactly once, whatever the outcome.
func (s *Session) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Debug().Err(err).Msg("could not read persisted session")
		}
		return
	}

	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt storage resets to an empty session rather than failing
		// startup.
		s.log.Debug().Err(err).Msg("persisted session is corrupt, resetting")
		return
	}
	if state.User == nil || state.Role != string(state.User.Type) {
		return
	}
	s.user = state.User
	if s.client != nil && state.Token != "" {
		s.client.SetToken(state.Token)
	}
}

// Login checks the credentials and, on a match, installs and persists the
// identity. A credential mismatch returns (false, nil) and mutates nothing.
// Transport and server failures are returned as classified errors.
func (s *Session) Login(ctx context.Context, email, password string, userType UserType) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *User
	var token string
	if s.client != nil {
		res, err := s.client.Login(ctx, email, password, userType)
		if err != nil {
			var he *HTTPError
			if errors.As(err, &he) && he.Status == 401 {
				return false, nil
			}
			return false, err
		}
		user = &res.User
		token = res.Token
	} else {
		for _, entry := range demoRoster {
			if entry.user.Email == email && entry.password == password && entry.user.Type == userType {
				u := entry.user
				user = &u
				break
			}
		}
		if user == nil {
			return false, nil
		}
	}

	if err := s.persist(user, token); err != nil {
		s.log.Warn().Err(err).Msg("could not persist session")
	}
	s.user = user
	return true, nil
}

// Logout clears the active identity and its persisted copy. It is
// idempotent.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn().Err(err).Msg("could not remove persisted session")
	}
	if s.client != nil {
		s.client.SetToken("")
	}
}

// Current returns a copy of the active identity, or nil.
func (s *Session) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Loading reports whether the initial Restore has not yet completed.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// persist writes identity, role tag and token together, via rename so a
// crash never leaves a half-written state file.
func (s *Session) persist(user *User, token string) error {
	state := sessionState{User: user, Role: string(user.Type), Token: token}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
