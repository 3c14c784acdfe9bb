package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"labcollect/models"
)

// GenerateToken creates a random secure bearer token for a session
func GenerateToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// Session holds one user's server-side state: identity, current page,
// and the in-progress draft experiment. All access goes through methods;
// the mutex makes concurrent requests on the same token safe.
type Session struct {
	mu       sync.Mutex
	token    string
	email    string
	page     string
	draft    *models.Experiment
	lastSeen time.Time
}

func (s *Session) Token() string {
	return s.token
}

func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

func (s *Session) Page() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Navigate sets the current page. Any page is reachable from any state;
// the loose model is deliberate. Only unknown page names are rejected.
func (s *Session) Navigate(page string) error {
	switch page {
	case models.PageLogin, models.PageList, models.PageForm:
	default:
		return fmt.Errorf("%w: unknown page %q", models.ErrValidation, page)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
	return nil
}

// Bind attaches a new or loaded experiment as the draft and moves the
// session to the form page.
func (s *Session) Bind(exp *models.Experiment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = exp
	s.page = models.PageForm
}

// Editing reports whether a draft is bound.
func (s *Session) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft != nil
}

// Draft returns a deep copy of the bound experiment, or nil when idle.
// Callers get a snapshot; mutation happens via AppendRow and Rename.
func (s *Session) Draft() *models.Experiment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return nil
	}
	return cloneExperiment(s.draft)
}

// AppendRow appends one record to the draft and returns the new row
// count. Records are append-only; duplicates are permitted.
func (s *Session) AppendRow(rec models.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return 0, fmt.Errorf("%w: no experiment in progress", models.ErrValidation)
	}
	s.draft.Rows = append(s.draft.Rows, rec)
	return len(s.draft.Rows), nil
}

// Rename changes the draft's experiment name.
func (s *Session) Rename(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return fmt.Errorf("%w: no experiment in progress", models.ErrValidation)
	}
	s.draft.Name = name
	return nil
}

// ClearDraft drops the draft and returns the session to the list page.
func (s *Session) ClearDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
	s.page = models.PageList
}

func cloneExperiment(exp *models.Experiment) *models.Experiment {
	out := *exp
	out.Rows = make([]models.Record, len(exp.Rows))
	for i, rec := range exp.Rows {
		cp := make(models.Record, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return &out
}

// Store is the in-memory session registry, keyed by bearer token.
// Sessions expire after the configured idle TTL and are swept lazily on
// access. State is per-process; a restart logs everyone out.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Start creates a session for the given email and returns it. The email
// is an identifier, not a credential; validation is the caller's job.
func (s *Store) Start(email string) (*Session, error) {
	token, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	sess := &Session{
		token:    token,
		email:    email,
		page:     models.PageList,
		lastSeen: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[token] = sess
	return sess, nil
}

// Get resolves a bearer token, refreshing its idle timer. Expired or
// unknown tokens return false.
func (s *Store) Get(token string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	if time.Since(sess.lastSeen) > s.ttl {
		delete(s.sessions, token)
		return nil, false
	}
	sess.lastSeen = time.Now()
	return sess, true
}

// End removes a session. Unknown tokens are a no-op; logout is
// idempotent.
func (s *Store) End(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Len reports the number of live sessions (expired ones included until
// the next sweep).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) sweepLocked() {
	now := time.Now()
	for token, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, token)
		}
	}
}
