// Package session owns the authentication token and the current actor.
// The store is the single process-wide holder of credential state: it is
// created once at startup, restored from the keyring, and mutated only by
// VerifyCode and Logout.
package session

import (
	"context"
	stderrors "errors"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mlsaran/smarttimetable/internal/api"
	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/errors"
	"github.com/mlsaran/smarttimetable/internal/logger"
	"github.com/mlsaran/smarttimetable/internal/models"
)

var (
	// ErrInvalidCode is returned when the one-time code is wrong or expired.
	ErrInvalidCode = stderrors.New("invalid or expired code")
	// ErrVerifyInFlight is returned when a verification for the same
	// identifier has not yet resolved.
	ErrVerifyInFlight = stderrors.New("a verification attempt for this address is already in progress")
)

// View is a navigation target the caller routes to after a session event.
type View string

const (
	ViewLogin     View = "login"
	ViewGenerator View = "generator"
	ViewApproval  View = "approval"
	ViewReadOnly  View = "viewer"
)

// LandingView maps an actor role to its landing view. Schedulers land on
// the generation dashboard, approvers on the approval queue, and everyone
// else on the read-only view.
func LandingView(role constants.Role) View {
	switch role {
	case constants.RoleScheduler:
		return ViewGenerator
	case constants.RoleApprover:
		return ViewApproval
	default:
		return ViewReadOnly
	}
}

// Backend is the slice of the API the session lifecycle needs.
type Backend interface {
	Login(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	Me(ctx context.Context) (models.User, error)
}

// TokenStore persists the token across process restarts.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// Store holds the token and actor. The invariant: actor is non-nil iff
// token is non-empty and has been validated against the backend at least
// once since being set.
type Store struct {
	mu      sync.Mutex
	backend Backend
	tokens  TokenStore

	token     string
	actor     *models.User
	verifying map[string]bool
}

// New creates an anonymous store. Bind must be called with the API client
// before any operation that reaches the backend.
func New(tokens TokenStore) *Store {
	return &Store{
		tokens:    tokens,
		verifying: make(map[string]bool),
	}
}

// Bind attaches the backend client. Separate from New because the API
// client itself reads its bearer token from this store.
func (s *Store) Bind(backend Backend) {
	s.backend = backend
}

// Token returns the current bearer token; empty when anonymous.
// Implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Actor returns the authenticated user, or nil when anonymous.
func (s *Store) Actor() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.actor == nil {
		return nil
	}
	actor := *s.actor
	return &actor
}

// Authenticated reports whether a validated session exists.
func (s *Store) Authenticated() bool {
	return s.Actor() != nil
}

// Role returns the actor's role, or the readonly role when anonymous.
func (s *Store) Role() constants.Role {
	if actor := s.Actor(); actor != nil {
		return actor.Role
	}
	return constants.RoleReadonly
}

func validateEmail(identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return errors.NewValidation("email", "email address is required")
	}
	if _, err := mail.ParseAddress(identifier); err != nil {
		return errors.NewValidation("email", "not a valid email address")
	}
	return nil
}

// RequestCode triggers delivery of a one-time code to the identifier.
// It has no effect on the session itself.
func (s *Store) RequestCode(ctx context.Context, identifier string) error {
	if err := validateEmail(identifier); err != nil {
		return err
	}
	if err := s.backend.Login(ctx, strings.TrimSpace(identifier)); err != nil {
		return err
	}
	logger.Info("One-time code requested", "email", identifier)
	return nil
}

// VerifyCode exchanges (identifier, code) for a session. On success the
// token and actor are committed together and the token is persisted; on
// any failure neither changes. At most one verification per identifier may
// be in flight; a concurrent second attempt is rejected.
func (s *Store) VerifyCode(ctx context.Context, identifier, code string) (models.User, View, error) {
	if err := validateEmail(identifier); err != nil {
		return models.User{}, ViewLogin, err
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return models.User{}, ViewLogin, errors.NewValidation("code", "one-time code is required")
	}
	identifier = strings.TrimSpace(identifier)

	s.mu.Lock()
	if s.verifying[identifier] {
		s.mu.Unlock()
		return models.User{}, ViewLogin, ErrVerifyInFlight
	}
	s.verifying[identifier] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.verifying, identifier)
		s.mu.Unlock()
	}()

	token, err := s.backend.VerifyOTP(ctx, identifier, code)
	if err != nil {
		var berr *api.BackendError
		if stderrors.As(err, &berr) && (berr.Status == 400 || berr.Status == 401 || berr.Status == 403) {
			return models.User{}, ViewLogin, ErrInvalidCode
		}
		return models.User{}, ViewLogin, err
	}

	// Stage the token so the /auth/me call authenticates with it. If the
	// identity fetch fails the token is rolled back: the session never
	// partially updates.
	s.mu.Lock()
	previous := s.token
	s.token = token
	s.mu.Unlock()

	actor, err := s.backend.Me(ctx)
	if err != nil {
		s.mu.Lock()
		s.token = previous
		s.mu.Unlock()
		return models.User{}, ViewLogin, err
	}

	s.mu.Lock()
	s.actor = &actor
	s.mu.Unlock()

	if err := s.tokens.Set(token); err != nil {
		// The in-memory session is valid either way; it just won't survive
		// a restart.
		logger.Warn("Failed to persist session token", "error", err)
	}

	logger.Info("Session established", "email", actor.Email, "role", actor.Role)
	return actor, LandingView(actor.Role), nil
}

// Restore revalidates a persisted token at startup. Any failure, local or
// remote, clears the stored token and yields an anonymous session; it is
// never surfaced as an error.
func (s *Store) Restore(ctx context.Context) *models.User {
	token, err := s.tokens.Get()
	if err != nil {
		return nil
	}

	if expired(token) {
		logger.Debug("Persisted token is expired, discarding")
		_ = s.tokens.Delete()
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	actor, err := s.backend.Me(ctx)
	if err != nil {
		logger.Debug("Token validation failed, treating as logged out", "error", err)
		s.clear()
		return nil
	}

	s.mu.Lock()
	s.actor = &actor
	s.mu.Unlock()
	logger.Info("Session restored", "email", actor.Email, "role", actor.Role)
	return &actor
}

// expired peeks at the token's exp claim without verifying the signature.
// Verification is the server's job; this only skips a doomed round trip.
// Tokens that do not parse as JWTs are left for the server to judge.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Logout clears the token and actor unconditionally and routes the caller
// back to the login view.
func (s *Store) Logout() View {
	s.clear()
	logger.Info("Logged out")
	return ViewLogin
}

func (s *Store) clear() {
	s.mu.Lock()
	s.token = ""
	s.actor = nil
	s.mu.Unlock()
	if err := s.tokens.Delete(); err != nil {
		logger.Warn("Failed to clear persisted token", "error", err)
	}
}
