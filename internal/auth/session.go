package auth

import (
	"context"
	"sync"

	"github.com/coursemaster/client-service/internal/api"
	"github.com/coursemaster/client-service/internal/models"
	"github.com/coursemaster/client-service/internal/utils"
	"github.com/coursemaster/client-service/internal/validator"
)

// AuthAPI is the slice of the API client the session needs.
type AuthAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

// Session is the explicit auth state container: the bearer token and the
// current user, injected into whatever needs them instead of living in an
// ambient singleton. It implements api.TokenSource. Token persistence across
// processes is out of scope.
type Session struct {
	mu        sync.RWMutex
	api       AuthAPI
	logger    utils.Logger
	validator *validator.Validator

	token string
	user  *models.User
}

func NewSession(authAPI AuthAPI, logger utils.Logger, v *validator.Validator) *Session {
	return &Session{
		api:       authAPI,
		logger:    logger,
		validator: v,
	}
}

// Token implements api.TokenSource.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Login authenticates and stores the session state.
func (s *Session) Login(ctx context.Context, req api.LoginRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = &resp.User
	s.mu.Unlock()

	s.logger.Info("logged in", "user_id", resp.User.ID, "role", resp.User.Role)
	return &resp.User, nil
}

// Register creates an account and stores the session state.
func (s *Session) Register(ctx context.Context, req api.RegisterRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = &resp.User
	s.mu.Unlock()

	s.logger.Info("registered", "user_id", resp.User.ID, "role", resp.User.Role)
	return &resp.User, nil
}

// RefreshUser re-fetches the profile for an existing token.
func (s *Session) RefreshUser(ctx context.Context) (*models.User, error) {
	user, err := s.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// Logout clears the session state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// CurrentUser returns the logged-in user, if any.
func (s *Session) CurrentUser() models.Optional[models.User] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.None[models.User]()
	}
	return models.Some(*s.user)
}

// Role returns the current user's role for UI gating. Display only: access
// control is enforced server-side.
func (s *Session) Role() (models.UserRole, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return "", false
	}
	return s.user.Role, true
}
