package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cookshare/internal/domain"
	"cookshare/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are
	// incorrect. The same value covers an unknown username and a wrong
	// password so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when registering an already taken
	// username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidSession indicates an unknown or expired session token.
	ErrInvalidSession = errors.New("invalid session token")
	// ErrInvalidRefreshToken indicates an unknown refresh token.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// AuthService owns the credential lifecycle: registration, login, session
// verification, logout, and session renewal. It is stateless; all state
// lives in the user repository.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	VerifySession(ctx context.Context, sessionToken string) (*domain.User, error)
	Logout(ctx context.Context, sessionToken string) error
	RenewSession(ctx context.Context, refreshToken string) (*domain.User, error)
}

type authService struct {
	users      repository.UserRepository
	sessionTTL time.Duration
}

func NewAuthService(users repository.UserRepository, sessionTTL time.Duration) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &authService{
		users:      users,
		sessionTTL: sessionTTL,
	}
}

// Register creates an account and issues its first session. Username
// uniqueness is enforced by the store's constraint, not a prior lookup, so
// two concurrent registrations cannot both win.
func (s *authService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	sessionToken, refreshToken, err := newTokenPair()
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:          username,
		PasswordHash:      string(hash),
		SessionToken:      sessionToken,
		SessionExpiration: time.Now().UTC().Add(s.sessionTTL),
		RefreshToken:      refreshToken,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Login verifies the password and rotates the session. Both tokens and the
// expiration change together; a failed login mutates nothing.
func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.rotateSession(ctx, user)
}

// VerifySession resolves a session token to its account. Expiration is
// evaluated here, at read time; nothing is mutated.
func (s *authService) VerifySession(ctx context.Context, sessionToken string) (*domain.User, error) {
	user, err := s.users.GetBySessionToken(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if !user.SessionValid(time.Now().UTC()) {
		return nil, ErrInvalidSession
	}
	return sanitizeUser(user), nil
}

// Logout force-expires the current session by moving its expiration to now.
// The token strings stay in place and the refresh token remains usable, so
// a logged-out client can still mint a new session through RenewSession.
func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	user, err := s.VerifySession(ctx, sessionToken)
	if err != nil {
		return err
	}
	if err := s.users.ExpireSession(ctx, user.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("expire session: %w", err)
	}
	return nil
}

// RenewSession exchanges a refresh token for a fresh session/refresh pair.
// Refresh tokens themselves carry no expiration.
func (s *authService) RenewSession(ctx context.Context, refreshToken string) (*domain.User, error) {
	user, err := s.users.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	return s.rotateSession(ctx, user)
}

func (s *authService) rotateSession(ctx context.Context, user *domain.User) (*domain.User, error) {
	sessionToken, refreshToken, err := newTokenPair()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().UTC().Add(s.sessionTTL)

	if err := s.users.UpdateSession(ctx, user.ID, sessionToken, expiresAt, refreshToken); err != nil {
		return nil, fmt.Errorf("rotate session: %w", err)
	}

	user.SessionToken = sessionToken
	user.SessionExpiration = expiresAt
	user.RefreshToken = refreshToken
	return sanitizeUser(user), nil
}

func newTokenPair() (session, refresh string, err error) {
	if session, err = newToken(); err != nil {
		return "", "", err
	}
	if refresh, err = newToken(); err != nil {
		return "", "", err
	}
	return session, refresh, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone
}
