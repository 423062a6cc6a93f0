package service

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cookshare/internal/domain"
	"cookshare/internal/repository"
)

// fakeUserRepo is an in-memory stand-in for the sqlite user repository.
type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return 0, repository.ErrDuplicate
		}
	}
	f.seq++
	user.ID = f.seq
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	f.users[user.ID] = &clone
	return user.ID, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetBySessionToken(ctx context.Context, token string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token == "" {
		return nil, repository.ErrNotFound
	}
	for _, u := range f.users {
		if u.SessionToken == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token == "" {
		return nil, repository.ErrNotFound
	}
	for _, u := range f.users {
		if u.RefreshToken == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) UpdateSession(ctx context.Context, id int64, sessionToken string, expiresAt time.Time, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.SessionToken = sessionToken
	u.SessionExpiration = expiresAt
	u.RefreshToken = refreshToken
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeUserRepo) ExpireSession(ctx context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.SessionExpiration = at
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

// stored returns the persisted record, bypassing the service's sanitizing.
func (f *fakeUserRepo) stored(t *testing.T, id int64) domain.User {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	require.True(t, ok, "user %d not in store", id)
	return *u
}

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	assert.Regexp(t, hexToken, user.SessionToken)
	assert.Regexp(t, hexToken, user.RefreshToken)
	assert.NotEqual(t, user.SessionToken, user.RefreshToken)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), user.SessionExpiration, time.Minute)

	// the returned value carries no credential
	assert.Empty(t, user.PasswordHash)

	stored := repo.stored(t, user.ID)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "s3cr3t", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cr3t")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)
	ctx := context.Background()

	first, err := auth.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// the first account is untouched
	stored := repo.stored(t, first.ID)
	assert.Equal(t, first.SessionToken, stored.SessionToken)
	assert.Equal(t, first.RefreshToken, stored.RefreshToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cr3t")))
}

func TestRegister_MissingInput(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)
	ctx := context.Background()

	_, err := auth.Register(ctx, "", "pw")
	assert.Error(t, err)
	_, err = auth.Register(ctx, "bob", "")
	assert.Error(t, err)
}

func TestLogin_RotatesTokens(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)
	ctx := context.Background()

	registered, err := auth.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	logged, err := auth.Login(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	assert.NotEqual(t, registered.SessionToken, logged.SessionToken)
	assert.NotEqual(t, registered.RefreshToken, logged.RefreshToken)
	assert.False(t, logged.SessionExpiration.Before(registered.SessionExpiration))

	// the old session token no longer authorizes
	_, err = auth.VerifySession(ctx, registered.SessionToken)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = auth.VerifySession(ctx, logged.SessionToken)
	assert.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)
	ctx := context.Background()

	registered, err := auth.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	_, err = auth.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// no mutation on failure
	stored := repo.stored(t, registered.ID)
	assert.Equal(t, registered.SessionToken, stored.SessionToken)
	assert.Equal(t, registered.RefreshToken, stored.RefreshToken)
	assert.Equal(t, registered.SessionExpiration.Unix(), stored.SessionExpiration.Unix())
}

func TestLogin_UnknownUserIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)
	ctx := context.Background()

	_, err := auth.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	_, unknownErr := auth.Login(ctx, "nobody", "whatever")
	_, wrongErr := auth.Login(ctx, "alice", "wrong")

	// same error value for both, so responses cannot enumerate usernames
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestVerifySession(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	got, err := auth.VerifySession(ctx, user.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Empty(t, got.PasswordHash)

	_, err = auth.VerifySession(ctx, "never-issued-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifySession_Expired(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	require.NoError(t, repo.ExpireSession(ctx, user.ID, time.Now().UTC().Add(-time.Second)))

	_, err = auth.VerifySession(ctx, user.SessionToken)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

// TestLogout_SoftLogout documents the reference behavior: logout kills the
// session token but deliberately leaves the refresh token usable, so a
// logged-out client can still mint a new session.
func TestLogout_SoftLogout(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, user.SessionToken))

	_, err = auth.VerifySession(ctx, user.SessionToken)
	assert.ErrorIs(t, err, ErrInvalidSession)

	// token strings survive logout untouched
	stored := repo.stored(t, user.ID)
	assert.Equal(t, user.SessionToken, stored.SessionToken)
	assert.Equal(t, user.RefreshToken, stored.RefreshToken)

	// soft logout: the refresh token still works
	renewed, err := auth.RenewSession(ctx, user.RefreshToken)
	require.NoError(t, err)
	_, err = auth.VerifySession(ctx, renewed.SessionToken)
	assert.NoError(t, err)
}

func TestLogout_InvalidSession(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)

	err := auth.Logout(context.Background(), "never-issued-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRenewSession(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)
	ctx := context.Background()

	user, err := auth.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)

	renewed, err := auth.RenewSession(ctx, user.RefreshToken)
	require.NoError(t, err)

	assert.NotEqual(t, user.SessionToken, renewed.SessionToken)
	assert.NotEqual(t, user.RefreshToken, renewed.RefreshToken)
	assert.False(t, renewed.SessionExpiration.Before(user.SessionExpiration))

	// the superseded refresh token is gone
	_, err = auth.RenewSession(ctx, user.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRenewSession_UnknownToken(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)

	_, err := auth.RenewSession(context.Background(), "never-issued-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

// TestAliceScenario runs the end-to-end credential flow from registration
// through a failed and a successful login.
func TestAliceScenario(t *testing.T) {
	repo := newFakeUserRepo()
	auth := NewAuthService(repo, 24*time.Hour)
	ctx := context.Background()

	registered, err := auth.Register(ctx, "alice", "s3cr3t")
	require.NoError(t, err)
	require.NotEmpty(t, registered.SessionToken)
	require.NotEmpty(t, registered.RefreshToken)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), registered.SessionExpiration, time.Minute)

	_, err = auth.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	stored := repo.stored(t, registered.ID)
	require.Equal(t, registered.SessionToken, stored.SessionToken)
	require.Equal(t, registered.RefreshToken, stored.RefreshToken)

	logged, err := auth.Login(ctx, "alice", "s3cr3t")
	require.NoError(t, err)
	assert.NotEqual(t, registered.SessionToken, logged.SessionToken)
	assert.NotEqual(t, registered.RefreshToken, logged.RefreshToken)
}
