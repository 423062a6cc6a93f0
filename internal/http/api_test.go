package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookshare/internal/domain"
	"cookshare/internal/service"
)

type fakeAuth struct {
	registerFn func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*domain.User, error)
	verifyFn   func(ctx context.Context, token string) (*domain.User, error)
	logoutFn   func(ctx context.Context, token string) error
	renewFn    func(ctx context.Context, token string) (*domain.User, error)
}

func (f *fakeAuth) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return f.registerFn(ctx, username, password)
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*domain.User, error) {
	return f.loginFn(ctx, username, password)
}

func (f *fakeAuth) VerifySession(ctx context.Context, token string) (*domain.User, error) {
	return f.verifyFn(ctx, token)
}

func (f *fakeAuth) Logout(ctx context.Context, token string) error {
	return f.logoutFn(ctx, token)
}

func (f *fakeAuth) RenewSession(ctx context.Context, token string) (*domain.User, error) {
	return f.renewFn(ctx, token)
}

type fakeUsers struct {
	profileFn func(ctx context.Context, id int64) (*domain.Profile, error)
	listFn    func(ctx context.Context) ([]domain.User, error)
	deleteFn  func(ctx context.Context, id int64) error
}

func (f *fakeUsers) GetProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	return f.profileFn(ctx, id)
}

func (f *fakeUsers) ListUsers(ctx context.Context) ([]domain.User, error) {
	return f.listFn(ctx)
}

func (f *fakeUsers) DeleteUser(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func testUser() *domain.User {
	return &domain.User{
		ID:                1,
		Username:          "alice",
		SessionToken:      "sess-token",
		SessionExpiration: time.Now().UTC().Add(24 * time.Hour),
		RefreshToken:      "refresh-token",
	}
}

func newTestRouter(auth service.AuthService, users service.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))
	handler := NewHandler(auth, users, nil, nil, nil, nil, nil, "", "", logger)
	handler.RegisterRoutes(router)
	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, header map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func TestRegisterEndpoint(t *testing.T) {
	auth := &fakeAuth{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "s3cr3t", password)
			return testUser(), nil
		},
	}
	router := newTestRouter(auth, nil)

	rec, env := doJSON(t, router, http.MethodPost, "/register/",
		gin.H{"username": "alice", "password": "s3cr3t"}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	var triple TokenTripleResponse
	require.NoError(t, json.Unmarshal(env.Data, &triple))
	assert.Equal(t, "sess-token", triple.SessionToken)
	assert.Equal(t, "refresh-token", triple.RefreshToken)
	_, err := time.Parse(time.RFC3339, triple.SessionExpiration)
	assert.NoError(t, err)
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	called := false
	auth := &fakeAuth{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			called = true
			return nil, nil
		},
	}
	router := newTestRouter(auth, nil)

	rec, env := doJSON(t, router, http.MethodPost, "/register/", gin.H{"username": "alice"}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
	assert.False(t, called, "service must not run on invalid input")
}

func TestRegisterEndpoint_Duplicate(t *testing.T) {
	auth := &fakeAuth{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, service.ErrUserAlreadyExists
		},
	}
	router := newTestRouter(auth, nil)

	rec, env := doJSON(t, router, http.MethodPost, "/register/",
		gin.H{"username": "alice", "password": "s3cr3t"}, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
}

func TestLoginEndpoint(t *testing.T) {
	auth := &fakeAuth{
		loginFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return testUser(), nil
		},
	}
	router := newTestRouter(auth, nil)

	rec, env := doJSON(t, router, http.MethodPost, "/login/",
		gin.H{"username": "alice", "password": "s3cr3t"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	auth := &fakeAuth{
		loginFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	router := newTestRouter(auth, nil)

	rec, env := doJSON(t, router, http.MethodPost, "/login/",
		gin.H{"username": "alice", "password": "wrong"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid credentials", env.Error)
}

func TestLogoutEndpoint(t *testing.T) {
	auth := &fakeAuth{
		logoutFn: func(ctx context.Context, token string) error {
			assert.Equal(t, "sess-token", token)
			return nil
		},
	}
	router := newTestRouter(auth, nil)

	rec, env := doJSON(t, router, http.MethodPost, "/logout/", nil,
		map[string]string{"Authorization": "Bearer sess-token"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestLogoutEndpoint_BearerExtraction(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token sess-token"},
		{"empty token", "Bearer "},
		{"bare bearer", "Bearer"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			auth := &fakeAuth{
				logoutFn: func(ctx context.Context, token string) error {
					t.Fatal("service must not run without a bearer token")
					return nil
				},
			}
			router := newTestRouter(auth, nil)

			headers := map[string]string{}
			if tc.header != "" {
				headers["Authorization"] = tc.header
			}
			rec, env := doJSON(t, router, http.MethodPost, "/logout/", nil, headers)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestLogoutEndpoint_InvalidSession(t *testing.T) {
	auth := &fakeAuth{
		logoutFn: func(ctx context.Context, token string) error {
			return service.ErrInvalidSession
		},
	}
	router := newTestRouter(auth, nil)

	rec, _ := doJSON(t, router, http.MethodPost, "/logout/", nil,
		map[string]string{"Authorization": "Bearer stale-token"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRenewSessionEndpoint(t *testing.T) {
	auth := &fakeAuth{
		renewFn: func(ctx context.Context, token string) (*domain.User, error) {
			assert.Equal(t, "refresh-token", token)
			return testUser(), nil
		},
	}
	router := newTestRouter(auth, nil)

	rec, env := doJSON(t, router, http.MethodPost, "/session/", nil,
		map[string]string{"Authorization": "Bearer refresh-token"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var triple TokenTripleResponse
	require.NoError(t, json.Unmarshal(env.Data, &triple))
	assert.NotEmpty(t, triple.SessionToken)
}

func TestRenewSessionEndpoint_InvalidToken(t *testing.T) {
	auth := &fakeAuth{
		renewFn: func(ctx context.Context, token string) (*domain.User, error) {
			return nil, service.ErrInvalidRefreshToken
		},
	}
	router := newTestRouter(auth, nil)

	rec, env := doJSON(t, router, http.MethodPost, "/session/", nil,
		map[string]string{"Authorization": "Bearer bogus"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
}

func TestProtectedRouteRequiresSession(t *testing.T) {
	auth := &fakeAuth{
		verifyFn: func(ctx context.Context, token string) (*domain.User, error) {
			return nil, service.ErrInvalidSession
		},
	}
	router := newTestRouter(auth, nil)

	rec, _ := doJSON(t, router, http.MethodDelete, "/users/1/", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, router, http.MethodDelete, "/users/1/", nil,
		map[string]string{"Authorization": "Bearer expired"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRouteWithValidSession(t *testing.T) {
	auth := &fakeAuth{
		verifyFn: func(ctx context.Context, token string) (*domain.User, error) {
			return testUser(), nil
		},
	}
	users := &fakeUsers{
		profileFn: func(ctx context.Context, id int64) (*domain.Profile, error) {
			return &domain.Profile{User: testUser()}, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			assert.EqualValues(t, 1, id)
			return nil
		},
	}
	router := newTestRouter(auth, users)

	rec, env := doJSON(t, router, http.MethodDelete, "/users/1/", nil,
		map[string]string{"Authorization": "Bearer sess-token"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestGetUserProfile(t *testing.T) {
	users := &fakeUsers{
		profileFn: func(ctx context.Context, id int64) (*domain.Profile, error) {
			return &domain.Profile{
				User: testUser(),
				Stories: []domain.Story{
					{ID: 7, UserID: 1, Title: "Pasta night", CreatedAt: time.Now()},
				},
			}, nil
		},
	}
	router := newTestRouter(&fakeAuth{}, users)

	rec, env := doJSON(t, router, http.MethodGet, "/users/1/", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "alice", profile.Username)
	require.Len(t, profile.Stories, 1)
	assert.Equal(t, "Pasta night", profile.Stories[0].Title)
	// token and credential fields must not leak into the profile
	assert.NotContains(t, string(env.Data), "sess-token")
	assert.NotContains(t, string(env.Data), "refresh-token")
	assert.NotContains(t, string(env.Data), "password")
}
