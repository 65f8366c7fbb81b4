package auth

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/auth"
	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	"github.com/kpimanager/kpi-backend-go/internal/domain/user"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User // keyed by username
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	u, ok := f.users[username]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	for _, u := range f.users {
		if u.EmployeeID != nil && *u.EmployeeID == employeeID {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newService(t *testing.T, users map[string]user.User) AuthService {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret", "1h", "168h")
	return NewAuthService(&fakeUserRepo{users: users}, &fakeEmployeeRepo{}, jwtService, nil)
}

func testUsers(t *testing.T) map[string]user.User {
	t.Helper()
	employeeID := "emp-1"
	return map[string]user.User{
		"ana": {
			ID:           "u1",
			Username:     "ana",
			PasswordHash: hashPassword(t, "secret"),
			EmployeeID:   &employeeID,
			Role:         user.RoleAdmin,
		},
	}
}

func TestLoginSuccess(t *testing.T) {
	svc := newService(t, testUsers(t))

	tokens, cookie, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "ana",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, "admin", tokens.Role)
	assert.Equal(t, "emp-1", tokens.EmployeeID)
	require.NotNil(t, cookie)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newService(t, testUsers(t))

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "ana",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newService(t, testUsers(t))

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "nadie",
		Password: "secret",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginValidation(t *testing.T) {
	svc := newService(t, testUsers(t))

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{})
	assert.Error(t, err)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newService(t, testUsers(t))

	_, cookie, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "ana",
		Password: "secret",
	})
	require.NoError(t, err)

	tokens, newCookie, err := svc.Refresh(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	require.NotNil(t, newCookie)

	// The exchanged token is revoked and cannot be replayed.
	_, _, err = svc.Refresh(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newService(t, testUsers(t))

	tokens, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "ana",
		Password: "secret",
	})
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshEmptyToken(t *testing.T) {
	svc := newService(t, testUsers(t))

	_, _, err := svc.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc := newService(t, testUsers(t))

	_, cookie, err := svc.Login(context.Background(), auth.LoginRequest{
		Username: "ana",
		Password: "secret",
	})
	require.NoError(t, err)

	svc.Logout(cookie.Value)

	_, _, err = svc.Refresh(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestGoogleLoginUnconfigured(t *testing.T) {
	svc := newService(t, testUsers(t))

	_, _, err := svc.GoogleLoginURL("test-agent")
	assert.ErrorIs(t, err, auth.ErrOAuthNotConfigured)

	_, _, err = svc.GoogleCallback(context.Background(), "code")
	assert.ErrorIs(t, err, auth.ErrOAuthNotConfigured)
}
