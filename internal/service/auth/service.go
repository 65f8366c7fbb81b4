package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/auth"
	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	"github.com/kpimanager/kpi-backend-go/internal/domain/user"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/jwt"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// Login verifies the credentials and issues an access token plus a
	// refresh token cookie.
	Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, *http.Cookie, error)
	// Refresh exchanges a valid refresh token for a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, *http.Cookie, error)
	// Logout revokes the refresh token. Revoking an unknown token is a
	// no-op.
	Logout(refreshToken string)
	// GoogleLoginURL starts the OAuth2 flow.
	GoogleLoginURL(userAgent string) (url string, state string, err error)
	// GoogleCallback finishes the OAuth2 flow: the verified Google email
	// must match an employee with a linked account.
	GoogleCallback(ctx context.Context, code string) (auth.TokenResponse, *http.Cookie, error)
}

type authServiceImpl struct {
	userRepo      user.UserRepository
	employeeRepo  employee.EmployeeRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService // nil when OAuth2 is not configured
}

func NewAuthService(
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
) AuthService {
	return &authServiceImpl{
		userRepo:      userRepo,
		employeeRepo:  employeeRepo,
		jwtService:    jwtService,
		googleService: googleService,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, *http.Cookie, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, nil, err
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, nil, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, nil, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, *http.Cookie, error) {
	if refreshToken == "" {
		return auth.TokenResponse{}, nil, auth.ErrInvalidToken
	}
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, nil, auth.ErrRefreshTokenRevoked
	}

	token, err := jwtauth.VerifyToken(s.jwtService.JWTAuth(), refreshToken)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return auth.TokenResponse{}, nil, auth.ErrTokenExpired
		}
		return auth.TokenResponse{}, nil, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.TokenResponse{}, nil, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return auth.TokenResponse{}, nil, auth.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return auth.TokenResponse{}, nil, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, nil, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, nil, err
	}

	// Rotate: the old refresh token dies with the exchange.
	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(u)
}

func (s *authServiceImpl) Logout(refreshToken string) {
	if refreshToken == "" {
		return
	}
	s.jwtService.RevokeToken(refreshToken)
}

func (s *authServiceImpl) GoogleLoginURL(userAgent string) (string, string, error) {
	if s.googleService == nil {
		return "", "", auth.ErrOAuthNotConfigured
	}

	state := s.googleService.GenerateState(userAgent)
	return s.googleService.RedirectURL(state), state, nil
}

func (s *authServiceImpl) GoogleCallback(ctx context.Context, code string) (auth.TokenResponse, *http.Cookie, error) {
	if s.googleService == nil {
		return auth.TokenResponse{}, nil, auth.ErrOAuthNotConfigured
	}

	oauthToken, err := s.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, nil, auth.ErrInvalidToken
	}

	info, err := s.googleService.VerifyUser(ctx, oauthToken)
	if err != nil {
		return auth.TokenResponse{}, nil, auth.ErrInvalidToken
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, nil, auth.ErrEmailNotVerified
	}

	emp, err := s.employeeRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, nil, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, nil, err
	}

	u, err := s.userRepo.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, nil, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, nil, err
	}

	return s.issueTokens(u)
}

func (s *authServiceImpl) issueTokens(u user.User) (auth.TokenResponse, *http.Cookie, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.EmployeeID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, nil, err
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, nil, err
	}

	resp := auth.TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Role:        string(u.Role),
	}
	if u.EmployeeID != nil {
		resp.EmployeeID = *u.EmployeeID
	}

	return resp, s.jwtService.RefreshTokenCookie(refreshToken, refreshExpiresAt), nil
}
