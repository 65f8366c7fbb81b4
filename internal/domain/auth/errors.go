package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrNoLinkedEmployee    = errors.New("user has no linked employee")
	ErrOAuthNotConfigured  = errors.New("google login is not configured")
	ErrEmailNotVerified    = errors.New("google account email not verified")
)
