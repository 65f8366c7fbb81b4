package response

import (
	"errors"
	"net/http"

	"github.com/kpimanager/kpi-backend-go/internal/domain/auth"
	"github.com/kpimanager/kpi-backend-go/internal/domain/department"
	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	"github.com/kpimanager/kpi-backend-go/internal/domain/kpi"
	"github.com/kpimanager/kpi-backend-go/internal/domain/position"
	"github.com/kpimanager/kpi-backend-go/internal/domain/user"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "Email not verified")
	case errors.Is(err, auth.ErrNoLinkedEmployee):
		Forbidden(w, "Account has no linked employee")
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		ServiceUnavailable(w, "Google login is not configured")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Personnel domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Catalog and master data errors
	case errors.Is(err, position.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, kpi.ErrKpiNotFound):
		NotFound(w, "KPI not found")
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentExists):
		Conflict(w, "Department with this name already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
