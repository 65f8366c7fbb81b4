package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kpimanager/kpi-backend-go/internal/domain/auth"
	"github.com/kpimanager/kpi-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		principal  *auth.Principal
		wantStatus int
	}{
		{"admin passes", &auth.Principal{UserID: "u1", Role: user.RoleAdmin}, http.StatusNoContent},
		{"regular user rejected", &auth.Principal{UserID: "u2", Role: user.RoleUser}, http.StatusForbidden},
		{"missing principal rejected", nil, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.principal != nil {
				req = req.WithContext(auth.WithPrincipal(req.Context(), *tt.principal))
			}

			rec := httptest.NewRecorder()
			AdminOnly(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
