package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/funeral-directory/internal/auth"
)

func TestJWT(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour)
	token, err := manager.GenerateToken("user-1", "admin@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	otherSecret, err := auth.NewJWTManager("other-secret", time.Hour).GenerateToken("user-1", "admin@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	tests := map[string]struct {
		header     string
		expectCode int
	}{
		"missing header":       {expectCode: http.StatusUnauthorized},
		"basic scheme":         {header: "Basic token", expectCode: http.StatusUnauthorized},
		"garbage token":        {header: "Bearer invalid", expectCode: http.StatusUnauthorized},
		"foreign signature":    {header: "Bearer " + otherSecret, expectCode: http.StatusUnauthorized},
		"valid token":          {header: "Bearer " + token, expectCode: http.StatusOK},
		"lower case scheme ok": {header: "bearer " + token, expectCode: http.StatusOK},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			executed := false
			err := JWT(manager, nil)(func(c echo.Context) error {
				executed = true
				assert.Equal(t, "user-1", c.Get(ContextKeyUserID))
				assert.Equal(t, "admin@example.com", c.Get(ContextKeyUserEmail))
				assert.Equal(t, auth.RoleAdmin, c.Get(ContextKeyUserRole))
				return c.NoContent(http.StatusOK)
			})(c)

			require.NoError(t, err)
			assert.Equal(t, tt.expectCode, rec.Code)
			assert.Equal(t, tt.expectCode == http.StatusOK, executed)
		})
	}
}

func TestJWT_FeedsRequireRole(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Hour)
	token, err := manager.GenerateToken("user-2", "editor@example.com", "editor")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	chain := JWT(manager, nil)(RequireRole(auth.RoleAdmin)(func(c echo.Context) error {
		t.Fatal("handler must not run for non-admin roles")
		return nil
	}))

	require.NoError(t, chain(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
