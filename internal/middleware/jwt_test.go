package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"bus_logistics/internal/models"
)

// protectedRouter guards a handler that records whether it ran, so
// tests can tell an aborted chain from an overwritten status code.
func protectedRouter(guard gin.HandlerFunc, ran *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/protected", guard, func(c *gin.Context) {
		*ran = true
		c.Status(http.StatusCreated)
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireAuthTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(7, []models.RoleName{models.RoleDriver})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var ran bool
	r := protectedRouter(RequireAuth(), &ran)
	if code := doRequest(t, r, token); code != http.StatusCreated {
		t.Fatalf("expected 201 with valid token, got %d", code)
	}
	if !ran {
		t.Fatal("handler did not run for a valid token")
	}

	ran = false
	if code := doRequest(t, r, ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
	if code := doRequest(t, r, "not-a-token"); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", code)
	}
	if ran {
		t.Fatal("handler ran despite rejected authentication")
	}
}

func TestRequireAuthWithRole(t *testing.T) {
	adminToken, err := GenerateToken(1, []models.RoleName{models.RoleAdmin, models.RoleEmployee})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	driverToken, err := GenerateToken(2, []models.RoleName{models.RoleDriver})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var ran bool
	r := protectedRouter(RequireAuthWithRole(models.RoleAdmin), &ran)
	if code := doRequest(t, r, adminToken); code != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d", code)
	}
	if !ran {
		t.Fatal("handler did not run for an admin token")
	}

	// The mutation handler must never execute for a token lacking the
	// required role; a late 403 is not enough.
	ran = false
	if code := doRequest(t, r, driverToken); code != http.StatusForbidden {
		t.Fatalf("expected 403 for driver, got %d", code)
	}
	if ran {
		t.Fatal("handler ran for a token without the required role")
	}

	ran = false
	if code := doRequest(t, r, ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
	if ran {
		t.Fatal("handler ran without authentication")
	}
}
