package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func stubValidator(wantToken string, userID uuid.UUID, role string) TokenValidator {
	return func(token string) (uuid.UUID, string, string, error) {
		if token != wantToken {
			return uuid.Nil, "", "", errors.New("bad token")
		}
		return userID, "user@example.com", role, nil
	}
}

func TestJWTMissingHeader(t *testing.T) {
	t.Parallel()
	router := gin.New()
	router.GET("/", JWT(stubValidator("tok", uuid.New(), "client")), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestJWTBadToken(t *testing.T) {
	t.Parallel()
	router := gin.New()
	router.GET("/", JWT(stubValidator("tok", uuid.New(), "client")), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestJWTSetsIdentity(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	router := gin.New()
	router.GET("/", JWT(stubValidator("tok", userID, "admin")), func(c *gin.Context) {
		got, ok := UserID(c)
		if !ok || got != userID {
			t.Errorf("UserID = %v (ok=%v), want %v", got, ok, userID)
		}
		if !IsAdmin(c) {
			t.Error("IsAdmin = false, want true")
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestOptionalJWTAnonymous(t *testing.T) {
	t.Parallel()
	router := gin.New()
	router.GET("/", OptionalJWT(stubValidator("tok", uuid.New(), "client")), func(c *gin.Context) {
		if _, ok := UserID(c); ok {
			t.Error("UserID set for anonymous request")
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		role     string
		wantCode int
	}{
		{"admin allowed", "admin", http.StatusOK},
		{"client forbidden", "client", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/",
				JWT(stubValidator("tok", uuid.New(), tt.role)),
				RequireRole("admin"),
				func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer tok")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	t.Parallel()
	router := gin.New()
	router.GET("/", RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
