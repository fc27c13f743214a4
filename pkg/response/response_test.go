package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(h gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/", h)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestOK(t *testing.T) {
	t.Parallel()
	w := perform(func(c *gin.Context) { OK(c, gin.H{"name": "lily"}) })
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.Success || body.Data["name"] != "lily" {
		t.Errorf("body = %+v", body)
	}
}

func TestErrorEnvelope(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		handler  gin.HandlerFunc
		wantCode int
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "nope") }, http.StatusBadRequest},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "nope") }, http.StatusUnauthorized},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "nope") }, http.StatusForbidden},
		{"not found", func(c *gin.Context) { NotFound(c, "nope") }, http.StatusNotFound},
		{"conflict", func(c *gin.Context) { Conflict(c, "nope") }, http.StatusConflict},
		{"bad gateway", func(c *gin.Context) { BadGateway(c, "nope") }, http.StatusBadGateway},
		{"unavailable", func(c *gin.Context) { ServiceUnavailable(c, "nope") }, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(tt.handler)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			var body Body
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if body.Success {
				t.Error("success = true, want false")
			}
			if body.Error != "nope" {
				t.Errorf("error = %q", body.Error)
			}
		})
	}
}

func TestTooManyRequests(t *testing.T) {
	t.Parallel()
	w := perform(func(c *gin.Context) { TooManyRequests(c, "slow down", 42) })
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Success           bool   `json:"success"`
		Error             string `json:"error"`
		RetryAfterSeconds int    `json:"retry_after_seconds"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Success || body.Error != "slow down" || body.RetryAfterSeconds != 42 {
		t.Errorf("body = %+v", body)
	}
}
