package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/calm-lily/backend/config"
	"github.com/calm-lily/backend/internal/settings"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubClient struct{}

func (stubClient) Generate(ctx context.Context, prompt string) (string, int, error) {
	return "ok", 1, nil
}

func (stubClient) Close() error { return nil }

func newTestStore(aiEnabled bool) *settings.Store {
	cfg := &config.Config{}
	cfg.AI.Enabled = aiEnabled
	return settings.NewStore(cfg)
}

func statusEnabled(t *testing.T, router *gin.Engine) bool {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ai/status/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d", w.Code)
	}
	var body struct {
		Data struct {
			Enabled bool `json:"enabled"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return body.Data.Enabled
}

func TestAssistantFollowsRuntimeToggle(t *testing.T) {
	t.Parallel()
	store := newTestStore(false)
	h := NewHandler(stubClient{}, nil, nil, store, zap.NewNop())
	router := gin.New()
	router.GET("/ai/status/", h.Status)
	router.POST("/ai/chat/", h.Chat)

	if statusEnabled(t, router) {
		t.Fatal("enabled = true before toggle, want false")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ai/chat/", strings.NewReader(`{"message":"hi"}`)))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("chat while disabled = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	on := true
	store.Update(settings.UpdateParams{AIEnabled: &on})

	if !statusEnabled(t, router) {
		t.Fatal("enabled = false after toggle, want true")
	}
	// An empty body fails validation, which only runs once the enabled
	// gate has been passed.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ai/chat/", strings.NewReader(`{}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("chat after toggle = %d, want %d", w.Code, http.StatusBadRequest)
	}

	off := false
	store.Update(settings.UpdateParams{AIEnabled: &off})
	if statusEnabled(t, router) {
		t.Fatal("enabled = true after toggling back off")
	}
}

func TestAssistantDisabledWithoutClient(t *testing.T) {
	t.Parallel()
	h := NewHandler(nil, nil, nil, newTestStore(true), zap.NewNop())
	router := gin.New()
	router.GET("/ai/status/", h.Status)
	router.POST("/ai/chat/", h.Chat)

	if statusEnabled(t, router) {
		t.Fatal("enabled = true with no client, want false")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ai/chat/", strings.NewReader(`{"message":"hi"}`)))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("chat = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}
