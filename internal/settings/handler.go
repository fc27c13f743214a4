package settings

import (
	"github.com/gin-gonic/gin"

	"github.com/calm-lily/backend/pkg/response"
)

// Handler exposes the runtime settings endpoints.
type Handler struct {
	store *Store
}

// NewHandler creates a settings handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Public returns the feature flags the frontend needs, no auth required.
func (h *Handler) Public(c *gin.Context) {
	response.OK(c, h.store.Public())
}

// Get returns the full settings snapshot.
func (h *Handler) Get(c *gin.Context) {
	response.OK(c, h.store.Snapshot())
}

// Update patches the live settings. Changes are not persisted; a restart
// re-seeds from the environment.
func (h *Handler) Update(c *gin.Context) {
	var params UpdateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	response.OK(c, h.store.Update(params))
}
