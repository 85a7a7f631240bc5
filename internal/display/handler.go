package display

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

// statusFor maps validation errors to 400; everything else is a persistence
// failure and reports as 500.
func statusFor(err error) int {
	if errors.Is(err, ErrMissingItem) || errors.Is(err, ErrNoValidItems) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /api/state
// --------------------------------------------------
func (h *Handler) State(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// --------------------------------------------------
// GET|POST /api/roast
// --------------------------------------------------
func (h *Handler) Roast(c *gin.Context) {
	if err := h.service.EnsureDailyReset(c.Request.Context()); err != nil {
		log.Printf("roast: reset check failed: %v", err)
	}

	var item string
	if c.Request.Method == http.MethodGet {
		item = c.Query("item")
	} else {
		var req struct {
			Item string `json:"item"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON"})
			return
		}
		item = req.Item
	}

	if err := h.service.ApplyRoast(c.Request.Context(), item); err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --------------------------------------------------
// POST /api/bake
// --------------------------------------------------
func (h *Handler) Bake(c *gin.Context) {
	if err := h.service.EnsureDailyReset(c.Request.Context()); err != nil {
		log.Printf("bake: reset check failed: %v", err)
	}

	var req struct {
		Items  []string `json:"items"`
		Source string   `json:"source"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON"})
		return
	}
	if req.Items == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "items must be a list"})
		return
	}

	count, err := h.service.ApplyBake(c.Request.Context(), req.Items, req.Source)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "count": count})
}

// --------------------------------------------------
// GET /api/debug
// --------------------------------------------------
func (h *Handler) Debug(c *gin.Context) {
	st, err := h.service.Raw(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"raw_state": st})
}
