package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kashala/atm-finder-go/internal/middleware"
	"github.com/kashala/atm-finder-go/internal/realtime"
	"github.com/kashala/atm-finder-go/internal/service"
	"github.com/kashala/atm-finder-go/pkg/response"
)

// StateHandler handles HTTP requests for ATM availability states
type StateHandler struct {
	availability *service.AvailabilityService
	hub          *realtime.Hub
}

// NewStateHandler creates a new state handler
func NewStateHandler(availability *service.AvailabilityService, hub *realtime.Hub) *StateHandler {
	return &StateHandler{availability: availability, hub: hub}
}

// List handles GET /api/v1/atms/states
func (h *StateHandler) List(c *gin.Context) {
	states, err := h.availability.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to list availability states")
		return
	}
	response.Success(c, gin.H{
		"data":  states,
		"total": len(states),
	})
}

// Get handles GET /api/v1/atms/:id/state
func (h *StateHandler) Get(c *gin.Context) {
	atmID := c.Param("id")
	available, known := h.availability.Get(atmID)
	response.Success(c, gin.H{
		"atmId":       atmID,
		"isAvailable": available,
		"known":       known,
		"saving":      h.availability.Saving(atmID),
	})
}

type saveStateRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

// Save handles PUT /api/v1/atms/:id/state
func (h *StateHandler) Save(c *gin.Context) {
	var req saveStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "isAvailable is required")
		return
	}

	atmID := c.Param("id")
	userID := middleware.CurrentUserID(c)

	if err := h.availability.Save(c.Request.Context(), atmID, *req.IsAvailable, userID); err != nil {
		response.InternalError(c, "Failed to save availability. The previous value was restored.")
		return
	}

	available, _ := h.availability.Get(atmID)
	response.Success(c, gin.H{
		"atmId":       atmID,
		"isAvailable": available,
	})
}

// Stream handles GET /api/v1/atms/states/stream as server-sent events.
// Each event only signals that something changed; clients re-fetch the
// full state list.
func (h *StateHandler) Stream(c *gin.Context) {
	ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("change", ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
