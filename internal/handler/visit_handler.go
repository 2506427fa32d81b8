package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kashala/atm-finder-go/internal/middleware"
	"github.com/kashala/atm-finder-go/internal/service"
	"github.com/kashala/atm-finder-go/pkg/response"
)

// VisitHandler handles HTTP requests for visit history
type VisitHandler struct {
	visits *service.VisitService
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(visits *service.VisitService) *VisitHandler {
	return &VisitHandler{visits: visits}
}

// List handles GET /api/v1/visits
func (h *VisitHandler) List(c *gin.Context) {
	visits, err := h.visits.History(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "Failed to load visit history")
		return
	}
	response.Success(c, gin.H{
		"data":  visits,
		"total": len(visits),
	})
}

type createVisitRequest struct {
	ATMName       string `json:"atmName" binding:"required"`
	ATMAddress    string `json:"atmAddress"`
	TravelTimeMin *int   `json:"travelTimeMin"`
}

// Create handles POST /api/v1/visits
func (h *VisitHandler) Create(c *gin.Context) {
	var req createVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "atmName is required")
		return
	}

	visit, err := h.visits.Record(c.Request.Context(), middleware.CurrentUserID(c),
		req.ATMName, req.ATMAddress, req.TravelTimeMin)
	if err != nil {
		response.InternalError(c, "Failed to record visit")
		return
	}
	response.Success(c, visit)
}

// Clear handles DELETE /api/v1/visits
func (h *VisitHandler) Clear(c *gin.Context) {
	deleted, err := h.visits.Clear(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "Failed to clear visit history")
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}
