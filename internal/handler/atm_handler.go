package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kashala/atm-finder-go/internal/models"
	"github.com/kashala/atm-finder-go/internal/service"
	"github.com/kashala/atm-finder-go/internal/spatial"
	"github.com/kashala/atm-finder-go/pkg/response"
)

// ATMHandler handles HTTP requests for ATM records
type ATMHandler struct {
	atms     *service.ATMService
	selector *service.SelectorService
	router   service.RouteProvider
}

// NewATMHandler creates a new ATM handler
func NewATMHandler(atms *service.ATMService, selector *service.SelectorService, router service.RouteProvider) *ATMHandler {
	return &ATMHandler{atms: atms, selector: selector, router: router}
}

// List handles GET /api/v1/atms
func (h *ATMHandler) List(c *gin.Context) {
	var filter models.ATMFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	atms, err := h.atms.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, "Failed to list ATMs")
		return
	}

	response.Success(c, gin.H{
		"data":  atms,
		"total": len(atms),
	})
}

// Nearby handles GET /api/v1/atms/nearby
func (h *ATMHandler) Nearby(c *gin.Context) {
	var filter models.NearbyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if !spatial.IsValidLatLon(filter.Lat, filter.Lon) {
		response.BadRequest(c, "Valid lat and lon are required")
		return
	}

	atms, err := h.atms.Nearby(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, "Failed to search nearby ATMs")
		return
	}

	response.Success(c, gin.H{
		"data":  atms,
		"total": len(atms),
	})
}

// Banks handles GET /api/v1/atms/banks
func (h *ATMHandler) Banks(c *gin.Context) {
	banks, err := h.atms.Banks(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to list banks")
		return
	}
	response.Success(c, banks)
}

// GetByID handles GET /api/v1/atms/:id
func (h *ATMHandler) GetByID(c *gin.Context) {
	atm, err := h.atms.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get ATM")
		return
	}
	if atm == nil {
		response.NotFound(c, "ATM not found")
		return
	}
	response.Success(c, atm)
}

// Best handles GET /api/v1/atms/best. It ranks the matching candidates by
// distance, then asks the routing service for per-candidate travel times
// and returns the fastest one. Data is null when no candidate is
// reachable.
func (h *ATMHandler) Best(c *gin.Context) {
	var filter models.ATMFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if !spatial.IsValidLatLon(filter.Lat, filter.Lon) {
		response.BadRequest(c, "Valid lat and lon are required")
		return
	}
	if filter.Limit <= 0 {
		// Routing round trips are the expensive part; only scan the
		// closest few by default.
		filter.Limit = 8
	}

	candidates, err := h.atms.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, "Failed to list candidate ATMs")
		return
	}

	origin := models.Coordinate{Latitude: filter.Lat, Longitude: filter.Lon}
	best, duration, err := h.selector.Best(c.Request.Context(), origin, candidates)
	if err != nil {
		response.InternalError(c, "Best-ATM selection aborted")
		return
	}
	if best == nil {
		response.Success(c, nil)
		return
	}

	response.Success(c, gin.H{
		"atm":               best,
		"durationSeconds":   duration.Seconds(),
		"travelTimeMinutes": int(duration.Minutes() + 0.5),
	})
}

// Route handles GET /api/v1/atms/:id/route
func (h *ATMHandler) Route(c *gin.Context) {
	var origin struct {
		Lat float64 `form:"lat"`
		Lon float64 `form:"lon"`
	}
	if err := c.ShouldBindQuery(&origin); err != nil || !spatial.IsValidLatLon(origin.Lat, origin.Lon) {
		response.BadRequest(c, "Valid lat and lon are required")
		return
	}

	atm, err := h.atms.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get ATM")
		return
	}
	if atm == nil {
		response.NotFound(c, "ATM not found")
		return
	}

	route, err := h.router.Route(c.Request.Context(),
		models.Coordinate{Latitude: origin.Lat, Longitude: origin.Lon},
		atm.Coordinate)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "Routing service unavailable")
		return
	}

	response.Success(c, gin.H{
		"points":            route.Points,
		"durationSeconds":   route.DurationSeconds,
		"distanceKm":        route.DistanceKm,
		"travelTimeMinutes": route.TravelTimeMinutes(),
	})
}
