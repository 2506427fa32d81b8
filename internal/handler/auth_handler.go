package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/kashala/atm-finder-go/internal/middleware"
	"github.com/kashala/atm-finder-go/internal/service"
	"github.com/kashala/atm-finder-go/pkg/response"
)

// AuthHandler handles HTTP requests for accounts and sessions
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name, email and password are required")
		return
	}

	session, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Conflict(c, "Email already registered")
			return
		}
		response.InternalError(c, "Failed to register")
		return
	}
	response.Success(c, session)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		response.InternalError(c, "Failed to log in")
		return
	}
	response.Success(c, session)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.GetUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "Failed to load profile")
		return
	}
	if user == nil {
		response.NotFound(c, "User not found")
		return
	}
	response.Success(c, user)
}

// UpdatePrefs handles PATCH /api/v1/auth/prefs. The body is merged into
// the stored prefs object; null values delete keys.
func (h *AuthHandler) UpdatePrefs(c *gin.Context) {
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "Invalid prefs payload")
		return
	}

	user, err := h.auth.UpdatePrefs(c.Request.Context(), middleware.CurrentUserID(c), patch)
	if err != nil {
		response.InternalError(c, "Failed to update prefs")
		return
	}
	response.Success(c, user)
}
