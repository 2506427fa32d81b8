package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kashala/atm-finder-go/internal/service"
)

// LegacyHandler serves the login/registration endpoints the early
// prototype screens still call. Same accounts as /api/v1/auth, same
// bcrypt-hashed credentials; only the wire shape is the historical one
// (French field names, `{success, message?, user?}` envelope).
type LegacyHandler struct {
	auth *service.AuthService
}

// NewLegacyHandler creates a new legacy handler
func NewLegacyHandler(auth *service.AuthService) *LegacyHandler {
	return &LegacyHandler{auth: auth}
}

type legacyLoginRequest struct {
	Email      string `json:"email"`
	MotDePasse string `json:"motdepasse"`
}

type legacyUser struct {
	ID    string `json:"id"`
	Nom   string `json:"nom"`
	Email string `json:"email"`
}

// Login handles POST /legacy/login.php
func (h *LegacyHandler) Login(c *gin.Context) {
	var req legacyLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.MotDePasse == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Champs manquants"})
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Email, req.MotDePasse)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Mot de passe incorrect"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Erreur de connexion à la base de données"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": legacyUser{
			ID:    session.User.ID,
			Nom:   session.User.Name,
			Email: session.User.Email,
		},
	})
}

type legacyRegisterRequest struct {
	Nom        string `json:"nom"`
	Email      string `json:"email"`
	MotDePasse string `json:"motdepasse"`
}

// Register handles POST /legacy/register.php
func (h *LegacyHandler) Register(c *gin.Context) {
	var req legacyRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Nom == "" || req.Email == "" || req.MotDePasse == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Champs manquants"})
		return
	}

	session, err := h.auth.Register(c.Request.Context(), req.Nom, req.Email, req.MotDePasse)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Email déjà utilisé"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Erreur lors de l'inscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": legacyUser{
			ID:    session.User.ID,
			Nom:   session.User.Name,
			Email: session.User.Email,
		},
	})
}
