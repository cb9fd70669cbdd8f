package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/fintera-homes/internal/services"
)

// AuthHandler opens and closes staff sessions. Clients never log in;
// only admins and sales agents hold accounts.
type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// StaffCredentials is the login body of an admin or agent
type StaffCredentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionRequest names the refresh token of an open session
type SessionRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// sessionResponse is the token pair handed to the staff dashboard
type sessionResponse struct {
	*services.LoginResult
	TokenType string `json:"token_type"`
}

func newSession(result *services.LoginResult) sessionResponse {
	return sessionResponse{LoginResult: result, TokenType: "Bearer"}
}

// bindSession reads the refresh token from the body and answers 400 when it is missing
func bindSession(c *gin.Context) (string, bool) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el refresh_token de la sesión"})
		return "", false
	}
	return strings.TrimSpace(req.RefreshToken), true
}

// @Summary Staff Login
// @Description Opens a session for an admin or sales agent
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body StaffCredentials true "Staff credentials"
// @Success 200 {object} services.LoginResult
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var creds StaffCredentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingrese un correo válido y su contraseña"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), strings.ToLower(strings.TrimSpace(creds.Email)), creds.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSession(result))
}

// @Summary Rotate Session
// @Description Trades a refresh token for a new pair; the old token stops working
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SessionRequest true "Session"
// @Success 200 {object} services.LoginResult
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, ok := bindSession(c)
	if !ok {
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSession(result))
}

// @Summary Close Session
// @Tags Auth
// @Accept json
// @Param request body SessionRequest true "Session"
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := bindSession(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
