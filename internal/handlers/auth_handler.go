package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"order_admin/internal/auth"
	"order_admin/internal/middleware"
	"order_admin/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	tokens      *auth.Manager
	secure      bool
}

func NewAuthHandler(authService services.AuthService, tokens *auth.Manager, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens, secure: secure}
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Login checks credentials and sets the httpOnly accessToken cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(err)
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, token, int(h.tokens.TTL.Seconds()), "/", "", h.secure, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully logged in",
		"data": gin.H{
			"id":    user.ID,
			"name":  user.Username,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// VerifyAuth echoes the identity the auth middleware resolved.
func (h *AuthHandler) VerifyAuth(c *gin.Context) {
	user := middleware.CurrentUser(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification success",
		"data": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// Logout revokes the session, if any, and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if tokenStr, err := c.Cookie(middleware.AccessTokenCookie); err == nil && tokenStr != "" {
		if claims, err := h.tokens.Parse(tokenStr); err == nil {
			if err := h.authService.Logout(c.Request.Context(), claims.SessionID); err != nil {
				c.Error(err)
				return
			}
		}
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secure, true)

	c.JSON(http.StatusOK, gin.H{"message": "logout success"})
}
