package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manuel14gregorioo/Agencia/internal/model"
	"github.com/manuel14gregorioo/Agencia/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login exchanges credentials for an access token plus a refresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.Email, req.Password,
		c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, resp)
}

// Refresh mints a new access token from a valid refresh token. The
// refresh token is not rotated.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh token required"})
		return
	}

	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the supplied refresh token when it belongs to the
// caller. A missing or foreign token still yields success; only the local
// session context ends.
func (h *AuthHandler) Logout(c *gin.Context) {
	user := GetAuthUser(c)

	var req model.LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.svc.Logout(c.Request.Context(), user.ID, req.RefreshToken); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SuccessResponse{Success: true, Message: "logged out"})
}

// LogoutAll revokes every session the caller holds.
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	user := GetAuthUser(c)

	if _, err := h.svc.LogoutAll(c.Request.Context(), user.ID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SuccessResponse{Success: true, Message: "logged out everywhere"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := GetAuthUser(c)

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current and new password required"})
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SuccessResponse{Success: true, Message: "password updated"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := GetAuthUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
	})
}
