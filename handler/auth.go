package handler

import (
	"catalog-service/dto"
	"github.com/gin-gonic/gin"
	"net/http"
)

func (h *Handler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	user, err := h.svc.Auth.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "Registration failed.", err)
		return
	}
	respond(c, http.StatusCreated, "User registered successfully.", gin.H{
		"user": dto.UserSummary{ID: user.ID, FirstName: user.FirstName, Email: user.Email, Role: user.Role},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	res, err := h.svc.Auth.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "Invalid email or password.", err)
		return
	}
	respond(c, http.StatusOK, "Login successful.", gin.H{
		"access_token": res.Token,
		"token_type":   res.TokenType,
		"expires_in":   res.ExpiresIn,
		"user":         res.User,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	identity, _ := identityFrom(c)
	if err := h.svc.Auth.Logout(c.Request.Context(), identity); err != nil {
		h.fail(c, "Logout failed.", err)
		return
	}
	respond(c, http.StatusOK, "Successfully logged out.", nil)
}

func (h *Handler) Me(c *gin.Context) {
	identity, _ := identityFrom(c)
	user, err := h.svc.Auth.Me(c.Request.Context(), identity)
	if err != nil {
		h.fail(c, "Failed to fetch user.", err)
		return
	}
	respond(c, http.StatusOK, "User fetched successfully.", gin.H{"user": user})
}

func (h *Handler) SendResetOTP(c *gin.Context) {
	var req dto.ResetOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	if err := h.svc.Auth.SendResetOTP(c.Request.Context(), req.Email); err != nil {
		h.fail(c, "Failed to send OTP.", err)
		return
	}
	respond(c, http.StatusOK, "OTP sent to your email.", nil)
}

func (h *Handler) VerifyResetOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	if err := h.svc.Auth.VerifyResetOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		h.fail(c, "Invalid or expired OTP.", err)
		return
	}
	respond(c, http.StatusOK, "OTP verified. You can now reset your password.", nil)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req dto.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	if err := h.svc.Auth.ResetPassword(c.Request.Context(), req.Email, req.Password); err != nil {
		h.fail(c, "Failed to reset password.", err)
		return
	}
	respond(c, http.StatusOK, "Password has been reset successfully.", nil)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	identity, _ := identityFrom(c)
	if err := h.svc.Auth.ChangePassword(c.Request.Context(), identity, req); err != nil {
		h.fail(c, "Failed to update password.", err)
		return
	}
	respond(c, http.StatusOK, "Password updated successfully.", nil)
}

func (h *Handler) Profile(c *gin.Context) {
	identity, _ := identityFrom(c)
	profile, err := h.svc.Auth.Profile(c.Request.Context(), identity)
	if err != nil {
		h.fail(c, "Failed to fetch profile.", err)
		return
	}
	respond(c, http.StatusOK, "Profile fetched successfully.", gin.H{"data": profile})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}
	identity, _ := identityFrom(c)
	profile, err := h.svc.Auth.UpdateProfile(c.Request.Context(), identity, req)
	if err != nil {
		h.fail(c, "Failed to update profile.", err)
		return
	}
	respond(c, http.StatusOK, "Profile updated successfully.", gin.H{"data": profile})
}
