package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/tasteai/v2/internal/application/user"
	"github.com/tasteai/v2/pkg/errors"
	"go.uber.org/zap"
)

// AuthHandlers handles authentication and account recovery requests
type AuthHandlers struct {
	userService *user.UserService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(userService *user.UserService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		userService: userService,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Register handles POST /api/v2/auth/register
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var cmd user.RegisterCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		writeError(w, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	resp, err := h.userService.Register(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    resp,
		Message: "Account created successfully",
	})
}

// Login handles POST /api/v2/auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd user.LoginCommand
	if err := decodeBody(r, &cmd); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		writeError(w, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	resp, err := h.userService.Login(r.Context(), cmd)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    resp,
		Message: "Logged in successfully",
	})
}

type resetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type updatePasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// ResetPassword handles POST /api/v2/auth/reset-password.
// It emails a short-lived one-time code to the account.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	if err := h.userService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Password reset code sent",
	})
}

// VerifyOTP handles POST /api/v2/auth/verify-otp
func (h *AuthHandlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	if err := h.userService.VerifyResetCode(r.Context(), req.Email, req.OTP); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Code verified",
	})
}

// UpdatePassword handles POST /api/v2/auth/update-password.
// Requires a previously verified reset code for the same email.
func (h *AuthHandlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Password updated",
	})
}
