package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/luthfir/posts-api/internal/api/middleware"
	"github.com/luthfir/posts-api/internal/domain"
	"github.com/luthfir/posts-api/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
		logger:      logger,
	}
}

type RegisterRequest struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{"message": "Invalid request body", "status": http.StatusBadRequest})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			writeJSON(w, http.StatusUnprocessableEntity, envelope{
				"message": "The given data was invalid.",
				"errors":  map[string][]string{"email": {"The email has already been taken."}},
				"status":  http.StatusUnprocessableEntity,
			})
			return
		}
		// Passwords are redacted from the echoed input.
		h.logger.Error("registration failed",
			zap.Error(err),
			zap.Any("input", map[string]string{"name": req.Name, "email": req.Email}),
		)
		writeJSON(w, http.StatusInternalServerError, envelope{
			"message": "Registration failed. Please try again later.",
			"status":  http.StatusInternalServerError,
		})
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"user":    result.User,
		"message": "User registered successfully",
		"status":  http.StatusCreated,
		"token":   result.Token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{"message": "Invalid request body", "status": http.StatusBadRequest})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeValidationErrors(w, err)
		return
	}

	ip := clientIP(r)
	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: ip,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRateLimited):
			writeJSON(w, http.StatusTooManyRequests, envelope{
				"message": "Too many login attempts. Please try again later.",
			})
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, envelope{
				"message": "Invalid credential",
			})
		default:
			h.logger.Error("login error",
				zap.Error(err),
				zap.String("email", req.Email),
				zap.String("ip", ip),
			)
			writeJSON(w, http.StatusInternalServerError, envelope{
				"message": "Login failed. Please try again later.",
				"status":  http.StatusInternalServerError,
			})
		}
		return
	}

	if result.AlreadyLoggedIn {
		writeJSON(w, http.StatusOK, envelope{
			"message": "You are already logged in.",
			"status":  http.StatusOK,
		})
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"token":      result.Token,
		"expires_in": result.ExpiresIn,
		"message":    "User logged in successfully",
		"status":     http.StatusOK,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, envelope{"message": "Unauthenticated"})
		return
	}

	if err := h.authService.Logout(r.Context(), principal.TokenID); err != nil {
		h.logger.Error("logout error",
			zap.String("user_id", principal.UserID.String()),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, envelope{
			"message": "Logout failed. Please try again later.",
			"status":  http.StatusInternalServerError,
		})
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"message": "User logged out successfully",
		"status":  http.StatusOK,
	})
}

// Me returns the authenticated user as a bare resource.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, envelope{"message": "Unauthenticated"})
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), principal.UserID)
	if err != nil {
		h.logger.Error("fetch user error",
			zap.String("user_id", principal.UserID.String()),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, envelope{
			"message": "Could not load user. Please try again later.",
			"status":  http.StatusInternalServerError,
		})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// clientIP relies on chi's RealIP middleware having rewritten
// RemoteAddr; the port is stripped when still present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
