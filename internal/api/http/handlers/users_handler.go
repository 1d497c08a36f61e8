package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/dto"
	httpapi "github.com/spec-kit/maintenance-service/internal/api/http/respond"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/service"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// UsersHandler serves registration and login.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(auth *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: auth}
}

// Register creates an account and returns a token.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("fullName, email, and password are required", nil)
	}

	user, token, expiresAt, err := h.auth.RegisterUser(c.Context(), req.FullName, req.Email, req.Password, req.CompanyID, req.UserRoleID)
	if err != nil {
		return err
	}
	return httpapi.Success(c, fiber.StatusCreated, "user registered", dto.AuthResponse{
		User:      toUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Login authenticates credentials and returns a token.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required", nil)
	}

	user, token, expiresAt, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return httpapi.Success(c, fiber.StatusOK, "login successful", dto.AuthResponse{
		User:      toUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		FullName:   user.FullName,
		Email:      user.Email,
		CompanyID:  user.CompanyID,
		UserRoleID: user.UserRoleID,
		Role:       string(user.Role()),
	}
}
