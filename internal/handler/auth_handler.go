package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"worklog/internal/auth"
	"worklog/internal/errors"
	"worklog/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// RegisterRequest represents an account registration request. OwnerID
// arrives as a string so a malformed value can be reported as
// invalid_owner_id rather than a generic bind failure.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
	OwnerID  string `json:"ownerId"`
}

// Login godoc
// @Summary Authenticate and obtain a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, role, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, LoginResponse{Token: token, Role: string(role)})
}

// Register godoc
// @Summary Register a new account (admin only)
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterRequest true "Account data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	principal, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role := auth.RoleUser
	if req.Role != "" {
		parsed, err := auth.ParseRole(req.Role)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		role = parsed
	}

	input := service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     role,
	}
	if req.OwnerID != "" {
		ownerID, err := strconv.ParseUint(req.OwnerID, 10, 32)
		if err != nil {
			httpErr := errors.MapErrorToHTTP(errors.ErrInvalidOwnerID)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		id := uint(ownerID)
		input.EmployeeID = &id
	}

	if err := h.authService.Register(c.Request().Context(), principal, input); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
