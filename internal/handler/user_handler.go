package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bankcards/internal/errors"
	"bankcards/internal/model"
	"bankcards/internal/service"
)

// UserHandler handles user management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest represents a self-registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	LastName string `json:"last_name" validate:"required,max=50"`
	Surname  string `json:"surname" validate:"max=50"`
	Login    string `json:"login" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateUserRequest represents an administrative user-creation request.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	LastName string `json:"last_name" validate:"required,max=50"`
	Surname  string `json:"surname" validate:"max=50"`
	Login    string `json:"login" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := &model.User{
		Name:     req.Name,
		LastName: req.LastName,
		Surname:  req.Surname,
		Login:    req.Login,
	}
	if err := h.userService.Register(c.Request().Context(), user, req.Password); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "user registered successfully"})
}

// CreateUser godoc
// @Summary Create a user with an explicit role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := &model.User{
		Name:     req.Name,
		LastName: req.LastName,
		Surname:  req.Surname,
		Login:    req.Login,
		Role:     model.Role(req.Role),
	}
	if err := h.userService.Create(c.Request().Context(), user, req.Password); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "user created successfully"})
}

// ListUsers godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// ChangePassword godoc
// @Summary Change a user's password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body ChangePasswordRequest true "New password"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/password [post]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ChangePassword(c.Request().Context(), userID, req.Password); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

// DeactivateUser godoc
// @Summary Deactivate a user and block their cards
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeactivateUser(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.userService.Deactivate(c.Request().Context(), userID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deactivated"})
}

func parseID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
