package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bankcards/internal/errors"
	"bankcards/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AuthenticateRequest represents a login request.
type AuthenticateRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthenticateResponse carries the issued token.
type AuthenticateResponse struct {
	Token string `json:"token"`
}

// Authenticate godoc
// @Summary Authenticate user and get a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AuthenticateRequest true "Credentials"
// @Success 200 {object} AuthenticateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/authenticate [post]
func (h *AuthHandler) Authenticate(c echo.Context) error {
	var req AuthenticateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Authenticate(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AuthenticateResponse{Token: token})
}
