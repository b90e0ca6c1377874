package auth

import (
	"net/http"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"bankcards/internal/model"
	"bankcards/internal/repository"
)

const currentUserKey = "current_user"

// UserLoader resolves the token subject to a stored user and attaches it to
// the request context. It runs after the JWT middleware, which stores the
// verified token under "user" in the echo context.
func UserLoader(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwtv5.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			login, err := token.Claims.GetSubject()
			if err != nil || login == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			user, err := users.FindByLogin(c.Request().Context(), login)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}
			if user.Status != model.UserStatusActive {
				return echo.NewHTTPError(http.StatusForbidden, "user is not active")
			}
			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// RequireRole rejects requests whose authenticated user lacks the role.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if user.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by UserLoader.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(currentUserKey).(*model.User)
	return user, ok
}
