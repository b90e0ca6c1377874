package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bankcards/internal/auth"
	"bankcards/internal/config"
	"bankcards/internal/handler"
	"bankcards/internal/model"
	"bankcards/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	cardHandler *handler.CardHandler,
	transferHandler *handler.TransferHandler,
	blockRequestHandler *handler.BlockRequestHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/authenticate", authHandler.Authenticate)
	api.POST("/auth/register", userHandler.Register)

	// Secured routes: token verification fails closed in the JWT middleware,
	// then the subject is resolved to a stored user.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey:  cfg.JWTKey,
			TokenLookup: "header:" + echo.HeaderAuthorization,
		}),
		auth.UserLoader(userRepo),
	)

	user := secured.Group("", auth.RequireRole(model.RoleUser))
	user.GET("/cards/view", cardHandler.ListOwnCards)
	user.POST("/balance/transfer", transferHandler.Transfer)
	user.POST("/cards/:id/block-request", blockRequestHandler.CreateBlockRequest)
	user.GET("/cards/block-requests/own", blockRequestHandler.ListOwnBlockRequests)

	admin := secured.Group("", auth.RequireRole(model.RoleAdmin))
	admin.POST("/cards", cardHandler.IssueCard)
	admin.GET("/cards", cardHandler.ListAllCards)
	admin.POST("/cards/:id/block", cardHandler.BlockCard)
	admin.POST("/cards/:id/activate", cardHandler.ActivateCard)
	admin.DELETE("/cards/:id", cardHandler.DeleteCard)
	admin.GET("/cards/block-requests", blockRequestHandler.ListUserBlockRequests)
	admin.POST("/cards/block-requests/:id/progress", blockRequestHandler.MarkInProgress)
	admin.POST("/cards/block-requests/:id/done", blockRequestHandler.MarkDone)
	admin.GET("/users", userHandler.ListUsers)
	admin.POST("/users", userHandler.CreateUser)
	admin.POST("/users/:id/password", userHandler.ChangePassword)
	admin.DELETE("/users/:id", userHandler.DeactivateUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
