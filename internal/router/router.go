package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"worklog/internal/auth"
	"worklog/internal/handler"
)

// Register wires routes and middleware. Routes are partitioned into a
// public set (login, health, docs) and a protected set behind the
// authentication gate; everything that touches worklog data lives in
// the protected set.
func Register(
	e *echo.Echo,
	tokens *auth.JWTService,
	authHandler *handler.AuthHandler,
	worklogHandler *handler.WorklogHandler,
	teamHandler *handler.TeamHandler,
	employeeHandler *handler.EmployeeHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)

	// Protected routes (require a valid bearer token)
	secured := api.Group("", Authentication(tokens))

	secured.POST("/auth/register", authHandler.Register)

	secured.GET("/worklogs", worklogHandler.List)
	secured.GET("/worklogs/export", worklogHandler.Export)
	secured.GET("/worklogs/:id", worklogHandler.Get)
	secured.POST("/worklogs", worklogHandler.Create)
	secured.PUT("/worklogs/:id", worklogHandler.Update)
	secured.DELETE("/worklogs/:id", worklogHandler.Delete)

	secured.GET("/teams", teamHandler.List)
	secured.GET("/teams/:id", teamHandler.Get)
	secured.POST("/teams", teamHandler.Create)
	secured.PUT("/teams/:id", teamHandler.Update)
	secured.DELETE("/teams/:id", teamHandler.Delete)

	secured.GET("/employees", employeeHandler.List)
	secured.GET("/employees/:id", employeeHandler.Get)
	secured.POST("/employees", employeeHandler.Create)
	secured.PUT("/employees/:id", employeeHandler.Update)
	secured.DELETE("/employees/:id", employeeHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
