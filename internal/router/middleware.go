package router

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"worklog/internal/auth"
	apperrors "worklog/internal/errors"
)

// Authentication returns the per-request gate for protected routes.
// It extracts the bearer token, validates it through the token service
// and attaches the resulting principal to the request context before
// any handler runs. A missing, tampered or expired token rejects the
// request with 401 and no handler is invoked.
func Authentication(tokens *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			principal, err := tokens.Validate(tokenString)
			if err != nil {
				return nil, err
			}
			return principal, nil
		},
		SuccessHandler: func(c echo.Context) {
			principal, ok := c.Get("user").(auth.Principal)
			if !ok {
				return
			}
			ctx := auth.ContextWithPrincipal(c.Request().Context(), principal)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			code := "UNAUTHENTICATED"
			if errors.Is(err, auth.ErrTokenExpired) {
				code = "TOKEN_EXPIRED"
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  code,
			})
		},
	})
}
