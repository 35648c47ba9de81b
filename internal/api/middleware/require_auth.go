package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/clubhouse/board/internal/core/domain"
)

// RequireAuthenticated rejects anonymous requests with domain.ErrNotAuthenticated.
// It guards routes that have no policy action of their own.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IdentityFrom(c).IsAuthenticated() {
				return domain.ErrNotAuthenticated
			}
			return next(c)
		}
	}
}
