package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clubhouse/board/internal/api/cookie"
	"github.com/clubhouse/board/internal/core/domain"
	"github.com/clubhouse/board/internal/core/ports"
)

const (
	identityKey = "identity"
	handleKey   = "session_handle"
)

// Session resolves the session cookie into an identity and stores both on
// the echo context. Requests without a usable cookie continue as anonymous.
func Session(codec *cookie.Codec, sessions ports.SessionManager, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			handle, err := codec.Decode(c.Request())
			if err != nil {
				if !errors.Is(err, cookie.ErrNoCookie) {
					log.Debug().
						Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
						Msg("discarding invalid session cookie")
				}
				return next(c)
			}
			c.Set(handleKey, handle)

			identity, err := sessions.Resolve(c.Request().Context(), handle)
			if err != nil {
				return err
			}
			if identity != nil {
				c.Set(identityKey, identity)
			}

			return next(c)
		}
	}
}

// IdentityFrom returns the resolved identity, or nil for anonymous visitors.
func IdentityFrom(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}

// HandleFrom returns the verified session handle carried by the request.
func HandleFrom(c echo.Context) string {
	handle, _ := c.Get(handleKey).(string)
	return handle
}

// SetIdentity replaces the identity for the rest of the request.
func SetIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(identityKey, identity)
}
