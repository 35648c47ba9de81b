package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clubhouse/board/internal/api/middleware"
	"github.com/clubhouse/board/internal/core/domain"
)

// actor returns the identity resolved by the Session middleware. A nil
// result is the anonymous visitor; handlers pass it to the services as is
// and let the policy decide.
func actor(c echo.Context) *domain.Identity {
	return middleware.IdentityFrom(c)
}

// messageID parses the :id path parameter. Ids start at 1, so anything
// unparsable becomes 0 and resolves to "message not found" after the
// policy has run.
func messageID(c echo.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0
	}
	return id
}
