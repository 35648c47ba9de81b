package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubhouse/board/internal/core/ports"
)

type UserHandler struct {
	membership ports.MembershipService
}

func NewUserHandler(membership ports.MembershipService) *UserHandler {
	return &UserHandler{membership: membership}
}

// List handles GET /users. Admin only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.membership.ListUsers(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}
