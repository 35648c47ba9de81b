package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clubhouse/board/internal/api/cookie"
	"github.com/clubhouse/board/internal/api/metrics"
	"github.com/clubhouse/board/internal/api/middleware"
	"github.com/clubhouse/board/internal/core/domain"
	"github.com/clubhouse/board/internal/core/ports"
)

// AuthHandler serves sign-up, log-in, log-out, the current user and
// join-club.
type AuthHandler struct {
	auth       ports.Authenticator
	sessions   ports.SessionManager
	membership ports.MembershipService
	codec      *cookie.Codec
	log        zerolog.Logger
}

func NewAuthHandler(
	auth ports.Authenticator,
	sessions ports.SessionManager,
	membership ports.MembershipService,
	codec *cookie.Codec,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		sessions:   sessions,
		membership: membership,
		codec:      codec,
		log:        log,
	}
}

// Register creates a new user account.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Sign-up form"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	identity, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		RequestedAdmin:  bool(req.IsAdmin),
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, userResponse{User: identity})
}

// Login verifies credentials and starts a session.
//
// @Summary      Log in
// @Description  Sets the session cookie on success.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/log-in [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	identity, err := h.auth.Verify(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthFailed) {
			metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	// A fresh handle on every log-in; the previous one must not survive.
	if prev := middleware.HandleFrom(c); prev != "" {
		if err := h.sessions.End(ctx, prev); err != nil {
			return err
		}
	}

	handle, err := h.sessions.Start(ctx, identity)
	if err != nil {
		return err
	}
	ck, err := h.codec.Encode(handle)
	if err != nil {
		return domain.NewInternalError("encode session cookie", err)
	}
	c.SetCookie(ck)
	middleware.SetIdentity(c, identity)

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	metrics.SessionsStartedTotal.Inc()
	return c.JSON(http.StatusOK, userResponse{User: identity})
}

// Logout ends the session and clears the cookie. It always succeeds for
// callers without a session.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  statusResponse
// @Failure      500  {object}  map[string]string
// @Router       /auth/log-out [post]
// @Router       /auth/log-out [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.codec.Clear())

	if handle := middleware.HandleFrom(c); handle != "" {
		if err := h.sessions.End(c.Request().Context(), handle); err != nil {
			return err
		}
		metrics.SessionsEndedTotal.Inc()
	}

	return c.JSON(http.StatusOK, statusResponse{Status: "logged out"})
}

// Current returns the identity behind the session.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/current-user [get]
func (h *AuthHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, userResponse{User: actor(c)})
}

// JoinClub makes the caller a member when the passcode matches.
//
// @Summary      Join the club
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      joinClubRequest  true  "Club passcode"
// @Success      200   {object}  joinClubResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/join-club [post]
func (h *AuthHandler) JoinClub(c echo.Context) error {
	var req joinClubRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	identity, err := h.membership.JoinClub(c.Request().Context(), actor(c), req.Passcode)
	if err != nil {
		return err
	}
	middleware.SetIdentity(c, identity)

	metrics.MembershipsGrantedTotal.Inc()
	return c.JSON(http.StatusOK, joinClubResponse{Status: "welcome to the club", User: identity})
}
