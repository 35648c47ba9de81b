package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubhouse/board/internal/api/metrics"
	"github.com/clubhouse/board/internal/core/ports"
)

// MessageHandler serves the message board routes.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List handles GET /messages.
//
// @Summary      List messages
// @Description  Newest first. Authors are shown to members only.
// @Tags         messages
// @Produce      json
// @Success      200  {object}  messageListResponse
// @Failure      500  {object}  map[string]string
// @Router       /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageListResponse{Messages: views})
}

// Get handles GET /messages/:id.
//
// @Summary      Get a message
// @Tags         messages
// @Produce      json
// @Param        id   path      int  true  "Message id"
// @Success      200  {object}  messageViewResponse
// @Failure      404  {object}  map[string]string
// @Router       /messages/{id} [get]
func (h *MessageHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), actor(c), messageID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageViewResponse{Message: view})
}

// Create handles POST /messages.
//
// @Summary      Post a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      createMessageRequest  true  "Message"
// @Success      201   {object}  createdMessageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	msg, err := h.service.Create(c.Request().Context(), actor(c), ports.CreateMessageInput{
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		return err
	}

	metrics.MessagesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createdMessageResponse{Message: msg})
}

// Delete handles DELETE /messages/:id.
//
// @Summary      Delete a message
// @Tags         messages
// @Produce      json
// @Param        id   path      int  true  "Message id"
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), actor(c), messageID(c)); err != nil {
		return err
	}

	metrics.MessagesDeletedTotal.Inc()
	return c.JSON(http.StatusOK, statusResponse{Status: "deleted"})
}
