package handler

import (
	"encoding/json"

	"github.com/clubhouse/board/internal/core/domain"
)

// --- Request types ---

type registerRequest struct {
	FirstName       string    `json:"firstName"       form:"firstName"`
	LastName        string    `json:"lastName"        form:"lastName"`
	Email           string    `json:"email"           form:"email"`
	Username        string    `json:"username"        form:"username"`
	Password        string    `json:"password"        form:"password"`
	ConfirmPassword string    `json:"confirmPassword" form:"confirmPassword"`
	IsAdmin         adminFlag `json:"isAdmin"         form:"isAdmin" swaggertype:"boolean"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type joinClubRequest struct {
	Passcode string `json:"passcode" form:"passcode"`
}

type createMessageRequest struct {
	Title string `json:"title" form:"title"`
	Text  string `json:"text"  form:"text"`
}

// adminFlag is true only for a JSON true or the exact string "true".
// Any other value, numbers included, is false and never fails the bind.
type adminFlag bool

func (b *adminFlag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*b = adminFlag(t)
	case string:
		*b = t == "true"
	default:
		*b = false
	}
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query values.
func (b *adminFlag) UnmarshalParam(param string) error {
	*b = param == "true"
	return nil
}

// --- Response types ---

type userResponse struct {
	User *domain.Identity `json:"user"`
}

type usersResponse struct {
	Users []*domain.Identity `json:"users"`
}

type joinClubResponse struct {
	Status string           `json:"status"`
	User   *domain.Identity `json:"user"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type messageListResponse struct {
	Messages []domain.MessageView `json:"messages"`
}

type messageViewResponse struct {
	Message *domain.MessageView `json:"message"`
}

type createdMessageResponse struct {
	Message *domain.Message `json:"message"`
}
