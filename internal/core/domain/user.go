package domain

import "time"

// User is a registered account as stored by the credential store.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsMember     bool      `json:"isMember"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FullName is the display form used for author attribution.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Identity returns the public view of the user. The password hash is dropped.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
		IsMember:  u.IsMember,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// Identity is the verified actor behind a session. A nil *Identity is the
// anonymous visitor.
type Identity struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsMember  bool      `json:"isMember"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAuthenticated reports whether the identity belongs to a signed-in user.
func (i *Identity) IsAuthenticated() bool {
	return i != nil && i.ID != 0
}
