package domain

import "time"

// AnonymousAuthor replaces author attribution for viewers who are not members.
const AnonymousAuthor = "Anonymous"

// Message is a board post. It is never mutated after creation.
type Message struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	AuthorID  int64     `json:"authorId"`
}

// AuthoredMessage is a message joined with its author's display fields.
type AuthoredMessage struct {
	Message
	AuthorFirstName string
	AuthorLastName  string
	AuthorUsername  string
}

// MessageView is a message shaped for a particular viewer.
type MessageView struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	Username  string    `json:"username,omitempty"`
}
