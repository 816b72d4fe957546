package model

import "time"

// Item is the domain model for a todo entry as the server returns it.
// The server assigns ID and CreatedAt; the client never generates them.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}
