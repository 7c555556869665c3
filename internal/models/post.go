package models

import "time"

// Post represents an authored content record. Only the author may mutate it.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Slug      string    `json:"slug"`
	Category  string    `json:"category,omitempty"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatePostInput is the payload accepted when creating a post. Slug and author
// are derived server-side, never taken from the client.
type CreatePostInput struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category"`
}

// UpdatePostInput carries the mutable post fields. Pointers distinguish
// "absent" from "set to empty"; absent fields keep their stored value.
type UpdatePostInput struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}
