package domain

import "time"

// Post is the aggregate for published content.
type Post struct {
	ID        int64
	Title     string
	Content   string
	Available bool
	Author    string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
