package domain

import "time"

type ID string

type Post struct {
	ID        ID
	Title     string
	Content   string
	CreatedAt time.Time
}
