package domain

import "time"

type ID string

// User is a waitlist entry. Email is stored as given; neither format nor
// uniqueness is enforced.
type User struct {
	ID        ID
	Email     string
	CreatedAt time.Time
}
