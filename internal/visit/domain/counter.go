package domain

// Counter is the site-wide visit tally. There is exactly one, stored under a
// well-known id, and Count never goes below zero.
type Counter struct {
	ID    string
	Count int64
}
