package domain

import "time"

// Event is a gathering posted by a user that others can save or attend.
type Event struct {
	ID          int64
	UserID      int64
	ImageURL    string
	Title       string
	Caption     string
	NumberGoing int
	Time        time.Time
	Location    string
	CreatedAt   time.Time
}
