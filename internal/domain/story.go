package domain

import "time"

// Story is a short image post shared by a user.
type Story struct {
	ID        int64
	UserID    int64
	ImageURL  string
	Title     string
	Caption   string
	CreatedAt time.Time
}
