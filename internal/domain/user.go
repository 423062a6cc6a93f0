package domain

import "time"

// User represents an account holder. The credential and token fields are
// managed exclusively by the auth service and must never appear in a
// serialized response except through the explicit token triple.
type User struct {
	ID                int64
	Username          string
	PasswordHash      string
	SessionToken      string
	SessionExpiration time.Time
	RefreshToken      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SessionValid reports whether the user's session token is still usable at
// the given instant. Expiration is checked lazily on read; nothing sweeps
// expired sessions in the background.
func (u *User) SessionValid(now time.Time) bool {
	return u.SessionToken != "" && now.Before(u.SessionExpiration)
}

// Profile aggregates a user with everything they own or follow, mirroring
// the full user serialization returned by the profile endpoint.
type Profile struct {
	User            *User
	Stories         []Story
	Events          []Event
	Recipes         []Recipe
	Pantry          []Ingredient
	SavedStories    []Story
	SavedEvents     []Event
	SavedRecipes    []Recipe
	EventsAttending []Event
}
