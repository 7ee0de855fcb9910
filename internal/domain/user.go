package domain

// User is the domain entity for an application user.
// ID is an opaque string (uuid v4).
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Admin        bool
}
