package models

// Identity is the authenticated caller of a single request. It is derived
// from a verified token and never stored.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}
