package models

// User is the demo identity record. There is no password credential; a login
// mints the record from the submitted email (see handlers.AuthHandler).
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
