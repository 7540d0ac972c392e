package entities

// User is the authenticated caller resolved from a bearer credential.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
