package entity

// maxUsernameLength matches the identity provider's username limit.
const maxUsernameLength = 150

// User mirrors an account of the external identity provider.
type User struct {
	ID       int64
	Username string
}

// String returns the username.
func (u *User) String() string {
	return u.Username
}

// ValidateUsername checks that a username can be stored.
func ValidateUsername(username string) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "is required"}
	}
	if len(username) > maxUsernameLength {
		return &ValidationError{Field: "username", Message: "too long"}
	}
	return nil
}
