package authadmin

import "strings"

// Logger is the logging contract of the client
type Logger interface {
	Warn(format string, v ...interface{})
}

// User is the account representation of the auth admin API
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	UserMetadata UserMetadata `json:"user_metadata"`

	Wrapped *User `json:"user,omitempty"`
}

// UserMetadata is the free-form profile data set at sign-up
type UserMetadata struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// DisplayName prefers the metadata name, then the e-mail address
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.UserMetadata.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(u.UserMetadata.FullName); name != "" {
		return name
	}
	return u.Email
}
