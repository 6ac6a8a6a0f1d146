// Package auth is the identity boundary of the site: sign-up, sign-in,
// sign-out and profile edits for a single local session.
package auth

import "errors"

// User is a signed-up account as exposed to the rest of the application.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrUnknownProvider    = errors.New("unknown identity provider")
	ErrInvalidInput       = errors.New("invalid input")
)

// Service manages the current session. Operations that need a signed-in
// user return ErrNotSignedIn otherwise.
type Service interface {
	// CurrentUser returns the signed-in user, or nil.
	CurrentUser() (*User, error)
	SignUp(email, password, username, fullName string) (*User, error)
	SignIn(email, password string) (*User, error)
	// SignInWithProvider signs in with a canned third-party identity.
	SignInWithProvider(provider string) (*User, error)
	SignOut() error
	UpdateProfile(fullName, username string) (*User, error)
	UpdateProfilePicture(imageData string) (*User, error)
}
