package users

import "errors"

var (
	// ErrDuplicateUser is returned when registering a username that already
	// exists. Usernames are matched case-sensitively.
	ErrDuplicateUser = errors.New("username already registered")
)

// Repo is the credential store. It is consulted at registration and login
// time only, never on every authenticated request.
type Repo interface {
	// Register stores a new user with a one-way hash of password. It does
	// not create a session.
	Register(username, password string) error
	// Verify reports whether username exists and password matches the
	// stored hash.
	Verify(username, password string) bool
	// Exists reports whether a user is registered.
	Exists(username string) bool
	// Clear empties the store. Test/reset hook.
	Clear()
}
