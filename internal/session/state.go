package session

import "errors"

type State int

const (
	StateNotLoaded State = iota
	StateLoaded
	StateAuthenticated
	StateUnauthenticated
	StateLoginSucceeded
	StateLoginFailed
	StateCredentialsRequired
)

func (s State) String() string {
	switch s {
	case StateNotLoaded:
		return "NotLoaded"
	case StateLoaded:
		return "Loaded"
	case StateAuthenticated:
		return "Authenticated"
	case StateUnauthenticated:
		return "Unauthenticated"
	case StateLoginSucceeded:
		return "LoginSucceeded"
	case StateLoginFailed:
		return "LoginFailed"
	case StateCredentialsRequired:
		return "CredentialsRequired"
	default:
		return "Unknown"
	}
}

// Ready reports whether the page can be scraped as an authenticated viewer.
func (s State) Ready() bool {
	return s == StateAuthenticated || s == StateLoginSucceeded
}

var (
	ErrCredentialsRequired = errors.New("login required but no credentials provided")
	ErrLoginFailed         = errors.New("login failed")
	ErrElementTimeout      = errors.New("element did not appear in time")
)

// Credentials for the X account. Never persisted.
type Credentials struct {
	Identifier string
	Secret     string
}

// Present reports whether both parts were supplied.
func (c Credentials) Present() bool {
	return c.Identifier != "" && c.Secret != ""
}
