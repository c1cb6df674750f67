package portal

import "errors"

// AuthError represents a failure to establish an authenticated portal session
type AuthError struct {
	Wrapping error
}

func (err *AuthError) Error() string {
	return err.Wrapping.Error()
}

func (err *AuthError) Unwrap() error {
	return err.Wrapping
}

// ParseError represents an unexpected portal page structure, usually caused by an upstream layout change
type ParseError struct {
	Wrapping error
}

func (err *ParseError) Error() string {
	return err.Wrapping.Error()
}

func (err *ParseError) Unwrap() error {
	return err.Wrapping
}

var (
	ErrEmptyCredentials   = &AuthError{Wrapping: errors.New("both a username and a password are required")}
	ErrInvalidCredentials = &AuthError{Wrapping: errors.New("the portal rejected the given credentials")}
	ErrNoSessionCookie    = &AuthError{Wrapping: errors.New("the portal did not issue a session cookie")}
	ErrNotAuthenticated   = &AuthError{Wrapping: errors.New("the portal session is not (or no longer) authenticated")}

	ErrNoVerificationToken = &ParseError{Wrapping: errors.New("the logon page does not contain the expected verification token")}
	ErrNoCardToken         = &ParseError{Wrapping: errors.New("the profile page does not contain the expected card token")}
	ErrCardTokenFormat     = &ParseError{Wrapping: errors.New("the extracted card token does not match the expected format")}
)
