// Package mailer defines the error taxonomy and the delivery seam shared by
// all email backends. Callers distinguish failure categories with errors.As
// so each one can be reported with an actionable cause.
package mailer

import "fmt"

// ValidationError reports a problem with the caller's input: a malformed
// address, an empty recipient list, or a header-injection attempt. It is
// always produced before any network activity.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ConnectionError reports that the server could not be reached or the TLS
// channel could not be established. Host and port are carried so the caller
// can name the endpoint.
type ConnectionError struct {
	Host string
	Port int
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot establish connection to %s:%d: %v", e.Host, e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// AuthError reports that the server rejected the configured credentials.
// The wrapped error is the server's response; it never contains the password.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("credentials rejected by server: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TransmissionError reports a server-side rejection after authentication
// succeeded, such as a denied relay or an unavailable mailbox. The wrapped
// error carries the server's response text when available.
type TransmissionError struct {
	Err error
}

func (e *TransmissionError) Error() string {
	return fmt.Sprintf("message rejected by server: %v", e.Err)
}

func (e *TransmissionError) Unwrap() error {
	return e.Err
}
