package errors

import (
	"fmt"
)

// MissingFieldError represents a missing required field.
type MissingFieldError struct {
	Field string
}

func (err MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", err.Field)
}

// FileNotFound represents when we were unable to access a file
// because the path didn't exist.
type FileNotFound struct {
	Path string
}

func (err FileNotFound) Error() string {
	return fmt.Sprintf("%q does not exist", err.Path)
}

// BadStatus is returned when the remote server responds with a non-success
// status code.
type BadStatus struct {
	URL    string
	Status string
}

func (err BadStatus) Error() string {
	return fmt.Sprintf("%s responded with %s", err.URL, err.Status)
}

// UnexpectedResponse is returned when the remote server's page doesn't have
// the shape we scrape. This usually means the service changed its markup.
type UnexpectedResponse struct {
	URL    string
	Reason string
}

func (err UnexpectedResponse) Error() string {
	return fmt.Sprintf("unexpected response from %s: %s", err.URL, err.Reason)
}
