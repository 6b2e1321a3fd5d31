package rankings

import "fmt"

// StatusError is a non-success response from the ranking service reduced to
// a user-facing message. The message is the service's own {message|error}
// field when one could be parsed, otherwise "HTTP <status>".
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}
