package notifier

import "fmt"

// StatusError indicates the webhook endpoint answered outside the 2xx range.
type StatusError struct {
	StatusCode int
	Body       string
}

func NewStatusError(statusCode int, body string) *StatusError {
	return &StatusError{StatusCode: statusCode, Body: body}
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("webhook returned status %d: %s", e.StatusCode, e.Body)
}
