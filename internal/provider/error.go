package provider

import "fmt"

// Error is a failure reported by the media provider. StatusCode is zero when
// no HTTP response was received.
type Error struct {
	StatusCode int    `json:"statusCode,omitempty"`
	Message    string `json:"message"`
	Op         string `json:"-"`
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func newError(op string, rec *statusRecorder, message string) *Error {
	return &Error{
		StatusCode: rec.code,
		Message:    message,
		Op:         op,
	}
}
