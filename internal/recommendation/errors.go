package recommendation

import "fmt"

// Failure reports that the proposal degraded to the canned fallback payload.
type Failure struct {
	Message string
	Cause   error
}

func (e *Failure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("recommendation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("recommendation failed: %s", e.Message)
}

func (e *Failure) Unwrap() error {
	return e.Cause
}
