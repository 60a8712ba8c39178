package diagnosis

import "fmt"

// Failure reports that the diagnosis degraded to the fixed fallback payload.
// Transport errors, schema violations and unparsable bodies are not
// distinguished; the cause is carried for logging only.
type Failure struct {
	Message string
	Cause   error
}

func (e *Failure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("diagnosis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("diagnosis failed: %s", e.Message)
}

func (e *Failure) Unwrap() error {
	return e.Cause
}
