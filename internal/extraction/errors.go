package extraction

import "fmt"

// Failure reports that résumé extraction degraded to the placeholder patch.
// The network error, bad status, schema violation or unparsable body behind
// it is carried as the cause; callers treat them all the same way.
type Failure struct {
	Message string
	Cause   error
}

func (e *Failure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *Failure) Unwrap() error {
	return e.Cause
}
