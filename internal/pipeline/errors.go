package pipeline

import (
	"errors"
	"fmt"
)

// FaultNotice is the generic operator-facing message shown when a run dies
// on an orchestrator fault. Engine-level degradation is silent; only a
// defect escaping the self-healing engines surfaces this.
const FaultNotice = "AI 服务繁忙，请稍后重试。"

// ErrInvalidState is returned when an operation is attempted outside the
// session state that permits it.
var ErrInvalidState = errors.New("pipeline: operation not allowed in current state")

// Fault is an unexpected error escaping the self-healing engine layers.
// It is fatal to the current run: the session reverts to input and no
// partial result is kept.
type Fault struct {
	Message string
	Cause   error
}

func (e *Fault) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("orchestrator fault: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("orchestrator fault: %s", e.Message)
}

func (e *Fault) Unwrap() error {
	return e.Cause
}
