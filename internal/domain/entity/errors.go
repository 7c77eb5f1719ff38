package entity

import "fmt"

// ValidationError rejects an instruction before any external call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// UpstreamError marks an external collaborator that returned malformed or
// absent output after its own bounded retries. Fatal for the current build
// and never counted against the QA attempt budget.
type UpstreamError struct {
	Stage string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure at stage %q: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
