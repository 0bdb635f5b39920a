package workspace

import "fmt"

// APIError is a business-level failure the control plane reported through
// the Error envelope variant. The message is surfaced to the user verbatim.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "API request failed: " + e.Message
}

// ProtocolError means the control plane answered with something that is not
// a valid Ok/Error envelope: malformed JSON, an unexpected shape, or a bad
// HTTP status.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid API response: %s: %v", e.Reason, e.Err)
	}
	return "invalid API response: " + e.Reason
}

func (e *ProtocolError) Unwrap() error { return e.Err }
