package contract

import "fmt"

// NotFoundError indicates the repository (or another upstream resource)
// returned 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// BranchNotFoundError indicates the requested branch does not exist.
type BranchNotFoundError struct {
	Branch string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch not found: %s", e.Branch)
}

// RateLimitError indicates a 403/429-class response from the upstream API.
type RateLimitError struct {
	StatusCode int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("upstream rate limit exceeded (HTTP %d); try again in a few minutes", e.StatusCode)
}

// UpstreamError indicates any other non-2xx response or network failure.
type UpstreamError struct {
	StatusCode int
	Msg        string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream error (HTTP %d): %s", e.StatusCode, e.Msg)
	}
	return fmt.Sprintf("upstream error: %s", e.Msg)
}

// DecodeError indicates file content could not be decoded to UTF-8 text.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode content of %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError indicates missing or malformed caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
