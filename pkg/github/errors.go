package github

import "fmt"

// APIError is any non-success response the tool does not otherwise classify.
// The body is carried verbatim; GitHub's error shapes are not parsed.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed %d: %s", e.Op, e.StatusCode, e.Body)
}

// NotInstalledError means the app has no installation on the organization.
// It is the one failure with a direct user remedy, so it gets its own type
// and message instead of the generic status/body form.
type NotInstalledError struct {
	Org string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("app is not installed on org %q: install it on all repositories and re-run", e.Org)
}
