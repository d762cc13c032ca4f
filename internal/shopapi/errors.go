package shopapi

import "fmt"

// ErrorBody is the structured error payload the storefront gateway attaches
// to failed requests. Services are inconsistent about which field they
// populate, so all four are kept.
type ErrorBody struct {
	HasError     bool   `json:"hasError"`
	ErrorMessage string `json:"errorMessage"`
	ErrorText    string `json:"error"`
	Message      string `json:"message"`
}

// APIError reports a non-2xx response together with whatever structured
// error body could be decoded from it.
type APIError struct {
	Status int
	Path   string
	Body   ErrorBody
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if msg := e.ServerMessage(); msg != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, msg)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

// ServerMessage returns the best available human-readable message from the
// error body, or "" when the body carried none.
func (e *APIError) ServerMessage() string {
	switch {
	case e.Body.ErrorMessage != "":
		return e.Body.ErrorMessage
	case e.Body.ErrorText != "":
		return e.Body.ErrorText
	case e.Body.Message != "":
		return e.Body.Message
	}
	return ""
}

// Structured reports the dedicated errorMessage field when the service set
// hasError, which takes precedence over substring classification.
func (e *APIError) Structured() (string, bool) {
	if e.Body.HasError && e.Body.ErrorMessage != "" {
		return e.Body.ErrorMessage, true
	}
	return "", false
}
