package errors

// APIError is the standardized failure response body.
// Every non-200 response from this service uses this shape.
type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewAPIError creates a new APIError with the given message and optional details.
func NewAPIError(message, details string) *APIError {
	return &APIError{
		Success: false,
		Error:   message,
		Details: details,
	}
}
