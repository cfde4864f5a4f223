package models

// ErrorResponse is the error body for every non-2xx response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewValidationErrorResponse creates an error response with per-field details
func NewValidationErrorResponse(fields map[string]string) ErrorResponse {
	return ErrorResponse{
		Error:  "Validation failed",
		Fields: fields,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
