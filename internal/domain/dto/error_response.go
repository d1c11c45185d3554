package dto

import "time"

// ErrorResponse is the standard error body returned by the API.
//
// Example:
//
//	{"message":"task data is not ready yet","error":"task 3: data not ready","timestamp":"2025-09-01T12:00:00Z"}
type ErrorResponse struct {
	Message      string    `json:"message" example:"task data is not ready yet"`
	ErrorDetails string    `json:"error,omitempty" example:"task 3: data not ready (status 404)"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so responses can be attached to gin contexts.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse, copying err's text (if any) into the details.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
