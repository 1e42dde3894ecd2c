package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is an error response from the Plaid API
type APIError struct {
	StatusCode     int     `json:"-"`
	Type           string  `json:"error_type"`
	Code           string  `json:"error_code"`
	Message        string  `json:"error_message"`
	DisplayMessage *string `json:"display_message"`
	RequestID      string  `json:"request_id"`
}

func (e APIError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("Plaid request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("Plaid %s %s (status %d, request ID %s): %s", e.Type, e.Code, e.StatusCode, e.RequestID, e.Message)
}

func decodeAPIError(statusCode int, body []byte) APIError {
	apiErr := APIError{}
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Type == "" {
		apiErr = APIError{Message: http.StatusText(statusCode)}
	}
	apiErr.StatusCode = statusCode
	return apiErr
}
