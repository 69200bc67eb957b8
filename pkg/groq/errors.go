package groq

import (
	"encoding/json"
	"fmt"
)

// APIError is a non-2xx answer from the API, or an error event inside a stream.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("groq: API error %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("groq: API error %d: %s", e.StatusCode, e.Message)
}

// TransportError means the API could not be reached or the connection broke
// before a complete answer arrived.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("groq: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// parseAPIError builds an APIError from a response body, falling back to the
// raw body when it is not the documented error envelope.
func parseAPIError(statusCode int, body []byte) *APIError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return &APIError{
			StatusCode: statusCode,
			Type:       env.Error.Type,
			Code:       env.Error.Code,
			Message:    env.Error.Message,
		}
	}
	return &APIError{StatusCode: statusCode, Message: string(body)}
}
