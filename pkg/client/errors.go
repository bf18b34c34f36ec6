package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingBaseURL is returned by New when no base URL is configured.
	ErrMissingBaseURL = errors.New("dify base URL is required")

	// ErrMissingAPIKey is returned by New when no API key is configured.
	ErrMissingAPIKey = errors.New("dify API key is required")
)

// APIError is a non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Code       string
	Message    string

	// Params names the offending request parameter, when the platform says.
	Params string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("dify api error: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
	if e.Params != "" {
		msg += " [" + e.Params + "]"
	}
	return msg
}

// IsAPIError reports whether err is an *APIError with the given code.
// An empty code matches any API error.
func IsAPIError(err error, code string) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return code == "" || apiErr.Code == code
}

// parseAPIError builds an APIError from an error response body. The platform
// uses either code/message or error_code/error_message; anything that is not
// a JSON object is kept verbatim as the message.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Code:       "unknown_error",
		Message:    strings.TrimSpace(string(body)),
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return apiErr
	}

	if v, ok := fields["error_code"]; ok {
		apiErr.Code = stringify(v)
	} else if v, ok := fields["code"]; ok {
		apiErr.Code = stringify(v)
	}

	if v, ok := fields["error_message"]; ok {
		apiErr.Message = stringify(v)
	} else if v, ok := fields["message"]; ok {
		apiErr.Message = stringify(v)
	}

	if v, ok := fields["params"]; ok && v != nil {
		apiErr.Params = stringify(v)
	}

	return apiErr
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
