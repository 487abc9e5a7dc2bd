package client

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudvalet/valet/common"
)

// Sentinel errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLoginFailed        = errors.New("login failed")
)

// HTTPError is a non-success answer from the API
type HTTPError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Error: %s", e.Status)
}

func newHTTPError(resp *Response) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	var detail common.APIErrorDetail
	if err := json.Unmarshal(resp.Body, &detail); err == nil {
		httpErr.Detail = detail.Message()
	}
	return httpErr
}

// ErrorMessage returns err's message, or def if err carries nothing useful
func ErrorMessage(err error, def string) string {
	if err == nil {
		return def
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Detail == "" {
		return def
	}
	if err.Error() == "" {
		return def
	}
	return err.Error()
}
