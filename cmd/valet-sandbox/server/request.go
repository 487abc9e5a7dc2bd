package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cloudvalet/valet/common"
)

const defaultMaxMemory = 1 << 20

// Request describes a request and allows to build a response
type Request struct {
	Route    *Route
	SubPath  string
	HTTP     *http.Request
	Response http.ResponseWriter
	App      *App
	// session user, nil for public routes without a valid session
	User *common.User
}

// Printf like helper for req.Response.Write
func (req *Request) Printf(format string, args ...interface{}) {
	req.Response.Write([]byte(fmt.Sprintf(format, args...)))
}

// JSON sends v as a JSON response
func (req *Request) JSON(status int, v interface{}) {
	req.Response.Header().Set("Content-Type", "application/json")
	req.Response.WriteHeader(status)
	enc := json.NewEncoder(req.Response)
	if err := enc.Encode(v); err != nil {
		req.App.Log.Error(err.Error())
	}
}

// Detail sends an error response: {"detail": "message"}
func (req *Request) Detail(status int, message string) {
	req.App.Log.Errorf("%d: %s %s: %s", status, req.HTTP.Method, req.HTTP.URL.Path, message)
	req.JSON(status, map[string]string{"detail": message})
}

// ValidationError sends a list of field errors: {"detail": [{"msg": ...}]}
func (req *Request) ValidationError(messages ...string) {
	type item struct {
		Msg string `json:"msg"`
	}
	detail := make([]item, 0, len(messages))
	for _, msg := range messages {
		detail = append(detail, item{Msg: msg})
	}
	req.App.Log.Errorf("%d: %s %s: %v", http.StatusUnprocessableEntity, req.HTTP.Method, req.HTTP.URL.Path, messages)
	req.JSON(http.StatusUnprocessableEntity, map[string]interface{}{"detail": detail})
}

// RequireForm returns form values for keys, or sends a validation
// error (and returns nil) if any of them is missing. An empty value is
// not missing.
func (req *Request) RequireForm(keys ...string) map[string]string {
	err := req.HTTP.ParseMultipartForm(defaultMaxMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		req.Detail(http.StatusBadRequest, err.Error())
		return nil
	}

	values := make(map[string]string, len(keys))
	var missing []string
	for _, key := range keys {
		if _, exists := req.HTTP.Form[key]; !exists {
			missing = append(missing, fmt.Sprintf("field required: %s", key))
			continue
		}
		values[key] = req.HTTP.Form.Get(key)
	}
	if len(missing) > 0 {
		req.ValidationError(missing...)
		return nil
	}
	return values
}
