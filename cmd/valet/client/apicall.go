package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blang/semver/v4"
	"github.com/c2h5oh/datasize"
	"github.com/cloudvalet/valet/common"
	"github.com/fatih/color"
)

// API describes the basic elements to call the API
type API struct {
	ServerURL string
	Trace     bool
	Log       *Log
	HTTP      *http.Client
	Jar       *SessionJar
}

// APICall describes a call to the API
type APICall struct {
	api          *API
	Method       string
	Path         string
	Args         map[string]string
	JSONBody     interface{}
	JSONCallback func(io.Reader, http.Header) error
	Multipart    bool
	NoRedirect   bool
}

// Response is the raw result of a call, used when the caller needs
// more than a JSON body (login redirect detection, for instance)
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// NewAPI create a new API instance, sharing the session jar for all calls
func NewAPI(server string, jar *SessionJar, trace bool, log *Log) *API {
	if jar == nil {
		jar = NewMemorySessionJar()
	}
	return &API{
		ServerURL: strings.TrimRight(server, "/"),
		Trace:     trace,
		Log:       log,
		HTTP:      &http.Client{Jar: jar},
		Jar:       jar,
	}
}

// NewCall create a new APICall
func (api *API) NewCall(method string, path string, args map[string]string) *APICall {
	return &APICall{
		api:    api,
		Method: method,
		Path:   path,
		Args:   args,
	}
}

func (call *APICall) buildRequest(ctx context.Context) (*http.Request, error) {
	method := strings.ToUpper(call.Method)

	apiURL, err := common.CleanURL(call.api.ServerURL + "/" + call.Path)
	if err != nil {
		return nil, err
	}

	data := url.Values{}
	for key, val := range call.Args {
		data.Add(key, val)
	}

	var req *http.Request

	switch method {
	case "GET", "DELETE":
		if call.JSONBody != nil || call.Multipart {
			return nil, fmt.Errorf("request body is not supported using %s", method)
		}
		finalURL := apiURL
		if len(data) > 0 {
			finalURL = apiURL + "?" + data.Encode()
		}
		req, err = http.NewRequestWithContext(ctx, method, finalURL, nil)
		if err != nil {
			return nil, err
		}
	case "POST", "PUT":
		switch {
		case call.JSONBody != nil:
			body, errJ := json.Marshal(call.JSONBody)
			if errJ != nil {
				return nil, errJ
			}
			req, err = http.NewRequestWithContext(ctx, method, apiURL, bytes.NewReader(body))
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", "application/json")
		case call.Multipart:
			var buf bytes.Buffer
			multipartWriter := multipart.NewWriter(&buf)
			for fieldname, value := range data {
				if errM := multipartWriter.WriteField(fieldname, value[0]); errM != nil {
					return nil, errM
				}
			}
			if err = multipartWriter.Close(); err != nil {
				return nil, err
			}
			req, err = http.NewRequestWithContext(ctx, method, apiURL, &buf)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Content-Type", multipartWriter.FormDataContentType())
		default:
			// simple URL encoded form
			req, err = http.NewRequestWithContext(ctx, method, apiURL, bytes.NewBufferString(data.Encode()))
			if err != nil {
				return nil, err
			}
			req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		return nil, fmt.Errorf("apicall does not support '%s' yet", method)
	}

	req.Header.Set("Valet-Version", Version)
	return req, nil
}

// Send performs the request and returns the raw response, whatever its
// status code. Only transport failures are returned as errors.
func (call *APICall) Send(ctx context.Context) (*Response, error) {
	req, err := call.buildRequest(ctx)
	if err != nil {
		return nil, err
	}

	httpClient := call.api.HTTP
	if call.NoRedirect {
		noRedirect := *call.api.HTTP
		noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		httpClient = &noRedirect
	}

	if call.api.Trace && call.api.Log != nil && len(call.Args) > 0 {
		call.api.Log.Tracef("%s %s args: %s", req.Method, call.Path, call.tracedArgs())
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, call.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, call.Path, err)
	}

	if call.api.Trace && call.api.Log != nil {
		call.api.Log.Tracef("%s %s: %s (%s, %s)",
			req.Method,
			call.Path,
			resp.Status,
			(datasize.ByteSize(len(body)) * datasize.B).HR(),
			time.Since(start).Round(time.Millisecond),
		)
	}

	checkClientVersion(resp.Header.Get("Latest-Known-Client-Version"))

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Do the actual API call. Any non-2xx status is returned as an *HTTPError.
func (call *APICall) Do(ctx context.Context) error {
	resp, err := call.Send(ctx)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(resp)
	}

	if call.JSONCallback == nil {
		return nil
	}

	mime := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(mime, "application/json") {
		return fmt.Errorf("unsupported content type '%s' for %s %s", mime, call.Method, call.Path)
	}
	return call.JSONCallback(bytes.NewReader(resp.Body), resp.Header)
}

// secretArgs are never shown in traces
var secretArgs = []string{"password", "client_secret"}

// tracedArgs returns the encoded call arguments, secrets replaced
func (call *APICall) tracedArgs() string {
	data := url.Values{}
	for key, val := range call.Args {
		data.Add(key, val)
	}
	res := data.Encode()
	for _, key := range secretArgs {
		if val := call.Args[key]; val != "" {
			res = common.RemoveSecretFromString(res, url.QueryEscape(val))
		}
	}
	return res
}

// DecodeJSON is a JSONCallback helper
func DecodeJSON(dest interface{}) func(io.Reader, http.Header) error {
	return func(reader io.Reader, _ http.Header) error {
		dec := json.NewDecoder(reader)
		return dec.Decode(dest)
	}
}

func checkClientVersion(latestClientVersionKnownByServer string) {
	if latestClientVersionKnownByServer == "" {
		return
	}
	verFromServer, err1 := semver.Make(latestClientVersionKnownByServer)
	verSelf, err2 := semver.Make(Version)
	if err1 == nil && err2 == nil && verFromServer.GT(verSelf) {
		green := color.New(color.FgHiGreen).SprintFunc()
		yellow := color.New(color.FgHiYellow).SprintFunc()
		msg := fmt.Sprintf("According to the server, a client update is available: %s → %s\n", yellow(Version), green(latestClientVersionKnownByServer))
		msg = msg + "Update:\n    go install github.com/cloudvalet/valet/cmd/valet@latest\n"
		GetExitMessage().Set(msg)
	}
}
