package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudvalet/valet/common"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "redirect to dashboard",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.SetCookie(w, &http.Cookie{Name: "user", Value: "alice", Path: "/"})
				http.Redirect(w, r, "/dashboard", http.StatusFound)
			},
		},
		{
			name: "invalid credentials page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.Write([]byte("<html><div class='error'>Invalid credentials</div></html>"))
			},
			want: ErrInvalidCredentials,
		},
		{
			name: "json identity",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"username": "alice", "permission": "Admin"}`))
			},
		},
		{
			name: "redirect elsewhere",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/login?error=1", http.StatusSeeOther)
			},
			want: ErrLoginFailed,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			want: ErrLoginFailed,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var gotUser, gotPass string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser = r.FormValue("username")
				gotPass = r.FormValue("password")
				test.handler(w, r)
			}))
			defer server.Close()

			api := NewAPI(server.URL, nil, false, nil)
			err := api.Login(context.Background(), "alice", "s3cret")
			if !errors.Is(err, test.want) {
				t.Errorf("Login() = %v, want %v", err, test.want)
			}
			if gotUser != "alice" || gotPass != "s3cret" {
				t.Errorf("form = %q/%q", gotUser, gotPass)
			}
		})
	}
}

func TestMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"username": "alice", "email": "alice@corp.io"}`))
	}))
	defer server.Close()

	identity, err := NewAPI(server.URL, nil, false, nil).Me(context.Background())
	if err != nil {
		t.Fatalf("Me() error: %v", err)
	}
	if identity.Username != "alice" || identity.Permission != "Read" {
		t.Errorf("Me() = %+v, want alice with Read", identity)
	}
}

func TestHTTPErrorDetail(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"detail": "User not found"}`, "User not found"},
		{`{"detail": [{"msg": "field required"}, {"msg": "invalid email"}]}`, "field required; invalid email"},
		{`not json`, "Error: 400 Bad Request"},
	}

	for _, test := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(test.body))
		}))

		err := NewAPI(server.URL, nil, false, nil).DeleteUser(context.Background(), "bob")
		server.Close()

		var httpErr *HTTPError
		if !errors.As(err, &httpErr) {
			t.Errorf("%s: got %T, want *HTTPError", test.body, err)
			continue
		}
		if httpErr.StatusCode != http.StatusBadRequest || err.Error() != test.want {
			t.Errorf("%s: %d %q, want 400 %q", test.body, httpErr.StatusCode, err.Error(), test.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	if got := ErrorMessage(nil, "default"); got != "default" {
		t.Errorf("nil: %q", got)
	}
	if got := ErrorMessage(&HTTPError{Status: "500 Internal Server Error"}, "default"); got != "default" {
		t.Errorf("no detail: %q", got)
	}
	if got := ErrorMessage(&HTTPError{Detail: "quota exceeded"}, "default"); got != "quota exceeded" {
		t.Errorf("detail: %q", got)
	}
	if got := ErrorMessage(errors.New("connection refused"), "default"); got != "connection refused" {
		t.Errorf("transport: %q", got)
	}
}

func TestTraceHidesSecrets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
		}
	}))
	defer server.Close()

	var out strings.Builder
	log := NewLog(true, false)
	log.Out = &out

	api := NewAPI(server.URL, nil, true, log)
	if err := api.Login(context.Background(), "alice", "p@ss w0rd"); err != nil {
		t.Fatal(err)
	}
	creds := common.AzureCredentials{ClientID: "cid", ClientSecret: "s3cret"}
	if err := api.SetAzureCredentials(context.Background(), creds); err != nil {
		t.Fatal(err)
	}

	trace := out.String()
	if !strings.Contains(trace, "username=alice") {
		t.Errorf("trace should show arguments:\n%s", trace)
	}
	for _, secret := range []string{"p@ss", "p%40ss", "s3cret"} {
		if strings.Contains(trace, secret) {
			t.Errorf("trace leaks %q:\n%s", secret, trace)
		}
	}
	if !strings.Contains(trace, "password=xxx") || !strings.Contains(trace, "client_secret=xxx") {
		t.Errorf("secrets should be replaced:\n%s", trace)
	}
}
