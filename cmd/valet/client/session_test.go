package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestSessionJarPersistence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			http.SetCookie(w, &http.Cookie{Name: "user", Value: "alice", Path: "/"})
			http.Redirect(w, r, "/dashboard", http.StatusFound)
		case "/users/me":
			c, err := r.Cookie("user")
			if err != nil {
				http.Error(w, `{"detail": "Not authenticated"}`, http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"username": "` + c.Value + `", "permission": "Write"}`))
		case "/logout":
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	filename := filepath.Join(t.TempDir(), "session")
	ctx := context.Background()

	jar, err := NewSessionJar(filename, server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if err := NewAPI(server.URL, jar, false, nil).Login(ctx, "alice", "pw"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	// a new process reloads the session from the file
	jar2, err := NewSessionJar(filename, server.URL)
	if err != nil {
		t.Fatal(err)
	}
	api2 := NewAPI(server.URL, jar2, false, nil)
	identity, err := api2.Me(ctx)
	if err != nil {
		t.Fatalf("Me() with a reloaded session: %v", err)
	}
	if identity.Username != "alice" {
		t.Errorf("Me() = %+v", identity)
	}

	// another server never sees this session
	other, err := NewSessionJar(filename, "http://other.example.com")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewAPI(server.URL, other, false, nil).Me(ctx); err == nil {
		t.Error("session of another server should not be loaded")
	}

	if err := api2.Logout(ctx); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	jar4, _ := NewSessionJar(filename, server.URL)
	if _, err := NewAPI(server.URL, jar4, false, nil).Me(ctx); err == nil {
		t.Error("session should be forgotten after Logout")
	}
}
