package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cloudvalet/valet/common"
)

// Login opens a session. The server answers with a redirect to
// /dashboard and a session cookie, or a login page mentioning
// "Invalid credentials". A 2xx JSON identity is accepted too.
func (api *API) Login(ctx context.Context, username string, password string) error {
	call := api.NewCall("POST", "/login", map[string]string{
		"username": username,
		"password": password,
	})
	call.NoRedirect = true

	resp, err := call.Send(ctx)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusFound || resp.StatusCode == http.StatusSeeOther:
		if strings.HasSuffix(resp.Header.Get("Location"), "/dashboard") {
			return nil
		}
		return ErrLoginFailed
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		if strings.Contains(string(resp.Body), "Invalid credentials") {
			return ErrInvalidCredentials
		}
		var identity common.Identity
		if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") &&
			json.Unmarshal(resp.Body, &identity) == nil &&
			identity.Username != "" {
			return nil
		}
		return ErrLoginFailed
	}
	return ErrLoginFailed
}

// Logout closes the session, server side then locally (the local
// session is always forgotten)
func (api *API) Logout(ctx context.Context) error {
	call := api.NewCall("GET", "/logout", map[string]string{})
	call.NoRedirect = true
	resp, err := call.Send(ctx)

	if errJ := api.Jar.Clear(api.ServerURL); errJ != nil && err == nil {
		err = errJ
	}
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return newHTTPError(resp)
	}
	return nil
}

// Me returns the identity of the session
func (api *API) Me(ctx context.Context) (*common.Identity, error) {
	var identity common.Identity
	call := api.NewCall("GET", "/users/me", map[string]string{})
	call.JSONCallback = DecodeJSON(&identity)
	if err := call.Do(ctx); err != nil {
		return nil, err
	}
	identity.Permission = identity.Permission.OrRead()
	return &identity, nil
}
