package client

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"sync"

	"github.com/cloudvalet/valet/common"
)

// UserForm is the content of the user creation/edition form
type UserForm struct {
	Username   string
	Email      string
	Password   string
	Permission common.Permission
}

// ValidationError is a form error, detected before any call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the form. The password is only required on creation.
func (f *UserForm) Validate(creation bool) error {
	if strings.TrimSpace(f.Username) == "" {
		return &ValidationError{Field: "username", Message: "Please enter username"}
	}
	if _, err := mail.ParseAddress(f.Email); err != nil || strings.TrimSpace(f.Email) == "" {
		return &ValidationError{Field: "email", Message: "Please enter a valid email"}
	}
	if creation && f.Password == "" {
		return &ValidationError{Field: "password", Message: "Please enter password"}
	}
	if f.Permission != "" {
		if _, err := common.ParsePermission(string(f.Permission)); err != nil {
			return &ValidationError{Field: "permission", Message: err.Error()}
		}
	}
	return nil
}

func userPath(username string) string {
	return "/users/" + url.PathEscape(username)
}

// ListUsers returns all users
func (api *API) ListUsers(ctx context.Context) (common.APIUserListEntries, error) {
	var users common.APIUserListEntries
	call := api.NewCall("GET", "/users/", map[string]string{})
	call.JSONCallback = DecodeJSON(&users)
	if err := call.Do(ctx); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Permission = users[i].Permission.OrRead()
	}
	return users, nil
}

// GetUser returns a single user
func (api *API) GetUser(ctx context.Context, username string) (*common.User, error) {
	var user common.User
	call := api.NewCall("GET", userPath(username), map[string]string{})
	call.JSONCallback = DecodeJSON(&user)
	if err := call.Do(ctx); err != nil {
		return nil, err
	}
	user.Permission = user.Permission.OrRead()
	return &user, nil
}

// CreateUser validates the form and creates the user (Read permission
// by default)
func (api *API) CreateUser(ctx context.Context, form UserForm) error {
	if err := form.Validate(true); err != nil {
		return err
	}
	if form.Permission == "" {
		form.Permission = common.PermissionRead
	}
	perm, _ := common.ParsePermission(string(form.Permission))

	call := api.NewCall("POST", "/users/", map[string]string{
		"username":   form.Username,
		"email":      form.Email,
		"password":   form.Password,
		"permission": string(perm),
	})
	return call.Do(ctx)
}

// UpdateUser updates username (renaming it to form.Username), email and,
// when given, permission
func (api *API) UpdateUser(ctx context.Context, username string, form UserForm) error {
	if err := form.Validate(false); err != nil {
		return err
	}
	args := map[string]string{
		"new_username": form.Username,
		"email":        form.Email,
	}
	if form.Permission != "" {
		perm, _ := common.ParsePermission(string(form.Permission))
		args["permission"] = string(perm)
	}
	call := api.NewCall("PUT", userPath(username), args)
	return call.Do(ctx)
}

// SetPermission changes the permission of a user, keeping its other fields
// (the form is not validated again, the user comes from the server)
func (api *API) SetPermission(ctx context.Context, user common.User, perm common.Permission) error {
	perm, err := common.ParsePermission(string(perm))
	if err != nil {
		return err
	}
	call := api.NewCall("PUT", userPath(user.Username), map[string]string{
		"new_username": user.Username,
		"email":        user.Email,
		"permission":   string(perm),
	})
	return call.Do(ctx)
}

// DeleteUser deletes a user
func (api *API) DeleteUser(ctx context.Context, username string) error {
	call := api.NewCall("DELETE", userPath(username), map[string]string{})
	return call.Do(ctx)
}

// PermissionResult is the outcome of one leg of a bulk permission change
type PermissionResult struct {
	Username string
	Err      error
}

// BulkSetPermission changes the permission of many users, all requests
// running in parallel. Results are in the order of usernames. Unknown
// usernames are reported as errors without any call.
func (api *API) BulkSetPermission(ctx context.Context, all []common.User, usernames []string, perm common.Permission) []PermissionResult {
	byName := make(map[string]common.User, len(all))
	for _, u := range all {
		byName[u.Username] = u
	}

	results := make([]PermissionResult, len(usernames))
	var wg sync.WaitGroup
	for i, username := range usernames {
		results[i].Username = username
		user, exists := byName[username]
		if !exists {
			results[i].Err = fmt.Errorf("user '%s' not found", username)
			continue
		}
		wg.Add(1)
		go func(i int, user common.User) {
			defer wg.Done()
			results[i].Err = api.SetPermission(ctx, user, perm)
		}(i, user)
	}
	wg.Wait()
	return results
}
