package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Permission is the capability level of a user
type Permission string

// Capability levels
const (
	PermissionRead  Permission = "Read"
	PermissionWrite Permission = "Write"
	PermissionAdmin Permission = "Admin"
)

// AllPermissions lists levels from the weakest to the strongest
var AllPermissions = []Permission{PermissionRead, PermissionWrite, PermissionAdmin}

// ParsePermission is strict: the value must be Read, Write or Admin
// (case-insensitive)
func ParsePermission(s string) (Permission, error) {
	for _, p := range AllPermissions {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid permission '%s' (Read, Write, Admin)", s)
}

// OrRead returns the permission, defaulting to Read when empty or invalid
func (p Permission) OrRead() Permission {
	perm, err := ParsePermission(string(p))
	if err != nil {
		return PermissionRead
	}
	return perm
}

// CanWrite is true for Write and Admin
func (p Permission) CanWrite() bool {
	perm := p.OrRead()
	return perm == PermissionWrite || perm == PermissionAdmin
}

// IsAdmin is true for Admin only
func (p Permission) IsAdmin() bool {
	return p.OrRead() == PermissionAdmin
}

// Identity is the authenticated user, as returned by /users/me
type Identity struct {
	Username   string     `json:"username"`
	Email      string     `json:"email,omitempty"`
	Permission Permission `json:"permission"`
}

// APIUserListEntries is a list of users
type APIUserListEntries []User

// User is an account of the dashboard
type User struct {
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Permission Permission `json:"permission"`
}

// APIErrorDetail is the error body of the API: {"detail": "..."} or
// {"detail": [{"msg": "..."}, ...]} for validation errors
type APIErrorDetail struct {
	Detail json.RawMessage `json:"detail"`
}

// Message returns a readable message from the detail, or an empty
// string if nothing usable was found
func (e *APIErrorDetail) Message() string {
	if len(e.Detail) == 0 {
		return ""
	}

	var str string
	if err := json.Unmarshal(e.Detail, &str); err == nil {
		return str
	}

	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(e.Detail, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, item := range list {
			msgs = append(msgs, item.Msg)
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
