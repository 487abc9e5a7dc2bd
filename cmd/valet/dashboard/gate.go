package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudvalet/valet/common"
)

// ErrUnauthenticated is returned by the Gate when there's no valid session
var ErrUnauthenticated = errors.New("not authenticated, please login first")

// IdentityAPI returns the identity of the current session
type IdentityAPI interface {
	Me(ctx context.Context) (*common.Identity, error)
}

// Gate protects screens needing a session. It checks once, when the
// screen is mounted.
type Gate struct {
	api IdentityAPI
}

// NewGate returns a Gate using api
func NewGate(api IdentityAPI) *Gate {
	return &Gate{api: api}
}

// Check returns the session identity, or ErrUnauthenticated (wrapping
// the cause) if the identity probe failed for any reason
func (g *Gate) Check(ctx context.Context) (common.Identity, error) {
	identity, err := g.api.Me(ctx)
	if err != nil {
		return common.Identity{}, fmt.Errorf("%w (%s)", ErrUnauthenticated, err)
	}
	if identity == nil || identity.Username == "" {
		return common.Identity{}, ErrUnauthenticated
	}
	identity.Permission = identity.Permission.OrRead()
	return *identity, nil
}

// RequireAdmin is the check of the administration screens
func RequireAdmin(identity common.Identity) error {
	if !identity.Permission.IsAdmin() {
		return ErrNotEnoughPermissions
	}
	return nil
}

// ErrNotEnoughPermissions is shown instead of an admin screen
var ErrNotEnoughPermissions = errors.New("Not enough permissions to view this section.")
