package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudvalet/valet/common"
)

type fakeIdentityAPI struct {
	identity *common.Identity
	err      error
	calls    int
}

func (f *fakeIdentityAPI) Me(ctx context.Context) (*common.Identity, error) {
	f.calls++
	return f.identity, f.err
}

func TestGateCheck(t *testing.T) {
	t.Run("valid session", func(t *testing.T) {
		api := &fakeIdentityAPI{identity: &common.Identity{Username: "alice", Permission: "write"}}
		identity, err := NewGate(api).Check(context.Background())
		if err != nil {
			t.Fatalf("Check() error: %v", err)
		}
		if identity.Permission != common.PermissionWrite {
			t.Errorf("Permission = %q, want Write", identity.Permission)
		}
		if api.calls != 1 {
			t.Errorf("got %d probes, want 1", api.calls)
		}
	})

	t.Run("missing permission defaults to Read", func(t *testing.T) {
		api := &fakeIdentityAPI{identity: &common.Identity{Username: "bob"}}
		identity, _ := NewGate(api).Check(context.Background())
		if identity.Permission != common.PermissionRead {
			t.Errorf("Permission = %q, want Read", identity.Permission)
		}
	})

	t.Run("probe failure", func(t *testing.T) {
		api := &fakeIdentityAPI{err: errors.New("401 Unauthorized")}
		if _, err := NewGate(api).Check(context.Background()); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("Check() = %v, want ErrUnauthenticated", err)
		}
	})

	t.Run("empty identity", func(t *testing.T) {
		api := &fakeIdentityAPI{identity: &common.Identity{}}
		if _, err := NewGate(api).Check(context.Background()); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("Check() = %v, want ErrUnauthenticated", err)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	if err := RequireAdmin(common.Identity{Permission: common.PermissionWrite}); !errors.Is(err, ErrNotEnoughPermissions) {
		t.Errorf("Write: %v, want ErrNotEnoughPermissions", err)
	}
	if err := RequireAdmin(common.Identity{Permission: common.PermissionAdmin}); err != nil {
		t.Errorf("Admin: %v", err)
	}
}
