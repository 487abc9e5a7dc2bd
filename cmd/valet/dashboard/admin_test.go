package dashboard

import (
	"fmt"
	"testing"

	"github.com/cloudvalet/valet/common"
)

func testUsers() []common.User {
	return []common.User{
		{Username: "zoe", Email: "zoe@example.com", Permission: common.PermissionRead},
		{Username: "Alice", Email: "alice@corp.io", Permission: common.PermissionAdmin},
		{Username: "bob", Email: "bob@corp.io", Permission: common.PermissionWrite},
		{Username: "carol", Email: "carol@example.com", Permission: ""},
	}
}

func usernames(users []common.User) []string {
	res := make([]string, len(users))
	for i, u := range users {
		res[i] = u.Username
	}
	return res
}

func TestFilterUsers(t *testing.T) {
	tests := []struct {
		filter UserFilter
		want   []string
	}{
		{UserFilter{}, []string{"Alice", "bob", "carol", "zoe"}},
		{UserFilter{Search: "CORP"}, []string{"Alice", "bob"}},
		{UserFilter{Permission: common.PermissionRead}, []string{"carol", "zoe"}},
		{UserFilter{Search: "o", Permission: common.PermissionRead}, []string{"carol", "zoe"}},
		{UserFilter{Search: "nobody"}, []string{}},
	}
	for _, test := range tests {
		got := usernames(FilterUsers(testUsers(), test.filter))
		if !equalNames(got, test.want) {
			t.Errorf("FilterUsers(%+v) = %v, want %v", test.filter, got, test.want)
		}
	}
}

func TestPermissionsPage(t *testing.T) {
	users := []common.User{}
	for i := 0; i < 19; i++ {
		users = append(users, common.User{Username: fmt.Sprintf("user%02d", i), Permission: common.PermissionWrite})
	}

	page, info := PermissionsPage(users, common.PermissionWrite, "", 3)
	if len(page) != 3 || info.Pages != 3 {
		t.Errorf("page 3: %d users, %d pages", len(page), info.Pages)
	}
	if page[0].Username != "user16" {
		t.Errorf("first of page 3 = %s, want user16", page[0].Username)
	}
}

func TestCountByPermission(t *testing.T) {
	counts := CountByPermission(testUsers())
	if counts[common.PermissionRead] != 2 || counts[common.PermissionWrite] != 1 || counts[common.PermissionAdmin] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
