package dashboard

import (
	"slices"
	"strings"

	"github.com/cloudvalet/valet/common"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PermissionsPageSize is the page size of the permissions screen
const PermissionsPageSize = 8

// UserFilter selects users on the administration screens
type UserFilter struct {
	Search     string            // substring of username or email, case-insensitive
	Permission common.Permission // empty for any level
}

// FilterUsers returns matching users sorted by username, using
// language-aware ordering
func FilterUsers(users []common.User, filter UserFilter) []common.User {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(filter.Search))

	res := []common.User{}
	for _, user := range users {
		if filter.Permission != "" && user.Permission.OrRead() != filter.Permission {
			continue
		}
		if needle != "" &&
			!strings.Contains(folder.String(user.Username), needle) &&
			!strings.Contains(folder.String(user.Email), needle) {
			continue
		}
		res = append(res, user)
	}

	col := collate.New(language.Und, collate.IgnoreCase)
	slices.SortStableFunc(res, func(a, b common.User) int {
		return col.CompareString(a.Username, b.Username)
	})
	return res
}

// PermissionsPage is a page of the permissions screen for a level
func PermissionsPage(users []common.User, perm common.Permission, search string, page int) ([]common.User, PageInfo) {
	matches := FilterUsers(users, UserFilter{Search: search, Permission: perm})
	return Paginate(matches, page, PermissionsPageSize)
}

// CountByPermission returns how many users hold each level
func CountByPermission(users []common.User) map[common.Permission]int {
	res := make(map[common.Permission]int, len(common.AllPermissions))
	for _, perm := range common.AllPermissions {
		res[perm] = 0
	}
	for _, user := range users {
		res[user.Permission.OrRead()]++
	}
	return res
}
