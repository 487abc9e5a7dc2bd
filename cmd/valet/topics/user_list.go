package topics

import (
	"fmt"

	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/cloudvalet/valet/cmd/valet/dashboard"
	"github.com/cloudvalet/valet/common"
	"github.com/spf13/cobra"
)

// userListCmd represents the "user list" command
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Long: `List users, sorted by username. The search is a case-insensitive
match on username or email.

Examples:
  valet user list
  valet user list --search example.com --permission Write`,
	Args:        cobra.NoArgs,
	Annotations: adminOnly(),
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		permStr, _ := cmd.Flags().GetString("permission")
		basic, _ := cmd.Flags().GetBool("basic")

		filter := dashboard.UserFilter{Search: search}
		if permStr != "" {
			perm, err := common.ParsePermission(permStr)
			if err != nil {
				return err
			}
			filter.Permission = perm
		}

		users, err := globalAPI.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		users = dashboard.FilterUsers(users, filter)

		if basic {
			client.GetExitMessage().Disable()
			for _, user := range users {
				fmt.Println(user.Username)
			}
			return nil
		}

		if len(users) == 0 {
			fmt.Println("No users found")
			return nil
		}

		data := make([][]string, 0, len(users))
		for _, user := range users {
			data = append(data, []string{user.Username, user.Email, string(user.Permission)})
		}
		client.RenderTableTruncateCol(1, []string{"Username", "Email", "Permission"}, data)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
	userListCmd.Flags().StringP("search", "q", "", "filter on username or email")
	userListCmd.Flags().StringP("permission", "p", "", "only list users with this permission (Read, Write, Admin)")
	userListCmd.Flags().BoolP("basic", "b", false, "show basic list, without any formating")
}
