package topics

import (
	"fmt"

	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/cloudvalet/valet/cmd/valet/dashboard"
	"github.com/cloudvalet/valet/common"
	"github.com/spf13/cobra"
)

// permissionListCmd represents the "permission list" command
var permissionListCmd = &cobra.Command{
	Use:   "list [level]",
	Short: "List users holding a permission level",
	Long: `List users holding a permission level (Read, Write, Admin), 8 per
page. Without level, show how many users hold each level.

Examples:
  valet permission list
  valet permission list Write --search example.com --page 2`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: adminOnly(),
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		page, _ := cmd.Flags().GetInt("page")
		basic, _ := cmd.Flags().GetBool("basic")

		users, err := globalAPI.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		if len(args) == 0 {
			counts := dashboard.CountByPermission(users)
			data := [][]string{}
			for _, perm := range common.AllPermissions {
				data = append(data, []string{string(perm), fmt.Sprintf("%d", counts[perm])})
			}
			client.RenderTableTruncateCol(0, []string{"Permission", "Users"}, data)
			return nil
		}

		perm, err := common.ParsePermission(args[0])
		if err != nil {
			return err
		}

		rows, info := dashboard.PermissionsPage(users, perm, search, page)

		if basic {
			client.GetExitMessage().Disable()
			for _, user := range rows {
				fmt.Println(user.Username)
			}
			return nil
		}

		if info.Total == 0 {
			fmt.Printf("No users with %s permission\n", perm)
			return nil
		}

		data := make([][]string, 0, len(rows))
		for _, user := range rows {
			data = append(data, []string{user.Username, user.Email})
		}
		client.RenderTableTruncateCol(1, []string{"Username", "Email"}, data)
		fmt.Printf("%s, page %d/%d\n", info, info.Page, info.Pages)
		return nil
	},
}

func init() {
	permissionCmd.AddCommand(permissionListCmd)
	permissionListCmd.Flags().StringP("search", "q", "", "filter on username or email")
	permissionListCmd.Flags().IntP("page", "p", 1, "page number")
	permissionListCmd.Flags().BoolP("basic", "b", false, "show basic list, without any formating")
}
