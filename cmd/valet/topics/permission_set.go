package topics

import (
	"fmt"

	"github.com/cloudvalet/valet/common"
	"github.com/spf13/cobra"
)

// permissionSetCmd represents the "permission set" command
var permissionSetCmd = &cobra.Command{
	Use:   "set <level> <username> [username...]",
	Short: "Change the permission of one or more users",
	Long: `Change the permission level of one or more users. All requests are
sent at once, each result is reported.

Example:
  valet permission set Write bob carol
  valet permission set Read $(valet permission list Write --basic)`,
	Args:        cobra.MinimumNArgs(2),
	Annotations: adminOnly(),
	RunE: func(cmd *cobra.Command, args []string) error {
		perm, err := common.ParsePermission(args[0])
		if err != nil {
			return err
		}

		users, err := globalAPI.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		results := globalAPI.BulkSetPermission(cmd.Context(), users, args[1:], perm)

		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
				globalLog.Failuref("%s: %s", res.Username, res.Err)
				continue
			}
			globalLog.Successf("%s is now %s", res.Username, perm)
		}
		if failed > 0 {
			return fmt.Errorf("%d/%d update(s) failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	permissionCmd.AddCommand(permissionSetCmd)
}
