package topics

import (
	"github.com/spf13/cobra"
)

// permissionCmd represents the permission command
var permissionCmd = &cobra.Command{
	Use:   "permission",
	Short: "Permissions management (Admin only)",
	Long: `Permission levels are Read (list VMs), Write (list VMs and send
actions) and Admin (Write, plus users and provider management).`,
}

func init() {
	rootCmd.AddCommand(permissionCmd)
}
