package topics

import (
	"github.com/spf13/cobra"
)

// logoutCmd represents the "logout" command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Close the session",
	Long: `Close the session on the server, and forget it locally. The local
session is forgotten even if the server can't be reached.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := globalAPI.Logout(cmd.Context()); err != nil {
			globalLog.Warningf("server logout failed: %s", err)
		}
		globalLog.Success("logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
