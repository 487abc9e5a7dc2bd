package topics

import (
	"github.com/spf13/cobra"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Users management (Admin only)",
}

func init() {
	rootCmd.AddCommand(userCmd)
}
