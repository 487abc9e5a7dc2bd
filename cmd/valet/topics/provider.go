package topics

import (
	"github.com/spf13/cobra"
)

// providerCmd represents the provider command
var providerCmd = &cobra.Command{
	Use:   "provider",
	Short: "Cloud provider credentials (Admin only)",
}

func init() {
	rootCmd.AddCommand(providerCmd)
}
