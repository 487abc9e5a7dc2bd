package topics

import (
	"fmt"

	"github.com/spf13/cobra"
)

// whoamiCmd represents the "whoami" command
var whoamiCmd = &cobra.Command{
	Use:         "whoami",
	Short:       "Display the session user",
	Args:        cobra.NoArgs,
	Annotations: protected(),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("user: %s\n", globalIdentity.Username)
		if globalIdentity.Email != "" {
			fmt.Printf("email: %s\n", globalIdentity.Email)
		}
		fmt.Printf("permission: %s\n", globalIdentity.Permission)
		fmt.Printf("server: %s (%s)\n", globalConfig.Server.Name, globalConfig.Server.URL)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
