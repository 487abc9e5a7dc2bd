package topics

import (
	"fmt"

	"github.com/alessio/shellescape"
	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/spf13/cobra"
)

// providerGetCmd represents the "provider get" command
var providerGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show Azure credentials",
	Long: `Show the Azure service principal used by the server. The client
secret is masked unless --show-secret is given.

With --env, print shell exports, usable with eval:
  eval $(valet provider get --env --show-secret)`,
	Args:        cobra.NoArgs,
	Annotations: adminOnly(),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, _ := cmd.Flags().GetBool("env")
		showSecret, _ := cmd.Flags().GetBool("show-secret")

		creds, err := globalAPI.GetAzureCredentials(cmd.Context())
		if err != nil {
			return err
		}

		secret := creds.ClientSecret
		if !showSecret && secret != "" {
			secret = "********"
		}

		if env {
			client.GetExitMessage().Disable()
			fmt.Printf("export AZURE_CLIENT_ID=%s\n", shellescape.Quote(creds.ClientID))
			fmt.Printf("export AZURE_TENANT_ID=%s\n", shellescape.Quote(creds.TenantID))
			fmt.Printf("export AZURE_CLIENT_SECRET=%s\n", shellescape.Quote(secret))
			return nil
		}

		client.RenderTable(cmd.OutOrStdout(), []string{"Setting", "Value"}, [][]string{
			{"Client ID", creds.ClientID},
			{"Tenant ID", creds.TenantID},
			{"Client secret", secret},
		})
		return nil
	},
}

func init() {
	providerCmd.AddCommand(providerGetCmd)
	providerGetCmd.Flags().BoolP("env", "e", false, "print shell exports")
	providerGetCmd.Flags().Bool("show-secret", false, "do not mask the client secret")
}
