package topics

import (
	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/spf13/cobra"
)

// providerSetCmd represents the "provider set" command
var providerSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change Azure credentials",
	Long: `Change the Azure service principal used by the server. Values not
given keep their current value. The client secret is asked on the
terminal when --client-secret is not given and --keep-secret is not set.

Example:
  valet provider set --client-id 0000-1111 --tenant-id 2222-3333`,
	Args:        cobra.NoArgs,
	Annotations: adminOnly(),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		keepSecret, _ := flags.GetBool("keep-secret")

		// a failed read gives an empty form
		creds := globalAPI.AzureCredentialsOrEmpty(cmd.Context())

		if flags.Changed("client-id") {
			creds.ClientID, _ = flags.GetString("client-id")
		}
		if flags.Changed("tenant-id") {
			creds.TenantID, _ = flags.GetString("tenant-id")
		}
		switch {
		case flags.Changed("client-secret"):
			creds.ClientSecret, _ = flags.GetString("client-secret")
		case !keepSecret:
			secret, err := client.PromptPassword("Client secret: ")
			if err != nil {
				return err
			}
			creds.ClientSecret = secret
		}

		if err := globalAPI.SetAzureCredentials(cmd.Context(), creds); err != nil {
			return err
		}
		globalLog.Success("Azure credentials saved")
		return nil
	},
}

func init() {
	providerCmd.AddCommand(providerSetCmd)
	providerSetCmd.Flags().String("client-id", "", "client (application) ID")
	providerSetCmd.Flags().String("tenant-id", "", "tenant (directory) ID")
	providerSetCmd.Flags().String("client-secret", "", "client secret (prompted if empty)")
	providerSetCmd.Flags().BoolP("keep-secret", "k", false, "keep the current client secret")
}
