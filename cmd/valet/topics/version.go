package topics

import (
	"encoding/json"
	"fmt"

	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display versions",
	Long: `Display client version. You can also check the server, and the
latest client version it knows.

Examples:
  valet version
  valet version --remote`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("client version: %s\n", client.Version)

		remote, _ := cmd.Flags().GetBool("remote")
		if !remote {
			return nil
		}

		resp, err := globalAPI.NewCall("GET", "/", map[string]string{}).Send(cmd.Context())
		if err != nil {
			return err
		}

		var root struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(resp.Body, &root); err != nil || root.Message == "" {
			root.Message = resp.Status
		}
		fmt.Printf("server: %s (%s)\n", globalConfig.Server.URL, root.Message)
		if latest := resp.Header.Get("Latest-Known-Client-Version"); latest != "" {
			fmt.Printf("latest client version known by the server: %s\n", latest)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("remote", "r", false, "also check the server")
}
