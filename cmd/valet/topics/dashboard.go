package topics

import (
	"github.com/cloudvalet/valet/cmd/valet/dashboard"
	"github.com/cloudvalet/valet/cmd/valet/tui"
	"github.com/spf13/cobra"
)

// dashboardCmd represents the "dashboard" command
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive fleet dashboard",
	Long: `Open the interactive fleet dashboard: search, sort and pages,
single and bulk actions with confirmation, notifications.

Keys are shown at the bottom of the screen, 'q' to quit.
The theme (T key) is saved in ~/.valet-prefs.toml.`,
	Aliases:     []string{"ui"},
	Args:        cobra.NoArgs,
	Annotations: protected(),
	RunE: func(cmd *cobra.Command, args []string) error {
		// the log would draw over the alternate screen
		store := dashboard.NewStore(globalAPI, globalIdentity, nil, nil)
		defer store.Close()

		return tui.Run(cmd.Context(), store, globalPrefs)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
