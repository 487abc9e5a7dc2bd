package topics

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// prefsCmd represents the prefs command
var prefsCmd = &cobra.Command{
	Use:         "prefs",
	Short:       "Local preferences",
	Annotations: noConfig(),
}

// prefsDarkModeCmd represents the "prefs dark-mode" command
var prefsDarkModeCmd = &cobra.Command{
	Use:   "dark-mode [on|off]",
	Short: "Show or change the dashboard theme",
	Long: `Show or change the dark mode preference of the dashboard. The
preference is kept in ~/.valet-prefs.toml and can also be toggled with
the T key in the dashboard.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: noConfig(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Printf("dark mode: %s\n", onOff(globalPrefs.DarkMode))
			return nil
		}

		var value bool
		switch args[0] {
		case "on":
			value = true
		case "off":
			value = false
		default:
			var err error
			value, err = strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("invalid value '%s' (on, off)", args[0])
			}
		}

		globalPrefs.DarkMode = value
		if err := globalPrefs.Save(); err != nil {
			return err
		}
		globalLog.Successf("dark mode: %s", onOff(value))
		return nil
	},
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsDarkModeCmd)
}
