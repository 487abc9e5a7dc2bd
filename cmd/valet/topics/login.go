package topics

import (
	"errors"
	"fmt"

	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/spf13/cobra"
)

// loginCmd represents the "login" command
var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Open a session",
	Long: `Open a session on the selected server. The session is kept in
~/.valet-session and reused by the next commands, until 'logout'.

The password is asked on the terminal, unless --password is given.

Examples:
  valet login alice
  valet -s prod login alice --password "$VALET_PASSWORD"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			password, err = client.PromptPassword("Password: ")
			if err != nil {
				return err
			}
		}

		err := globalAPI.Login(cmd.Context(), args[0], password)
		if errors.Is(err, client.ErrInvalidCredentials) {
			return errors.New("Invalid credentials")
		}
		if err != nil {
			return fmt.Errorf("%s", client.ErrorMessage(err, "Login failed"))
		}

		identity, err := globalAPI.Me(cmd.Context())
		if err != nil {
			return fmt.Errorf("logged in, but unable to get identity: %w", err)
		}
		globalLog.Successf("logged in as %s (%s)", identity.Username, identity.Permission)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("password", "p", "", "password (prompted if empty)")
}
