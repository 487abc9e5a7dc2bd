package topics

import (
	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/cloudvalet/valet/common"
	"github.com/spf13/cobra"
)

// userCreateCmd represents the "user create" command
var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user",
	Long: `Create a user. The email is required, the password is asked on
the terminal unless --password is given. The default permission is Read.

Example:
  valet user create bob --email bob@example.com --permission Write`,
	Args:        cobra.ExactArgs(1),
	Annotations: adminOnly(),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		perm, _ := cmd.Flags().GetString("permission")

		form := client.UserForm{
			Username:   args[0],
			Email:      email,
			Password:   password,
			Permission: common.Permission(perm),
		}

		// validate first, so we don't prompt for nothing
		form.Password = "-"
		if err := form.Validate(true); err != nil {
			return err
		}
		form.Password = password

		if form.Password == "" {
			var err error
			form.Password, err = client.PromptPassword("Password: ")
			if err != nil {
				return err
			}
		}

		if err := globalAPI.CreateUser(cmd.Context(), form); err != nil {
			return err
		}
		globalLog.Successf("user '%s' created", form.Username)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().StringP("email", "e", "", "email address")
	userCreateCmd.Flags().StringP("password", "w", "", "password (prompted if empty)")
	userCreateCmd.Flags().StringP("permission", "p", "Read", "permission (Read, Write, Admin)")
}
