package topics

import (
	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/cloudvalet/valet/common"
	"github.com/spf13/cobra"
)

// userUpdateCmd represents the "user update" command
var userUpdateCmd = &cobra.Command{
	Use:   "update <username>",
	Short: "Update a user",
	Long: `Update username, email or permission of a user. Fields not given
keep their current value.

Examples:
  valet user update bob --email bob@corp.example.com
  valet user update bob --rename robert`,
	Args:        cobra.ExactArgs(1),
	Annotations: adminOnly(),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		user, err := globalAPI.GetUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		form := client.UserForm{
			Username: user.Username,
			Email:    user.Email,
		}
		if flags.Changed("rename") {
			form.Username, _ = flags.GetString("rename")
		}
		if flags.Changed("email") {
			form.Email, _ = flags.GetString("email")
		}
		if flags.Changed("permission") {
			perm, _ := flags.GetString("permission")
			form.Permission = common.Permission(perm)
		}

		if err := globalAPI.UpdateUser(cmd.Context(), user.Username, form); err != nil {
			return err
		}
		globalLog.Successf("user '%s' updated", form.Username)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userUpdateCmd)
	userUpdateCmd.Flags().StringP("rename", "r", "", "new username")
	userUpdateCmd.Flags().StringP("email", "e", "", "new email address")
	userUpdateCmd.Flags().StringP("permission", "p", "", "new permission (Read, Write, Admin)")
}
