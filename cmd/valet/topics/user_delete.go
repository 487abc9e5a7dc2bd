package topics

import (
	"errors"
	"fmt"
	"os"

	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/spf13/cobra"
)

// userDeleteCmd represents the "user delete" command
var userDeleteCmd = &cobra.Command{
	Use:         "delete <username>",
	Short:       "Delete a user",
	Args:        cobra.ExactArgs(1),
	Annotations: adminOnly(),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		username := args[0]

