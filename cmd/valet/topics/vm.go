package topics

import (
	"context"
	"errors"

	"github.com/cloudvalet/valet/cmd/valet/dashboard"
	"github.com/spf13/cobra"
)

// vmCmd represents the vm command
var vmCmd = &cobra.Command{
	Use:   "vm",
	Short: "Virtual Machines management",
}

func init() {
	rootCmd.AddCommand(vmCmd)
}

// loadFleet creates the Store of the session and fetches the fleet
func loadFleet(ctx context.Context) (*dashboard.Store, error) {
	store := dashboard.NewStore(globalAPI, globalIdentity, nil, globalLog)
	if err := store.Refresh(ctx); err != nil {
		return nil, errors.New(store.Err())
	}
	return store, nil
}
