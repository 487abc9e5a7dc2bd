package topics

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/cloudvalet/valet/cmd/valet/dashboard"
	"github.com/cloudvalet/valet/common"
	"github.com/spf13/cobra"
)

var vmActionHelp = map[common.Action]string{
	common.ActionStart:      "The VM must not be running.",
	common.ActionDeallocate: "Compute resources are released, the VM is no longer billed.",
	common.ActionPoweroff:   "The VM is stopped but stays allocated (and billed). The VM must be running.",
	common.ActionRestart:    "The VM must be running.",
}

// newVMActionCmd creates the "vm <action>" command
func newVMActionCmd(action common.Action) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(action) + " <vm-name> [vm-name...]",
		Short: action.Label() + " one or more VMs",
		Long: fmt.Sprintf(`%s one or more VMs, by name. %s

With multiple names, all requests are sent at once (bulk), and the
command waits for every one of them. A confirmation is asked first,
unless --yes is given.

See 'vm list' or 'vm search' for VM Names.

Examples:
  valet vm %s web-1
  valet vm %s web-1 web-2 --yes`,
			action.Label(), vmActionHelp[action], action, action),
		Args:        cobra.MinimumNArgs(1),
		Annotations: protected(),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return vmAction(cmd, action, args, yes)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	return cmd
}

func vmAction(cmd *cobra.Command, action common.Action, names []string, yes bool) error {
	if !globalIdentity.Permission.CanWrite() {
		return fmt.Errorf("Read-only session (%s): VM actions need Write permission", globalIdentity.Username)
	}

	store, err := loadFleet(cmd.Context())
	if err != nil {
		return err
	}

	names = dashboard.UniqueNames(names)
	if len(names) == 1 {
		vm, exists := store.Get(names[0])
		if !exists {
			return fmt.Errorf("VM '%s' not found", names[0])
		}
		if !vm.Eligibility().Allows(action) {
			return fmt.Errorf("cannot %s %s (%s)", action.Label(), vm.Name, vm.Status)
		}
		if !yes && !client.Confirm(os.Stdin, os.Stderr, fmt.Sprintf("%s %s?", action.Label(), vm.Name)) {
			return fmt.Errorf("cancelled")
		}

		outcome := store.PerformAction(cmd.Context(), vm, action)
		if outcome.Err != nil {
			return fmt.Errorf("%s", client.ErrorMessage(outcome.Err, "request failed"))
		}
		return nil
	}

	eligible, refused := dashboard.SplitEligible(store.VMs(), names, action)
	for _, vm := range refused {
		globalLog.Failuref("cannot %s %s (%s)", action.Label(), vm.Name, vm.Status)
	}
	if len(eligible) == 0 {
		return fmt.Errorf("%d/%d request(s) failed", len(refused), len(names))
	}

	question := fmt.Sprintf("%s %d VM(s): %s?", action.Label(), len(eligible), strings.Join(eligible, ", "))
	if !yes && !client.Confirm(os.Stdin, os.Stderr, question) {
		return fmt.Errorf("cancelled")
	}

	outcomes := store.PerformBulkAction(cmd.Context(), eligible, action, func(progress dashboard.BulkProgress) {
		globalLog.Tracef("%d/%d done (%s)", progress.Settled, progress.Total, progress.Last.Name)
	})

	failed := len(refused)
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			if errors.Is(outcome.Err, dashboard.ErrUnknownVM) {
				globalLog.Errorf("VM '%s' not found", outcome.Name)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d/%d request(s) failed", failed, len(names))
	}
	globalLog.Successf("%s: %d VM(s) done", action.Label(), len(outcomes))
	return nil
}

func init() {
	for _, action := range common.AllActions {
		vmCmd.AddCommand(newVMActionCmd(action))
	}
}
