package topics

import (
	"errors"
	"fmt"

	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/cloudvalet/valet/cmd/valet/dashboard"
	"github.com/spf13/cobra"
)

// vmSearchCmd represents the "vm search" command
var vmSearchCmd = &cobra.Command{
	Use:   "search <expression>",
	Short: "Search VMs",
	Long: `List VM names matching an expression, one per line. Useful to
feed bulk actions.

ex: valet vm search "location == 'eastus' && can_start"

List of criteria:
 - name (string)
 - resource_group (string)
 - location (string)
 - status (string, as given by the server)
 - state (string: running, stopped, deallocated, unknown)
 - can_start, can_deallocate, can_poweroff, can_restart (bool)

Functions:
 - like(pattern): glob match on the VM name, like('web-*')
 - in_group(pattern): case-insensitive glob match on the resource group
 - strlen(string)

Example:
  valet vm start $(valet vm search "state == 'deallocated' && in_group('rg-web*')")
`,
	Args:        cobra.ExactArgs(1),
	Annotations: protected(),
	RunE: func(cmd *cobra.Command, args []string) error {
		client.GetExitMessage().Disable()
		failOnEmpty, _ := cmd.Flags().GetBool("fail-on-empty")

		search, err := dashboard.ParseVMSearch(args[0])
		if err != nil {
			return err
		}

		store, err := loadFleet(cmd.Context())
		if err != nil {
			return err
		}

		results, err := search.Filter(store.VMs())
		if err != nil {
			return err
		}

		if len(results) == 0 && failOnEmpty {
			return errors.New("no VM found")
		}

		for _, vm := range results {
			fmt.Println(vm.Name)
		}
		return nil
	},
}

func init() {
	vmCmd.AddCommand(vmSearchCmd)
	vmSearchCmd.Flags().BoolP("fail-on-empty", "f", false, "exit with an error if nothing is found")
}
