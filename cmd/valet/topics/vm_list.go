package topics

import (
	"fmt"

	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/cloudvalet/valet/cmd/valet/dashboard"
	"github.com/cloudvalet/valet/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// vmListCmd represents the "vm list" command
var vmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List VMs",
	Long: `List VMs of the fleet, as the dashboard does: a case-insensitive
search on name, resource group, location and status, an optional sort
column, and pages.

Examples:
  valet vm list
  valet vm list --search eastus --sort status --desc
  valet vm list --page-size 25 --page 2`,
	Args:        cobra.NoArgs,
	Annotations: protected(),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		search, _ := flags.GetString("search")
		sortCol, _ := flags.GetString("sort")
		desc, _ := flags.GetBool("desc")
		page, _ := flags.GetInt("page")
		pageSize, _ := flags.GetInt("page-size")
		all, _ := flags.GetBool("all")
		basic, _ := flags.GetBool("basic")

		store, err := loadFleet(cmd.Context())
		if err != nil {
			return err
		}
		vms := store.VMs()

		view := dashboard.NewView()
		if !all {
			if err := view.SetPageSize(pageSize); err != nil {
				return err
			}
		}
		if sortCol != "" {
			col, err := dashboard.ParseSortColumn(sortCol)
			if err != nil {
				return err
			}
			view.ToggleSort(col)
			if desc {
				view.ToggleSort(col)
			}
		}
		view.SetSearch(search, vms)
		view.Page = page

		var rows []common.VirtualMachine
		var info dashboard.PageInfo
		if all {
			rows = view.Rows(vms)
		} else {
			rows, info = view.PageRows(vms)
		}

		if basic {
			client.GetExitMessage().Disable()
			for _, vm := range rows {
				fmt.Println(vm.Name)
			}
			return nil
		}

		if len(vms) == 0 {
			fmt.Println("No VMs found")
			return nil
		}

		data := make([][]string, 0, len(rows))
		for _, vm := range rows {
			data = append(data, []string{
				vm.Name,
				vm.ResourceGroup,
				vm.Location,
				stateColor(vm.State()).Sprint(vm.Status),
			})
		}
		client.RenderTableTruncateCol(0, []string{"Name", "Resource group", "Location", "Status"}, data)

		if len(rows) == 0 {
			fmt.Println("No VM matches the search")
		}
		if !all {
			fmt.Printf("%s, page %d/%d\n", info, info.Page, info.Pages)
		}
		return nil
	},
}

func stateColor(state common.VMState) *color.Color {
	switch state {
	case common.VMStateRunning:
		return color.New(color.FgHiGreen)
	case common.VMStateStopped:
		return color.New(color.FgHiYellow)
	case common.VMStateDeallocated:
		return color.New(color.FgHiBlack)
	}
	return color.New(color.FgHiMagenta)
}

func init() {
	vmCmd.AddCommand(vmListCmd)
	vmListCmd.Flags().StringP("search", "q", "", "filter on name, resource group, location or status")
	vmListCmd.Flags().String("sort", "", "sort column (name, resourceGroup, location, status)")
	vmListCmd.Flags().Bool("desc", false, "descending sort")
	vmListCmd.Flags().IntP("page", "p", 1, "page number")
	vmListCmd.Flags().Int("page-size", dashboard.PageSizes[0], fmt.Sprintf("page size %v", dashboard.PageSizes))
	vmListCmd.Flags().BoolP("all", "a", false, "show all VMs, without pages")
	vmListCmd.Flags().BoolP("basic", "b", false, "show basic list, without any formating")
}
