package dashboard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cloudvalet/valet/common"
	"golang.org/x/text/cases"
)

// SortColumn is a sortable column of the fleet table
type SortColumn string

// Fleet table columns
const (
	ColumnName          SortColumn = "name"
	ColumnResourceGroup SortColumn = "resourceGroup"
	ColumnLocation      SortColumn = "location"
	ColumnStatus        SortColumn = "status"
)

// Columns in display order
var Columns = []SortColumn{ColumnName, ColumnResourceGroup, ColumnLocation, ColumnStatus}

// SortOrder of the sorted column
type SortOrder int

// Sort orders, SortNone keeping the store order
const (
	SortNone SortOrder = iota
	SortAscending
	SortDescending
)

// PageSizes are the allowed page sizes, the first being the default
var PageSizes = []int{10, 25, 50, 75, 100}

// ParseSortColumn accepts column names, case-insensitive, and a few aliases
func ParseSortColumn(s string) (SortColumn, error) {
	switch strings.ToLower(s) {
	case "name":
		return ColumnName, nil
	case "resourcegroup", "resource-group", "group", "rg":
		return ColumnResourceGroup, nil
	case "location":
		return ColumnLocation, nil
	case "status", "state":
		return ColumnStatus, nil
	}
	return "", fmt.Errorf("unknown column '%s' (name, group, location, status)", s)
}

// Field returns the value of the column for vm
func (c SortColumn) Field(vm *common.VirtualMachine) string {
	switch c {
	case ColumnName:
		return vm.Name
	case ColumnResourceGroup:
		return vm.ResourceGroup
	case ColumnLocation:
		return vm.Location
	case ColumnStatus:
		return vm.Status
	}
	return ""
}

// View is the presentation state of the fleet table: search, sort,
// pagination and selection. It never modifies the Store.
type View struct {
	Search     string
	SortColumn SortColumn
	SortOrder  SortOrder
	Page       int
	PageSize   int
	SelectMode bool

	Confirmations *Confirmations

	selected map[string]bool
}

// NewView creates a view with default settings
func NewView() *View {
	return &View{
		Page:          1,
		PageSize:      PageSizes[0],
		Confirmations: NewConfirmations(),
		selected:      make(map[string]bool),
	}
}

// FilterVMs keeps VMs where name, resource group, location or status
// contains text (case-insensitive). An empty text keeps everything, in
// the same order.
func FilterVMs(vms []common.VirtualMachine, text string) []common.VirtualMachine {
	if text == "" {
		res := make([]common.VirtualMachine, len(vms))
		copy(res, vms)
		return res
	}

	folder := cases.Fold()
	needle := folder.String(text)

	res := []common.VirtualMachine{}
	for i := range vms {
		vm := &vms[i]
		for _, col := range Columns {
			if strings.Contains(folder.String(col.Field(vm)), needle) {
				res = append(res, *vm)
				break
			}
		}
	}
	return res
}

// Rows returns the filtered then sorted VMs
func (v *View) Rows(vms []common.VirtualMachine) []common.VirtualMachine {
	rows := FilterVMs(vms, v.Search)
	if v.SortOrder == SortNone || v.SortColumn == "" {
		return rows
	}

	col := v.SortColumn
	slices.SortStableFunc(rows, func(a, b common.VirtualMachine) int {
		cmp := strings.Compare(col.Field(&a), col.Field(&b))
		if v.SortOrder == SortDescending {
			return -cmp
		}
		return cmp
	})
	return rows
}

// PageRows returns the current page of Rows
func (v *View) PageRows(vms []common.VirtualMachine) ([]common.VirtualMachine, PageInfo) {
	rows, info := Paginate(v.Rows(vms), v.Page, v.PageSize)
	v.Page = info.Page
	return rows, info
}

// SetSearch changes the search text, going back to the first page and
// dropping selected VMs that are no longer visible
func (v *View) SetSearch(text string, vms []common.VirtualMachine) {
	v.Search = text
	v.Page = 1
	v.Reconcile(vms)
}

// ToggleSort cycles ascending, descending, none on col. Another
// column replaces the previous sort.
func (v *View) ToggleSort(col SortColumn) {
	if v.SortColumn != col {
		v.SortColumn = col
		v.SortOrder = SortAscending
		return
	}
	switch v.SortOrder {
	case SortNone:
		v.SortOrder = SortAscending
	case SortAscending:
		v.SortOrder = SortDescending
	default:
		v.SortOrder = SortNone
		v.SortColumn = ""
	}
}

// SetPageSize accepts one of PageSizes
func (v *View) SetPageSize(size int) error {
	if !slices.Contains(PageSizes, size) {
		return fmt.Errorf("invalid page size %d (%v)", size, PageSizes)
	}
	v.PageSize = size
	v.Page = 1
	return nil
}

// NextPage moves forward, if possible
func (v *View) NextPage(vms []common.VirtualMachine) {
	_, info := Paginate(v.Rows(vms), v.Page+1, v.PageSize)
	v.Page = info.Page
}

// PreviousPage moves backward, if possible
func (v *View) PreviousPage() {
	if v.Page > 1 {
		v.Page--
	}
}

// ToggleSelectMode shows or hides row checkboxes. Leaving select mode
// clears the selection. The caller only offers it to sessions that
// can write (see BulkEnabled).
func (v *View) ToggleSelectMode() {
	v.SelectMode = !v.SelectMode
	if !v.SelectMode {
		v.selected = make(map[string]bool)
	}
}

// ToggleSelected (un)checks a visible VM. Returns false if the VM can't
// be selected (select mode off, or not visible).
func (v *View) ToggleSelected(name string, vms []common.VirtualMachine) bool {
	if !v.SelectMode || !v.isVisible(name, vms) {
		return false
	}
	if v.selected[name] {
		delete(v.selected, name)
	} else {
		v.selected[name] = true
	}
	return true
}

// SelectAllVisible is the header checkbox: it selects every visible VM,
// or clears the selection when they are all selected already
func (v *View) SelectAllVisible(vms []common.VirtualMachine) {
	if !v.SelectMode {
		return
	}
	rows := v.Rows(vms)
	if v.AllVisibleSelected(vms) {
		v.selected = make(map[string]bool)
		return
	}
	v.selected = make(map[string]bool, len(rows))
	for _, vm := range rows {
		v.selected[vm.Name] = true
	}
}

// AllVisibleSelected is the state of the header checkbox
func (v *View) AllVisibleSelected(vms []common.VirtualMachine) bool {
	rows := v.Rows(vms)
	if len(rows) == 0 {
		return false
	}
	for _, vm := range rows {
		if !v.selected[vm.Name] {
			return false
		}
	}
	return true
}

// IsSelected returns true if name is selected
func (v *View) IsSelected(name string) bool {
	return v.selected[name]
}

// Selected returns selected names, in row order
func (v *View) Selected(vms []common.VirtualMachine) []string {
	res := []string{}
	for _, vm := range v.Rows(vms) {
		if v.selected[vm.Name] {
			res = append(res, vm.Name)
		}
	}
	return res
}

// Reconcile drops selected names that are not visible anymore (after
// a search change or a refresh)
func (v *View) Reconcile(vms []common.VirtualMachine) {
	visible := make(map[string]bool)
	for _, vm := range v.Rows(vms) {
		visible[vm.Name] = true
	}
	for name := range v.selected {
		if !visible[name] {
			delete(v.selected, name)
		}
	}
}

// BulkEnabled is true when the bulk action menu can be opened
func (v *View) BulkEnabled(perm common.Permission, vms []common.VirtualMachine) bool {
	return perm.CanWrite() && v.SelectMode && len(v.Selected(vms)) > 0
}

func (v *View) isVisible(name string, vms []common.VirtualMachine) bool {
	for _, vm := range v.Rows(vms) {
		if vm.Name == name {
			return true
		}
	}
	return false
}
