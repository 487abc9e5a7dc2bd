package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/cloudvalet/valet/cmd/valet/dashboard"
	"github.com/cloudvalet/valet/common"
)

var actionShortcuts = map[common.Action]string{
	common.ActionStart:      "s",
	common.ActionDeallocate: "d",
	common.ActionPoweroff:   "p",
	common.ActionRestart:    "r",
}

// View implements tea.Model
func (model Model) View() string {
	if !model.ready {
		return ""
	}

	var sections []string
	sections = append(sections, model.renderHeader())

	if msg := model.store.Err(); msg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(model.theme.ErrorForeground).
			Render("✗ "+msg+"  (esc to dismiss)"))
	}

	if model.focus == focusSearch || model.view.Search != "" {
		cursor := ""
		if model.focus == focusSearch {
			cursor = "█"
		}
		sections = append(sections, "Search: "+model.view.Search+cursor)
	}

	if model.focus == focusNotifications {
		sections = append(sections, model.renderNotifications())
	} else {
		sections = append(sections, model.renderTable())
	}

	if line := model.renderPrompt(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, model.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (model Model) renderHeader() string {
	identity := model.store.Identity()
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground).
		Render("Cloud Valet")

	user := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Render(fmt.Sprintf("%s (%s)", identity.Username, identity.Permission.OrRead()))

	bell := "🔔"
	if count := model.store.Feed().Badge(); count > 0 {
		bell += lipgloss.NewStyle().
			Background(model.theme.BadgeBackground).
			Foreground(lipgloss.Color("255")).
			Render(fmt.Sprintf(" %d ", count))
	}

	loading := ""
	if model.store.Loading() {
		loading = " " + model.spinner.View()
	}
	return title + loading + "  " + user + "  " + bell
}

func (model Model) sortIndicator(col dashboard.SortColumn) string {
	if model.view.SortColumn != col {
		return ""
	}
	switch model.view.SortOrder {
	case dashboard.SortAscending:
		return " ▲"
	case dashboard.SortDescending:
		return " ▼"
	}
	return ""
}

func (model Model) renderTable() string {
	vms := model.store.VMs()
	rows, info := model.pageRows()

	if len(vms) == 0 {
		if model.store.Loading() {
			return model.spinner.View() + " Loading VMs..."
		}
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No VMs found")
	}

	headers := []string{
		"Name" + model.sortIndicator(dashboard.ColumnName),
		"Resource group" + model.sortIndicator(dashboard.ColumnResourceGroup),
		"Location" + model.sortIndicator(dashboard.ColumnLocation),
		"Status" + model.sortIndicator(dashboard.ColumnStatus),
	}
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = lipgloss.Width(header)
	}
	for _, vm := range rows {
		for i, col := range dashboard.Columns {
			if w := lipgloss.Width(col.Field(&vm)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	identity := model.store.Identity()
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var lines []string

	head := ""
	if model.view.SelectMode {
		head = checkbox(model.view.AllVisibleSelected(vms)) + " "
	}
	for i, header := range headers {
		head += pad(header, widths[i]) + "  "
	}
	if identity.Permission.CanWrite() {
		head += "Actions"
	}
	lines = append(lines, headerStyle.Render(head))

	if len(rows) == 0 {
		lines = append(lines, faint.Render("No VM matches the search"))
	}

	for index, vm := range rows {
		line := ""
		if model.view.SelectMode {
			line += checkbox(model.view.IsSelected(vm.Name)) + " "
		}
		for i, col := range dashboard.Columns {
			cell := pad(col.Field(&vm), widths[i])
			if col == dashboard.ColumnStatus {
				cell = lipgloss.NewStyle().Foreground(model.theme.StateColor(vm.State())).Render(cell)
			}
			line += cell + "  "
		}
		line += model.renderAffordances(vm)

		if index == model.cursor {
			line = lipgloss.NewStyle().
				Background(model.theme.SelectedBackground).
				Foreground(model.theme.SelectedForeground).
				Render(line)
		}
		lines = append(lines, line)
	}

	footer := fmt.Sprintf("%s  page %d/%d  %d per page", info, info.Page, info.Pages, model.view.PageSize)
	if model.view.SelectMode {
		footer += fmt.Sprintf("  %d selected", len(model.view.Selected(vms)))
	}
	lines = append(lines, faint.Render(footer))

	return strings.Join(lines, "\n")
}

func (model Model) renderAffordances(vm common.VirtualMachine) string {
	identity := model.store.Identity()
	inFlight, _ := model.store.InFlight(vm.Name)
	state, pending := model.view.Confirmations.State(vm.Name)
	if inFlight == "" && state == dashboard.ConfirmInFlight {
		inFlight = pending
	}

	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	var parts []string
	for _, aff := range dashboard.Affordances(identity.Permission, vm, inFlight) {
		if !aff.Visible {
			continue
		}
		label := "[" + actionShortcuts[aff.Action] + "]" + aff.Action.Label()
		switch {
		case aff.Loading:
			parts = append(parts, model.spinner.View()+aff.Action.Label())
		case aff.Enabled:
			parts = append(parts, label)
		default:
			parts = append(parts, faint.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (model Model) renderNotifications() string {
	list := model.store.Feed().List()
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)

	lines := []string{headerStyle.Render(fmt.Sprintf("Notifications (%d)", len(list)))}
	if len(list) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No notifications"))
	}
	for i, n := range list {
		line := n.Timestamp + "  " + n.Message
		if i == model.notificationCursor {
			line = lipgloss.NewStyle().
				Background(model.theme.SelectedBackground).
				Foreground(model.theme.SelectedForeground).
				Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (model Model) renderPrompt() string {
	switch model.focus {
	case focusConfirm:
		if model.confirmName != "" {
			_, action := model.view.Confirmations.State(model.confirmName)
			return fmt.Sprintf("%s %s? [y/N]", action.Label(), model.confirmName)
		}
		return fmt.Sprintf("%s %d VM(s): %s? [y/N]", model.bulkAction.Label(), len(model.bulkNames), strings.Join(model.bulkNames, ", "))
	case focusBulk:
		return fmt.Sprintf("%s %s: %d/%d done, please wait", model.spinner.View(), model.bulkAction.Label(), model.bulkProgress.Settled, model.bulkProgress.Total)
	}
	if model.status != "" {
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(model.status)
	}
	return ""
}

func (model Model) renderHelp() string {
	var bindings []string
	switch model.focus {
	case focusNotifications:
		bindings = helpOf(model.keys.Up, model.keys.Down, model.keys.Dismiss, model.keys.ClearAll, model.keys.Notifications)
	case focusSearch:
		bindings = []string{"enter done", "esc clear"}
	case focusConfirm:
		bindings = helpOf(model.keys.Confirm, model.keys.Cancel)
	case focusBulk:
		return ""
	default:
		list := []key.Binding{model.keys.Search, model.keys.SortName, model.keys.PageNext, model.keys.PageSize}
		if model.store.Identity().Permission.CanWrite() {
			list = append(list, model.keys.SelectMode)
		}
		list = append(list, model.keys.Notifications, model.keys.Refresh, model.keys.DarkMode, model.keys.Quit)
		bindings = helpOf(list...)
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(strings.Join(bindings, " • "))
}

func helpOf(bindings ...key.Binding) []string {
	res := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		res = append(res, h.Key+" "+h.Desc)
	}
	return res
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
