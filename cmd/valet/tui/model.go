package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/cloudvalet/valet/cmd/valet/dashboard"
	"github.com/cloudvalet/valet/common"
)

// focusRegion tells where keyboard input goes
type focusRegion int

const (
	focusList focusRegion = iota
	focusSearch
	focusConfirm
	focusNotifications
	focusBulk // blocking: only ctrl+c is accepted
)

// messages from async commands
type (
	refreshDoneMsg  struct{ err error }
	actionDoneMsg   struct{ outcome dashboard.ActionOutcome }
	bulkProgressMsg struct{ progress dashboard.BulkProgress }
	bulkDoneMsg     struct{}
)

// Model is the bubbletea model of the fleet dashboard. Remote calls
// run in commands, the Store being the only shared state.
type Model struct {
	ctx   context.Context
	store *dashboard.Store
	view  *dashboard.View
	prefs *client.Prefs
	keys  KeyMap
	theme Theme

	width  int
	height int
	ready  bool

	focus   focusRegion
	cursor  int // row index in the current page
	spinner spinner.Model

	// confirmation target: a VM name, or empty with bulkAction set
	confirmName string
	bulkAction  common.Action
	bulkNames   []string

	bulkProgress dashboard.BulkProgress
	bulkChannel  chan dashboard.BulkProgress

	notificationCursor int
	status             string
}

// NewModel creates the dashboard model. prefs may be nil (no theme
// persistence).
func NewModel(ctx context.Context, store *dashboard.Store, prefs *client.Prefs) Model {
	darkMode := false
	if prefs != nil {
		darkMode = prefs.DarkMode
	}
	return Model{
		ctx:     ctx,
		store:   store,
		view:    dashboard.NewView(),
		prefs:   prefs,
		keys:    DefaultKeyMap,
		theme:   ThemeFor(darkMode),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Run starts the dashboard in the alternate screen, until the user quits
func Run(ctx context.Context, store *dashboard.Store, prefs *client.Prefs) error {
	program := tea.NewProgram(NewModel(ctx, store, prefs), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Init implements tea.Model: first fetch of the fleet
func (model Model) Init() tea.Cmd {
	return tea.Batch(model.refreshCmd(), model.spinner.Tick)
}

func (model Model) refreshCmd() tea.Cmd {
	store := model.store
	ctx := model.ctx
	return func() tea.Msg {
		return refreshDoneMsg{err: store.Refresh(ctx)}
	}
}

func (model Model) actionCmd(vm common.VirtualMachine, action common.Action) tea.Cmd {
	store := model.store
	ctx := model.ctx
	return func() tea.Msg {
		return actionDoneMsg{outcome: store.PerformAction(ctx, vm, action)}
	}
}

// startBulk runs the bulk action in the background, progress being
// delivered through a channel sized so legs never wait on the UI
func (model Model) startBulk(names []string, action common.Action) (chan dashboard.BulkProgress, tea.Cmd) {
	channel := make(chan dashboard.BulkProgress, len(names))
	store := model.store
	ctx := model.ctx
	go func() {
		store.PerformBulkAction(ctx, names, action, func(progress dashboard.BulkProgress) {
			channel <- progress
		})
		close(channel)
	}()
	return channel, listenForBulkProgress(channel)
}

// listenForBulkProgress blocks until the next bulk leg settles
func listenForBulkProgress(channel <-chan dashboard.BulkProgress) tea.Cmd {
	return func() tea.Msg {
		progress, ok := <-channel
		if !ok {
			return bulkDoneMsg{}
		}
		return bulkProgressMsg{progress: progress}
	}
}

// Update implements tea.Model
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		switch model.focus {
		case focusBulk:
			return model, nil
		case focusSearch:
			return model.handleSearchKeys(message)
		case focusConfirm:
			return model.handleConfirmKeys(message)
		case focusNotifications:
			return model.handleNotificationKeys(message)
		}
		return model.handleListKeys(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case spinner.TickMsg:
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		return model, cmd

	case refreshDoneMsg:
		model.view.Reconcile(model.store.VMs())
		model.clampCursor()

	case actionDoneMsg:
		model.view.Confirmations.Settle(message.outcome.Name)
		model.view.Reconcile(model.store.VMs())

	case bulkProgressMsg:
		model.bulkProgress = message.progress
		return model, listenForBulkProgress(model.bulkChannel)

	case bulkDoneMsg:
		model.status = fmt.Sprintf("%s: %d VM(s) processed", model.bulkAction.Label(), model.bulkProgress.Settled)
		model.focus = focusList
		model.bulkChannel = nil
		model.bulkAction = ""
		model.bulkNames = nil
		model.view.Reconcile(model.store.VMs())
	}
	return model, nil
}

// pageRows is the current page of the table
func (model Model) pageRows() ([]common.VirtualMachine, dashboard.PageInfo) {
	return model.view.PageRows(model.store.VMs())
}

func (model *Model) clampCursor() {
	rows, _ := model.pageRows()
	if model.cursor >= len(rows) {
		model.cursor = len(rows) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

// currentVM is the VM under the cursor
func (model Model) currentVM() (common.VirtualMachine, bool) {
	rows, _ := model.pageRows()
	if model.cursor < 0 || model.cursor >= len(rows) {
		return common.VirtualMachine{}, false
	}
	return rows[model.cursor], true
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	vms := model.store.VMs()
	model.status = ""

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		rows, _ := model.pageRows()
		if model.cursor < len(rows)-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.PageNext):
		model.view.NextPage(vms)
		model.cursor = 0

	case key.Matches(message, model.keys.PagePrev):
		model.view.PreviousPage()
		model.cursor = 0

	case key.Matches(message, model.keys.PageSize):
		model.view.SetPageSize(nextPageSize(model.view.PageSize))
		model.cursor = 0

	case key.Matches(message, model.keys.SortName):
		model.view.ToggleSort(dashboard.ColumnName)
	case key.Matches(message, model.keys.SortGroup):
		model.view.ToggleSort(dashboard.ColumnResourceGroup)
	case key.Matches(message, model.keys.SortLocation):
		model.view.ToggleSort(dashboard.ColumnLocation)
	case key.Matches(message, model.keys.SortStatus):
		model.view.ToggleSort(dashboard.ColumnStatus)

	case key.Matches(message, model.keys.Search):
		model.focus = focusSearch

	case key.Matches(message, model.keys.SearchClear):
		model.store.ClearErr()
		if model.view.Search != "" {
			model.view.SetSearch("", vms)
			model.cursor = 0
		}

	// select mode only exists for sessions allowed to act
	case key.Matches(message, model.keys.SelectMode):
		if model.store.Identity().Permission.CanWrite() {
			model.view.ToggleSelectMode()
		}

	case key.Matches(message, model.keys.Select):
		if vm, ok := model.currentVM(); ok && model.store.Identity().Permission.CanWrite() {
			model.view.ToggleSelected(vm.Name, vms)
		}

	case key.Matches(message, model.keys.SelectAll):
		if model.store.Identity().Permission.CanWrite() {
			model.view.SelectAllVisible(vms)
		}

	case key.Matches(message, model.keys.Start):
		return model.requestAction(common.ActionStart)
	case key.Matches(message, model.keys.Deallocate):
		return model.requestAction(common.ActionDeallocate)
	case key.Matches(message, model.keys.Poweroff):
		return model.requestAction(common.ActionPoweroff)
	case key.Matches(message, model.keys.Restart):
		return model.requestAction(common.ActionRestart)

	case key.Matches(message, model.keys.Notifications):
		model.focus = focusNotifications
		model.notificationCursor = 0

	case key.Matches(message, model.keys.Refresh):
		return model, model.refreshCmd()

	case key.Matches(message, model.keys.DarkMode):
		return model.toggleDarkMode()
	}

	model.clampCursor()
	return model, nil
}

// requestAction opens the confirmation of an action, on the selection
// in select mode, on the cursor row otherwise
func (model Model) requestAction(action common.Action) (tea.Model, tea.Cmd) {
	identity := model.store.Identity()
	if !identity.Permission.CanWrite() {
		model.status = "Read-only session"
		return model, nil
	}

	vms := model.store.VMs()
	if model.view.SelectMode {
		if !model.view.BulkEnabled(identity.Permission, vms) {
			model.status = "No VM selected"
			return model, nil
		}
		model.bulkAction = action
		model.bulkNames = model.view.Selected(vms)
		model.confirmName = ""
		model.focus = focusConfirm
		return model, nil
	}

	vm, ok := model.currentVM()
	if !ok {
		return model, nil
	}
	inFlight, _ := model.store.InFlight(vm.Name)
	for _, aff := range dashboard.Affordances(identity.Permission, vm, inFlight) {
		if aff.Action == action && !aff.Enabled {
			model.status = fmt.Sprintf("%s is not available for %s", action.Label(), vm.Name)
			return model, nil
		}
	}
	if err := model.view.Confirmations.Request(vm.Name, action); err != nil {
		model.status = err.Error()
		return model, nil
	}
	model.confirmName = vm.Name
	model.focus = focusConfirm
	return model, nil
}

func (model Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Confirm):
		model.focus = focusList
		if model.confirmName != "" {
			name := model.confirmName
			model.confirmName = ""
			action, err := model.view.Confirmations.Confirm(name)
			if err != nil {
				model.status = err.Error()
				return model, nil
			}
			vm, exists := model.store.Get(name)
			if !exists {
				model.view.Confirmations.Settle(name)
				return model, nil
			}
			return model, model.actionCmd(vm, action)
		}

		model.focus = focusBulk
		model.bulkProgress = dashboard.BulkProgress{Total: len(model.bulkNames)}
		channel, cmd := model.startBulk(model.bulkNames, model.bulkAction)
		model.bulkChannel = channel
		return model, cmd

	case key.Matches(message, model.keys.Cancel):
		if model.confirmName != "" {
			model.view.Confirmations.Cancel(model.confirmName)
		}
		model.confirmName = ""
		model.bulkAction = ""
		model.bulkNames = nil
		model.focus = focusList
	}
	return model, nil
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	vms := model.store.VMs()
	search := model.view.Search

	switch message.Type {
	case tea.KeyEsc:
		if search != "" {
			model.view.SetSearch("", vms)
		} else {
			model.focus = focusList
		}
	case tea.KeyEnter:
		model.focus = focusList
	case tea.KeyBackspace:
		if runes := []rune(search); len(runes) > 0 {
			model.view.SetSearch(string(runes[:len(runes)-1]), vms)
		}
	case tea.KeySpace:
		model.view.SetSearch(search+" ", vms)
	case tea.KeyRunes:
		model.view.SetSearch(search+string(message.Runes), vms)
	}
	model.cursor = 0
	return model, nil
}

func (model Model) handleNotificationKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	feed := model.store.Feed()
	list := feed.List()

	switch {
	case key.Matches(message, model.keys.Up):
		if model.notificationCursor > 0 {
			model.notificationCursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.notificationCursor < len(list)-1 {
			model.notificationCursor++
		}
	case key.Matches(message, model.keys.Dismiss):
		if model.notificationCursor < len(list) {
			feed.Dismiss(list[model.notificationCursor].ID)
		}
		if model.notificationCursor >= feed.Badge() && model.notificationCursor > 0 {
			model.notificationCursor--
		}
	case key.Matches(message, model.keys.ClearAll):
		feed.Clear()
		model.notificationCursor = 0
	case key.Matches(message, model.keys.Notifications), key.Matches(message, model.keys.SearchClear), key.Matches(message, model.keys.Quit):
		model.focus = focusList
	}
	return model, nil
}

func (model Model) toggleDarkMode() (tea.Model, tea.Cmd) {
	darkMode := model.theme != DarkTheme
	model.theme = ThemeFor(darkMode)
	if model.prefs != nil {
		model.prefs.DarkMode = darkMode
		if err := model.prefs.Save(); err != nil {
			model.status = fmt.Sprintf("unable to save preferences: %s", err)
		}
	}
	return model, nil
}

func nextPageSize(current int) int {
	for i, size := range dashboard.PageSizes {
		if size == current {
			return dashboard.PageSizes[(i+1)%len(dashboard.PageSizes)]
		}
	}
	return dashboard.PageSizes[0]
}
