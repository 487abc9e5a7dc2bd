package tui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/cloudvalet/valet/cmd/valet/dashboard"
	"github.com/cloudvalet/valet/common"
)

type testFleet struct {
	mux      sync.Mutex
	vms      []common.VirtualMachine
	requests []common.ActionRequest
}

func (f *testFleet) ListVMs(ctx context.Context) ([]common.VirtualMachine, error) {
	f.mux.Lock()
	defer f.mux.Unlock()
	res := make([]common.VirtualMachine, len(f.vms))
	copy(res, f.vms)
	return res, nil
}

func (f *testFleet) VMAction(ctx context.Context, req common.ActionRequest) (*common.VirtualMachine, error) {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.requests = append(f.requests, req)
	for i := range f.vms {
		if f.vms[i].Name == req.Name {
			f.vms[i].Status = "VM running"
			vm := f.vms[i]
			return &vm, nil
		}
	}
	return nil, &client.HTTPError{StatusCode: 404, Detail: "VM not found"}
}

func newTestModel(t *testing.T, perm common.Permission) (Model, *testFleet) {
	t.Helper()
	fleet := &testFleet{vms: []common.VirtualMachine{
		{Name: "web-1", ResourceGroup: "rg-web", Location: "eastus", Status: "VM deallocated"},
		{Name: "web-2", ResourceGroup: "rg-web", Location: "eastus", Status: "VM stopped"},
		{Name: "db-1", ResourceGroup: "rg-data", Location: "westus", Status: "VM running"},
	}}
	store := dashboard.NewStore(fleet, common.Identity{Username: "alice", Permission: perm}, nil, nil)
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	model := NewModel(context.Background(), store, nil)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 140, Height: 30})
	return updated.(Model), fleet
}

func press(t *testing.T, model Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	var updated tea.Model = model
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, cmd = updated.(Model).Update(msg)
	}
	return updated.(Model), cmd
}

func TestModelView(t *testing.T) {
	model, _ := newTestModel(t, common.PermissionWrite)
	view := model.View()

	for _, want := range []string{"Cloud Valet", "alice (Write)", "web-1", "rg-data", "1-3 of 3", "[s]Start"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q:\n%s", want, view)
		}
	}
}

func TestModelReadOnly(t *testing.T) {
	model, fleet := newTestModel(t, common.PermissionRead)

	if strings.Contains(model.View(), "[s]Start") {
		t.Error("Read sessions should not see actions")
	}

	model, cmd := press(t, model, "s")
	if model.focus != focusList || cmd != nil {
		t.Error("action keys should be ignored")
	}

	model, _ = press(t, model, "v", "space", "a")
	if model.view.SelectMode {
		t.Error("Read sessions should not enter select mode")
	}
	if got := model.view.Selected(model.store.VMs()); len(got) != 0 {
		t.Errorf("Selected() = %v, want none", got)
	}
	view := model.View()
	for _, unwanted := range []string{"[ ]", "[x]", "selected", "select mode"} {
		if strings.Contains(view, unwanted) {
			t.Errorf("view should not contain %q:\n%s", unwanted, view)
		}
	}
	if len(fleet.requests) != 0 {
		t.Errorf("got %d requests, want none", len(fleet.requests))
	}
}

func TestModelSearch(t *testing.T) {
	model, _ := newTestModel(t, common.PermissionWrite)

	model, _ = press(t, model, "/", "d", "b")
	if model.view.Search != "db" {
		t.Fatalf("Search = %q, want db", model.view.Search)
	}
	rows, _ := model.pageRows()
	if len(rows) != 1 || rows[0].Name != "db-1" {
		t.Errorf("rows = %v", rows)
	}

	model, _ = press(t, model, "backspace", "backspace", "enter")
	if model.focus != focusList || model.view.Search != "" {
		t.Errorf("focus = %d, search = %q", model.focus, model.view.Search)
	}

	model, _ = press(t, model, "/", "w", "esc", "esc")
	if model.focus != focusList || model.view.Search != "" {
		t.Error("esc should clear, then leave search")
	}
}

func TestModelSingleAction(t *testing.T) {
	model, fleet := newTestModel(t, common.PermissionWrite)

	// web-1 is deallocated, restart is not available
	model, cmd := press(t, model, "r")
	if model.focus != focusList || cmd != nil {
		t.Fatal("restart should be refused for a deallocated VM")
	}

	model, _ = press(t, model, "s")
	if model.focus != focusConfirm {
		t.Fatal("start should ask for confirmation")
	}
	if !strings.Contains(model.View(), "Start web-1? [y/N]") {
		t.Errorf("confirmation prompt missing:\n%s", model.View())
	}

	model, cmd = press(t, model, "y")
	if cmd == nil {
		t.Fatal("confirm should return the action command")
	}
	state, _ := model.view.Confirmations.State("web-1")
	if state != dashboard.ConfirmInFlight {
		t.Errorf("state = %s, want in flight", state)
	}

	updated, _ := model.Update(cmd())
	model = updated.(Model)
	if state, _ := model.view.Confirmations.State("web-1"); state != dashboard.ConfirmIdle {
		t.Errorf("state = %s after completion, want idle", state)
	}
	if len(fleet.requests) != 1 || fleet.requests[0].Action != common.ActionStart {
		t.Errorf("requests = %+v", fleet.requests)
	}
	if model.store.Feed().Badge() != 1 {
		t.Errorf("Badge() = %d, want 1", model.store.Feed().Badge())
	}
}

func TestModelCancelAction(t *testing.T) {
	model, fleet := newTestModel(t, common.PermissionWrite)

	model, _ = press(t, model, "s", "n")
	if model.focus != focusList {
		t.Error("cancel should go back to the list")
	}
	if state, _ := model.view.Confirmations.State("web-1"); state != dashboard.ConfirmIdle {
		t.Errorf("state = %s, want idle", state)
	}
	if len(fleet.requests) != 0 {
		t.Error("nothing should be sent")
	}
}

func TestModelBulkAction(t *testing.T) {
	model, fleet := newTestModel(t, common.PermissionWrite)

	model, _ = press(t, model, "v", "space", "j", "space")
	if got := model.view.Selected(model.store.VMs()); len(got) != 2 {
		t.Fatalf("Selected() = %v", got)
	}

	model, _ = press(t, model, "s")
	if model.focus != focusConfirm {
		t.Fatal("bulk start should ask for confirmation")
	}
	model, cmd := press(t, model, "y")
	if model.focus != focusBulk {
		t.Fatal("bulk should block the UI")
	}

	// keys are ignored while the bulk runs
	model, _ = press(t, model, "q")
	if model.focus != focusBulk {
		t.Error("q should be ignored during bulk")
	}

	for cmd != nil {
		msg := cmd()
		var updated tea.Model
		updated, cmd = model.Update(msg)
		model = updated.(Model)
		if _, done := msg.(bulkDoneMsg); done {
			break
		}
	}

	if model.focus != focusList {
		t.Errorf("focus = %d after bulk, want list", model.focus)
	}
	if model.bulkProgress.Settled != 2 || model.bulkProgress.Total != 2 {
		t.Errorf("progress = %+v", model.bulkProgress)
	}
	if len(fleet.requests) != 2 {
		t.Errorf("got %d requests, want 2", len(fleet.requests))
	}
}

func TestModelBulkNeedsSelection(t *testing.T) {
	model, _ := newTestModel(t, common.PermissionAdmin)
	model, cmd := press(t, model, "v", "s")
	if model.focus != focusList || cmd != nil {
		t.Error("bulk without selection should be refused")
	}
	if model.status != "No VM selected" {
		t.Errorf("status = %q", model.status)
	}
}

func TestModelNotifications(t *testing.T) {
	model, _ := newTestModel(t, common.PermissionWrite)
	feed := model.store.Feed()
	feed.Append("web-1 Started")
	feed.Append("web-2 Started")

	model, _ = press(t, model, "N")
	if !strings.Contains(model.View(), "Notifications (2)") {
		t.Errorf("panel missing:\n%s", model.View())
	}

	model, _ = press(t, model, "x")
	if feed.Badge() != 1 || feed.List()[0].Message != "web-1 Started" {
		t.Errorf("dismiss should remove the newest one, got %+v", feed.List())
	}

	model, _ = press(t, model, "C", "N")
	if feed.Badge() != 0 || model.focus != focusList {
		t.Error("clear all, then close")
	}
}

func TestModelSortAndPages(t *testing.T) {
	model, _ := newTestModel(t, common.PermissionWrite)

	model, _ = press(t, model, "1")
	rows, _ := model.pageRows()
	if rows[0].Name != "db-1" {
		t.Errorf("first row = %s, want db-1", rows[0].Name)
	}
	if !strings.Contains(model.View(), "Name ▲") {
		t.Error("sort indicator missing")
	}

	model, _ = press(t, model, "+")
	if model.view.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", model.view.PageSize)
	}
}

func TestModelDarkMode(t *testing.T) {
	model, _ := newTestModel(t, common.PermissionWrite)
	prefs, err := client.LoadPrefs(filepath.Join(t.TempDir(), "prefs.toml"))
	if err != nil {
		t.Fatal(err)
	}
	model.prefs = prefs

	model, _ = press(t, model, "T")
	if model.theme != DarkTheme || !prefs.DarkMode {
		t.Error("T should switch to the dark theme and save it")
	}
	model, _ = press(t, model, "T")
	if model.theme != LightTheme || prefs.DarkMode {
		t.Error("T should switch back")
	}
}

func TestModelQuit(t *testing.T) {
	model, _ := newTestModel(t, common.PermissionWrite)
	_, cmd := press(t, model, "q")
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
