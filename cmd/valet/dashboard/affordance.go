package dashboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cloudvalet/valet/common"
)

// Affordance is the state of an action button on a VM row
type Affordance struct {
	Action  common.Action
	Visible bool
	Enabled bool
	Loading bool
}

// Affordances returns the action buttons of a VM row. Read sessions see
// none. While an action is in flight for the VM, every button is
// disabled and the running one shows a spinner.
func Affordances(perm common.Permission, vm common.VirtualMachine, inFlight common.Action) []Affordance {
	res := make([]Affordance, 0, len(common.AllActions))
	if !perm.CanWrite() {
		for _, action := range common.AllActions {
			res = append(res, Affordance{Action: action})
		}
		return res
	}

	elig := vm.Eligibility()
	for _, action := range common.AllActions {
		res = append(res, Affordance{
			Action:  action,
			Visible: true,
			Enabled: inFlight == "" && elig.Allows(action),
			Loading: inFlight == action,
		})
	}
	return res
}

// ConfirmState is the state of the action confirmation of a VM
type ConfirmState int

// idle -> confirming -> in flight -> idle
const (
	ConfirmIdle ConfirmState = iota
	ConfirmPending
	ConfirmInFlight
)

func (cs ConfirmState) String() string {
	switch cs {
	case ConfirmPending:
		return "confirming"
	case ConfirmInFlight:
		return "in flight"
	}
	return "idle"
}

// Confirmation errors
var (
	ErrConfirmBusy    = errors.New("an action is already pending for this VM")
	ErrConfirmMissing = errors.New("no action to confirm")
)

type pendingAction struct {
	action common.Action
	state  ConfirmState
}

// Confirmations tracks the confirmation dialogs, at most one pending or
// running action per VM
type Confirmations struct {
	pending map[string]pendingAction
	mux     sync.Mutex
}

// NewConfirmations returns an empty tracker
func NewConfirmations() *Confirmations {
	return &Confirmations{pending: make(map[string]pendingAction)}
}

// Request opens the confirmation of action for name
func (c *Confirmations) Request(name string, action common.Action) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if p, exists := c.pending[name]; exists {
		return fmt.Errorf("%w (%s, %s)", ErrConfirmBusy, p.action, p.state)
	}
	c.pending[name] = pendingAction{action: action, state: ConfirmPending}
	return nil
}

// Cancel closes a pending confirmation, nothing is sent
func (c *Confirmations) Cancel(name string) {
	c.mux.Lock()
	defer c.mux.Unlock()

	if p, exists := c.pending[name]; exists && p.state == ConfirmPending {
		delete(c.pending, name)
	}
}

// Confirm moves a pending confirmation in flight and returns its action
func (c *Confirmations) Confirm(name string) (common.Action, error) {
	c.mux.Lock()
	defer c.mux.Unlock()

	p, exists := c.pending[name]
	if !exists || p.state != ConfirmPending {
		return "", ErrConfirmMissing
	}
	p.state = ConfirmInFlight
	c.pending[name] = p
	return p.action, nil
}

// Settle is called when the confirmed action completed, back to idle
func (c *Confirmations) Settle(name string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	delete(c.pending, name)
}

// State returns the confirmation state of name and its action
func (c *Confirmations) State(name string) (ConfirmState, common.Action) {
	c.mux.Lock()
	defer c.mux.Unlock()

	p, exists := c.pending[name]
	if !exists {
		return ConfirmIdle, ""
	}
	return p.state, p.action
}

// SplitEligible separates the names whose VM refuses action in its
// current state. Names missing from the fleet stay eligible, the Store
// reports them as ErrUnknownVM.
func SplitEligible(vms []common.VirtualMachine, names []string, action common.Action) (eligible []string, refused []common.VirtualMachine) {
	byName := make(map[string]common.VirtualMachine, len(vms))
	for _, vm := range vms {
		byName[vm.Name] = vm
	}
	for _, name := range names {
		vm, exists := byName[name]
		if exists && !vm.Eligibility().Allows(action) {
			refused = append(refused, vm)
			continue
		}
		eligible = append(eligible, name)
	}
	return eligible, refused
}
