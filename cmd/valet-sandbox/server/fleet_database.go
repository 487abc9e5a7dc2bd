package server

import (
	"errors"
	"sync"

	"github.com/cloudvalet/valet/common"
	"github.com/gofrs/uuid"
)

// Fleet errors
var (
	ErrVMNotFound         = errors.New("VM not found")
	ErrActionNotAllowed   = errors.New("action not allowed in the current VM state")
	ErrVMResourceMismatch = errors.New("VM not found in this resource group")
)

// actionResults is the status of a VM after an action
var actionResults = map[common.Action]string{
	common.ActionStart:      "VM running",
	common.ActionDeallocate: "VM deallocated",
	common.ActionPoweroff:   "VM stopped",
	common.ActionRestart:    "VM running",
}

// FleetDatabase is the in-memory fleet of the sandbox
type FleetDatabase struct {
	vms []*common.VirtualMachine
	mux sync.Mutex
}

// NewFleetDatabase creates a fleet from seeds, giving each VM an ID
func NewFleetDatabase(seeds []common.VirtualMachine) (*FleetDatabase, error) {
	db := &FleetDatabase{}
	for _, seed := range seeds {
		if err := db.Add(seed); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Add inserts a VM, with a fresh ID
func (db *FleetDatabase) Add(vm common.VirtualMachine) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	vm.ID = id.String()

	db.mux.Lock()
	defer db.mux.Unlock()
	db.vms = append(db.vms, &vm)
	return nil
}

// List returns a copy of the fleet
func (db *FleetDatabase) List() common.APIVMListEntries {
	db.mux.Lock()
	defer db.mux.Unlock()

	res := make(common.APIVMListEntries, 0, len(db.vms))
	for _, vm := range db.vms {
		res = append(res, *vm)
	}
	return res
}

// Action applies an action to a VM, returning its new state. The
// resource group is checked when given.
func (db *FleetDatabase) Action(req common.ActionRequest) (common.VirtualMachine, error) {
	action, err := common.ParseAction(string(req.Action))
	if err != nil {
		return common.VirtualMachine{}, err
	}

	db.mux.Lock()
	defer db.mux.Unlock()

	for _, vm := range db.vms {
		if vm.Name != req.Name {
			continue
		}
		if req.ResourceGroup != "" && req.ResourceGroup != vm.ResourceGroup {
			return common.VirtualMachine{}, ErrVMResourceMismatch
		}
		if !vm.Eligibility().Allows(action) {
			return *vm, ErrActionNotAllowed
		}
		vm.Status = actionResults[action]
		return *vm, nil
	}
	return common.VirtualMachine{}, ErrVMNotFound
}
