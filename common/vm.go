package common

import (
	"strings"

	"golang.org/x/text/cases"
)

// VMState is the normalized form of a free-form VM status string
type VMState string

// Normalized VM states
const (
	VMStateRunning     VMState = "running"
	VMStateDeallocated VMState = "deallocated"
	VMStateStopped     VMState = "stopped"
	VMStateUnknown     VMState = "unknown"
)

// APIVMListEntries is a list of VMs, as returned by the fleet listing
type APIVMListEntries []VirtualMachine

// APIVMListEnvelope is the alternative listing shape ({"vms": [...]})
type APIVMListEnvelope struct {
	VMs APIVMListEntries `json:"vms"`
}

// VirtualMachine describes a VM known by the control plane. The name
// is the only identity field.
type VirtualMachine struct {
	Name          string `json:"name"`
	ResourceGroup string `json:"resourceGroup"`
	Location      string `json:"location"`
	Status        string `json:"status"`
	ID            string `json:"id,omitempty"`
}

// NormalizeStatus maps a status string like "VM running" or "Stopped"
// to a VMState. Anything unrecognized is VMStateUnknown.
func NormalizeStatus(status string) VMState {
	s := strings.TrimSpace(cases.Fold().String(status))
	s = strings.TrimSpace(strings.TrimPrefix(s, "vm "))

	switch {
	case strings.Contains(s, string(VMStateDeallocated)):
		return VMStateDeallocated
	case strings.Contains(s, string(VMStateRunning)):
		return VMStateRunning
	case strings.Contains(s, string(VMStateStopped)):
		return VMStateStopped
	}
	return VMStateUnknown
}

// State returns the normalized state of the VM
func (vm *VirtualMachine) State() VMState {
	return NormalizeStatus(vm.Status)
}

// Eligibility tells which actions are disabled for a VM, from its status
type Eligibility struct {
	DisableStart      bool
	DisableDeallocate bool
	DisablePoweroff   bool
	DisableRestart    bool
}

// EligibilityFor derives action eligibility from a normalized state.
// An unknown state enables everything.
func EligibilityFor(state VMState) Eligibility {
	return Eligibility{
		DisableStart:      state == VMStateRunning,
		DisableDeallocate: state == VMStateDeallocated,
		DisablePoweroff:   state == VMStateDeallocated || state == VMStateStopped,
		DisableRestart:    state == VMStateDeallocated || state == VMStateStopped,
	}
}

// Eligibility is a shortcut for EligibilityFor(vm.State())
func (vm *VirtualMachine) Eligibility() Eligibility {
	return EligibilityFor(vm.State())
}

// Allows returns true if the action is not disabled
func (e Eligibility) Allows(action Action) bool {
	switch action {
	case ActionStart:
		return !e.DisableStart
	case ActionDeallocate:
		return !e.DisableDeallocate
	case ActionPoweroff:
		return !e.DisablePoweroff
	case ActionRestart:
		return !e.DisableRestart
	}
	return false
}
