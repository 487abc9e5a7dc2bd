package common

import "fmt"

// Action is a power action on a VM
type Action string

// VM actions supported by the control endpoint
const (
	ActionStart      Action = "start"
	ActionDeallocate Action = "deallocate"
	ActionPoweroff   Action = "poweroff"
	ActionRestart    Action = "restart"
)

// AllActions lists actions in display order
var AllActions = []Action{ActionStart, ActionDeallocate, ActionPoweroff, ActionRestart}

// ActionRequest is the body of a VM action call
type ActionRequest struct {
	Name          string `json:"name"`
	ResourceGroup string `json:"resourceGroup"`
	Action        Action `json:"action"`
}

// ParseAction validates an action name
func ParseAction(s string) (Action, error) {
	for _, a := range AllActions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action '%s' (start, deallocate, poweroff, restart)", s)
}

// PastTense is used for notifications ("vm-1 Powered Off")
func (a Action) PastTense() string {
	switch a {
	case ActionStart:
		return "Started"
	case ActionDeallocate:
		return "Deallocated"
	case ActionPoweroff:
		return "Powered Off"
	case ActionRestart:
		return "Restarted"
	}
	return string(a)
}

// Label is the human name of the action
func (a Action) Label() string {
	switch a {
	case ActionStart:
		return "Start"
	case ActionDeallocate:
		return "Deallocate"
	case ActionPoweroff:
		return "Power Off"
	case ActionRestart:
		return "Restart"
	}
	return string(a)
}
