package dashboard

import (
	"errors"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/cloudvalet/valet/common"
	"github.com/ryanuber/go-glob"
)

// ErrEmptySearch is returned for a blank search expression
var ErrEmptySearch = errors.New("empty search expression")

func searchVMsFunctions(vm **common.VirtualMachine) map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{

		// strlen(string) int
		"strlen": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, errors.New("strlen() need 1 argument")
			}
			str, castOK := args[0].(string)
			if !castOK {
				return nil, errors.New("strlen() argument must be a string")
			}
			return (float64)(len(str)), nil
		},

		// like(string) bool
		// wildcard match on the VM's name
		"like": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, errors.New("like() need 1 argument")
			}
			pattern, castOK := args[0].(string)
			if !castOK {
				return nil, errors.New("like() argument 1 must be a string")
			}
			return glob.Glob(pattern, (*vm).Name), nil
		},

		// in_group(string) bool
		// wildcard match on the resource group, case-insensitive
		"in_group": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, errors.New("in_group() need 1 argument")
			}
			pattern, castOK := args[0].(string)
			if !castOK {
				return nil, errors.New("in_group() argument 1 must be a string")
			}
			return glob.Glob(strings.ToLower(pattern), strings.ToLower((*vm).ResourceGroup)), nil
		},
	}
}

// VMSearch is a compiled search expression, like:
// state == 'running' && like('web-*')
type VMSearch struct {
	expr    *govaluate.EvaluableExpression
	current *common.VirtualMachine
}

// ParseVMSearch compiles a search expression
func ParseVMSearch(q string) (*VMSearch, error) {
	if strings.TrimSpace(q) == "" {
		return nil, ErrEmptySearch
	}

	search := &VMSearch{}
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(q, searchVMsFunctions(&search.current))
	if err != nil {
		return nil, err
	}
	search.expr = expr
	return search, nil
}

// Match evaluates the expression for vm. The expression must be boolean.
// Not safe for concurrent use.
func (s *VMSearch) Match(vm common.VirtualMachine) (bool, error) {
	elig := vm.Eligibility()

	params := make(map[string]interface{})
	params["name"] = vm.Name
	params["resource_group"] = vm.ResourceGroup
	params["location"] = vm.Location
	params["status"] = vm.Status
	params["state"] = string(vm.State())
	params["can_start"] = !elig.DisableStart
	params["can_deallocate"] = !elig.DisableDeallocate
	params["can_poweroff"] = !elig.DisablePoweroff
	params["can_restart"] = !elig.DisableRestart

	s.current = &vm
	res, err := s.expr.Evaluate(params)
	s.current = nil
	if err != nil {
		return false, err
	}

	match, castOK := res.(bool)
	if !castOK {
		return false, errors.New("require a boolean expression")
	}
	return match, nil
}

// Filter returns VMs matching the expression, in order
func (s *VMSearch) Filter(vms []common.VirtualMachine) ([]common.VirtualMachine, error) {
	res := []common.VirtualMachine{}
	for _, vm := range vms {
		match, err := s.Match(vm)
		if err != nil {
			return nil, err
		}
		if match {
			res = append(res, vm)
		}
	}
	return res, nil
}
