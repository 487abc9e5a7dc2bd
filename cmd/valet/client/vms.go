package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cloudvalet/valet/common"
)

// DecodeVMList accepts both listing shapes of the API: a bare list,
// or an envelope {"vms": [...]}. The dual shape stops here.
func DecodeVMList(data []byte) (common.APIVMListEntries, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty VM list response")
	}

	if data[0] == '[' {
		var list common.APIVMListEntries
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var envelope common.APIVMListEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	if envelope.VMs == nil {
		return common.APIVMListEntries{}, nil
	}
	return envelope.VMs, nil
}

// ListVMs fetches the fleet
func (api *API) ListVMs(ctx context.Context) ([]common.VirtualMachine, error) {
	var list common.APIVMListEntries
	call := api.NewCall("GET", "/azure/vms", map[string]string{})
	call.JSONCallback = func(reader io.Reader, _ http.Header) error {
		data, err := io.ReadAll(reader)
		if err != nil {
			return err
		}
		list, err = DecodeVMList(data)
		return err
	}
	if err := call.Do(ctx); err != nil {
		return nil, err
	}
	return list, nil
}

// VMAction sends a power action and returns the updated VM
func (api *API) VMAction(ctx context.Context, req common.ActionRequest) (*common.VirtualMachine, error) {
	var vm common.VirtualMachine
	call := api.NewCall("POST", "/azure/vm/action", nil)
	call.JSONBody = req
	call.JSONCallback = DecodeJSON(&vm)
	if err := call.Do(ctx); err != nil {
		return nil, err
	}
	if vm.Name == "" {
		// some backends only answer {"ok": true}
		return nil, fmt.Errorf("no VM in action response for '%s'", req.Name)
	}
	return &vm, nil
}
