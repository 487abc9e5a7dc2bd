package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cloudvalet/valet/cmd/valet-sandbox/server"
	"github.com/cloudvalet/valet/common"
)

// BulkActionRequest is the body of /azure/vms/bulk_action
type BulkActionRequest struct {
	VMs []struct {
		Name          string `json:"name"`
		ResourceGroup string `json:"resourceGroup"`
	} `json:"vms"`
	Action common.Action `json:"action"`
}

// BulkActionResult is the outcome of one VM of a bulk action
type BulkActionResult struct {
	Name   string                 `json:"name"`
	OK     bool                   `json:"ok"`
	VM     *common.VirtualMachine `json:"vm,omitempty"`
	Detail string                 `json:"detail,omitempty"`
}

// ListVMsController returns the fleet, bare or in an envelope
func ListVMsController(req *server.Request) {
	vms := req.App.Fleet.List()
	if req.App.Config.Envelope {
		req.JSON(http.StatusOK, common.APIVMListEnvelope{VMs: vms})
		return
	}
	req.JSON(http.StatusOK, vms)
}

func actionStatus(err error) int {
	switch {
	case errors.Is(err, server.ErrVMNotFound), errors.Is(err, server.ErrVMResourceMismatch):
		return http.StatusNotFound
	case errors.Is(err, server.ErrActionNotAllowed):
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// VMActionController applies a power action to a single VM
func VMActionController(req *server.Request) {
	var action common.ActionRequest
	dec := json.NewDecoder(req.HTTP.Body)
	if err := dec.Decode(&action); err != nil {
		req.ValidationError("invalid JSON body: " + err.Error())
		return
	}
	if action.Name == "" {
		req.ValidationError("field required: name")
		return
	}

	vm, err := req.App.Fleet.Action(action)
	if err != nil {
		req.Detail(actionStatus(err), err.Error())
		return
	}

	req.App.Log.Successf("%s: %s by '%s' (%s)", vm.Name, action.Action, req.User.Username, vm.Status)
	req.JSON(http.StatusOK, vm)
}

// BulkActionController applies the same action to many VMs, each
// result being reported
func BulkActionController(req *server.Request) {
	var bulk BulkActionRequest
	dec := json.NewDecoder(req.HTTP.Body)
	if err := dec.Decode(&bulk); err != nil {
		req.ValidationError("invalid JSON body: " + err.Error())
		return
	}
	if _, err := common.ParseAction(string(bulk.Action)); err != nil {
		req.ValidationError(err.Error())
		return
	}

	results := make([]BulkActionResult, 0, len(bulk.VMs))
	for _, target := range bulk.VMs {
		vm, err := req.App.Fleet.Action(common.ActionRequest{
			Name:          target.Name,
			ResourceGroup: target.ResourceGroup,
			Action:        bulk.Action,
		})
		if err != nil {
			results = append(results, BulkActionResult{Name: target.Name, Detail: err.Error()})
			continue
		}
		results = append(results, BulkActionResult{Name: target.Name, OK: true, VM: &vm})
	}

	req.App.Log.Infof("bulk %s by '%s': %d VM(s)", bulk.Action, req.User.Username, len(results))
	req.JSON(http.StatusOK, map[string]interface{}{"results": results})
}
