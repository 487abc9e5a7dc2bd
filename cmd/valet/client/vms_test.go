package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudvalet/valet/common"
)

func TestDecodeVMList(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		count int
		fails bool
	}{
		{"bare list", `[{"name": "vm-1", "resourceGroup": "rg", "location": "eastus", "status": "VM running"}]`, 1, false},
		{"envelope", `{"vms": [{"name": "vm-1"}, {"name": "vm-2"}]}`, 2, false},
		{"empty envelope", `{}`, 0, false},
		{"empty list", ` [] `, 0, false},
		{"empty body", ``, 0, true},
		{"garbage", `{"vms": 12}`, 0, true},
	}

	for _, test := range tests {
		list, err := DecodeVMList([]byte(test.body))
		if test.fails {
			if err == nil {
				t.Errorf("%s: should fail", test.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if len(list) != test.count {
			t.Errorf("%s: got %d VMs, want %d", test.name, len(list), test.count)
		}
	}
}

func TestVMAction(t *testing.T) {
	var got common.ActionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/azure/vm/action" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "json expected", http.StatusUnsupportedMediaType)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(common.VirtualMachine{
			Name:          got.Name,
			ResourceGroup: got.ResourceGroup,
			Status:        "VM deallocated",
		})
	}))
	defer server.Close()

	api := NewAPI(server.URL, nil, false, nil)
	vm, err := api.VMAction(context.Background(), common.ActionRequest{
		Name:          "vm-1",
		ResourceGroup: "rg-a",
		Action:        common.ActionDeallocate,
	})
	if err != nil {
		t.Fatalf("VMAction() error: %v", err)
	}
	if got.Action != common.ActionDeallocate || got.ResourceGroup != "rg-a" {
		t.Errorf("request = %+v", got)
	}
	if vm.State() != common.VMStateDeallocated {
		t.Errorf("state = %s, want deallocated", vm.State())
	}
}

func TestListVMsWrongContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>login</html>"))
	}))
	defer server.Close()

	if _, err := NewAPI(server.URL, nil, false, nil).ListVMs(context.Background()); err == nil {
		t.Error("ListVMs() should refuse a HTML page")
	}
}
