package common

import (
	"encoding/json"
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]VMState{
		"VM running":         VMStateRunning,
		"Running":            VMStateRunning,
		"VM deallocated":     VMStateDeallocated,
		"  vm STOPPED ":      VMStateStopped,
		"PowerState/stopped": VMStateStopped,
		"VM deallocating":    VMStateUnknown,
		"Updating":           VMStateUnknown,
		"":                   VMStateUnknown,
	}
	for status, want := range tests {
		if got := NormalizeStatus(status); got != want {
			t.Errorf("NormalizeStatus(%q) = %s, want %s", status, got, want)
		}
	}
}

func TestEligibilityUnknownAllowsAll(t *testing.T) {
	elig := EligibilityFor(VMStateUnknown)
	for _, action := range AllActions {
		if !elig.Allows(action) {
			t.Errorf("%s should be allowed", action)
		}
	}
	if elig.Allows("reboot") {
		t.Error("unknown actions are never allowed")
	}
}

func TestParseAction(t *testing.T) {
	for _, action := range AllActions {
		got, err := ParseAction(string(action))
		if err != nil || got != action {
			t.Errorf("ParseAction(%s) = %s, %v", action, got, err)
		}
	}
	if _, err := ParseAction("Start"); err == nil {
		t.Error("actions are case-sensitive on the wire")
	}

	if ActionPoweroff.PastTense() != "Powered Off" || ActionStart.PastTense() != "Started" {
		t.Error("PastTense")
	}
}

func TestParsePermission(t *testing.T) {
	if p, err := ParsePermission(" write "); err != nil || p != PermissionWrite {
		t.Errorf("ParsePermission = %s, %v", p, err)
	}
	if _, err := ParsePermission("Root"); err == nil {
		t.Error("Root is not a permission")
	}
	if Permission("").OrRead() != PermissionRead || Permission("bogus").CanWrite() {
		t.Error("empty or invalid permissions are Read")
	}
	if !PermissionAdmin.CanWrite() || PermissionWrite.IsAdmin() {
		t.Error("capabilities")
	}
}

func TestAPIErrorDetail(t *testing.T) {
	tests := map[string]string{
		`{"detail": "User not found"}`:                          "User not found",
		`{"detail": [{"msg": "field required"}, {"msg": "x"}]}`: "field required; x",
		`{"detail": 42}`: "",
		`{}`:             "",
	}
	for body, want := range tests {
		var detail APIErrorDetail
		if err := json.Unmarshal([]byte(body), &detail); err != nil {
			t.Fatal(err)
		}
		if got := detail.Message(); got != want {
			t.Errorf("%s: Message() = %q, want %q", body, got, want)
		}
	}
}
