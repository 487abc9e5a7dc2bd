package server

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRateControllerConcurrency(t *testing.T) {
	rc := NewRateController(RateControllerConfig{
		ConcurrentMaxRequests:     1,
		ConcurrentOverflowTimeout: 10 * time.Millisecond,
	})
	ctx := context.Background()

	finish, _, ok := rc.Admit(ctx, "10.0.0.1")
	if !ok {
		t.Fatal("first request should be admitted")
	}

	if _, reason, ok := rc.Admit(ctx, "10.0.0.1"); ok || !strings.Contains(reason, "concurrent") {
		t.Errorf("second request should time out, got ok=%t (%s)", ok, reason)
	}

	// other IPs have their own slots
	if _, _, ok := rc.Admit(ctx, "10.0.0.2"); !ok {
		t.Error("another IP should be admitted")
	}

	finish()
	if _, _, ok := rc.Admit(ctx, "10.0.0.1"); !ok {
		t.Error("slot should be free again")
	}
}

func TestRateControllerCancelled(t *testing.T) {
	rc := NewRateController(RateControllerConfig{
		ConcurrentMaxRequests:     1,
		ConcurrentOverflowTimeout: time.Minute,
	})
	rc.Admit(context.Background(), "10.0.0.1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, reason, ok := rc.Admit(ctx, "10.0.0.1"); ok || reason != "request cancelled" {
		t.Errorf("ok=%t reason=%q", ok, reason)
	}
}

func TestRateControllerRate(t *testing.T) {
	rc := NewRateController(RateControllerConfig{
		ConcurrentMaxRequests:     2,
		ConcurrentOverflowTimeout: time.Second,
		RateEnable:                true,
		RateBurst:                 2,
		RateRequestsPerSecond:     0.1,
		RateMaxDelay:              10 * time.Millisecond,
		VipList:                   map[string]bool{"127.0.0.1": true},
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		finish, _, ok := rc.Admit(ctx, "10.0.0.1")
		if !ok {
			t.Fatalf("request %d is in the burst", i)
		}
		finish()
	}
	if _, reason, ok := rc.Admit(ctx, "10.0.0.1"); ok || !strings.Contains(reason, "rate limit") {
		t.Errorf("third request should exceed the max delay (%s)", reason)
	}

	// a refused request gives its slot back
	for i := 0; i < 2; i++ {
		if _, reason, _ := rc.Admit(ctx, "10.0.0.1"); strings.Contains(reason, "concurrent") {
			t.Fatal("slots leaked by rate limited requests")
		}
	}

	for i := 0; i < 5; i++ {
		if _, _, ok := rc.Admit(ctx, "127.0.0.1"); !ok {
			t.Fatal("VIPs are never limited")
		}
	}

	var dump strings.Builder
	rc.Dump(&dump)
	got := dump.String()
	for _, want := range []string{"clients: 1, VIP requests: 5", "10.0.0.1: admitted 2, rejected 3", "running 0/2"} {
		if !strings.Contains(got, want) {
			t.Errorf("Dump() should contain %q:\n%s", want, got)
		}
	}

	rc.Clean(0)
	dump.Reset()
	rc.Dump(&dump)
	if !strings.Contains(dump.String(), "clients: 0") {
		t.Errorf("Clean() should remove idle clients: %q", dump.String())
	}
}
