package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cloudvalet/valet/cmd/valet/client"
	"github.com/cloudvalet/valet/common"
)

// DefaultFetchError is surfaced when a failed refresh carries no message
const DefaultFetchError = "Failed to fetch VMs"

// ErrUnknownVM is returned for bulk legs targeting a VM missing from the fleet
var ErrUnknownVM = errors.New("unknown VM")

// FleetAPI is the remote control plane, as seen by the Store
type FleetAPI interface {
	ListVMs(ctx context.Context) ([]common.VirtualMachine, error)
	VMAction(ctx context.Context, req common.ActionRequest) (*common.VirtualMachine, error)
}

// Logger is what the Store needs to report its activity
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Tracef(format string, args ...interface{})
}

// ActionOutcome is the result of a single VM action. Skipped is true when
// the session lacks the Write capability (nothing was sent).
type ActionOutcome struct {
	Name    string
	Action  common.Action
	VM      *common.VirtualMachine
	Err     error
	Skipped bool
}

// BulkProgress is reported each time a bulk leg settles
type BulkProgress struct {
	Settled int
	Total   int
	Last    ActionOutcome
}

// Done is true when every leg has settled
func (bp BulkProgress) Done() bool {
	return bp.Settled >= bp.Total
}

// Store owns the fleet of a dashboard session and mediates every call
// to the control plane. Remote failures never escape the Store: they
// are turned into an error message and notifications.
type Store struct {
	api      FleetAPI
	identity common.Identity
	feed     *Feed
	log      Logger

	vms      map[string]common.VirtualMachine
	order    []string
	inFlight map[string]common.Action
	loading  int
	lastErr  string
	closed   bool
	mux      sync.Mutex
}

// NewStore creates the store of a session. Call Close when the session
// ends: late responses are then ignored.
func NewStore(api FleetAPI, identity common.Identity, feed *Feed, log Logger) *Store {
	if feed == nil {
		feed = NewFeed()
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Store{
		api:      api,
		identity: identity,
		feed:     feed,
		log:      log,
		vms:      make(map[string]common.VirtualMachine),
		inFlight: make(map[string]common.Action),
	}
}

// Identity of the session
func (s *Store) Identity() common.Identity {
	return s.identity
}

// Feed of the session
func (s *Store) Feed() *Feed {
	return s.feed
}

// Close tears the store down
func (s *Store) Close() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.closed = true
}

// Refresh replaces the fleet with the server's list. On failure the
// previous fleet is kept and the error is surfaced with Err().
func (s *Store) Refresh(ctx context.Context) error {
	s.mux.Lock()
	s.loading++
	s.mux.Unlock()

	defer func() {
		s.mux.Lock()
		s.loading--
		s.mux.Unlock()
	}()

	list, err := s.api.ListVMs(ctx)

	s.mux.Lock()
	defer s.mux.Unlock()

	if s.closed {
		return err
	}

	if err != nil {
		s.lastErr = client.ErrorMessage(err, DefaultFetchError)
		s.log.Errorf("refresh: %s", s.lastErr)
		return err
	}

	s.vms = make(map[string]common.VirtualMachine, len(list))
	s.order = make([]string, 0, len(list))
	for _, vm := range list {
		if _, exists := s.vms[vm.Name]; !exists {
			s.order = append(s.order, vm.Name)
		}
		s.vms[vm.Name] = vm
	}
	s.lastErr = ""
	s.log.Tracef("refresh: %d VM(s)", len(s.order))
	return nil
}

// PerformAction sends action for vm. Sessions without the Write
// capability get a silent no-op. The server remains the authority.
func (s *Store) PerformAction(ctx context.Context, vm common.VirtualMachine, action common.Action) ActionOutcome {
	outcome := ActionOutcome{Name: vm.Name, Action: action}

	if !s.identity.Permission.CanWrite() {
		outcome.Skipped = true
		return outcome
	}

	release := s.markInFlight(vm.Name, action)
	defer release()

	updated, err := s.api.VMAction(ctx, common.ActionRequest{
		Name:          vm.Name,
		ResourceGroup: vm.ResourceGroup,
		Action:        action,
	})
	outcome.VM = updated
	outcome.Err = err

	s.mux.Lock()
	defer s.mux.Unlock()

	if s.closed {
		return outcome
	}

	if err != nil {
		s.feed.Append(fmt.Sprintf("%s %s failed", vm.Name, action.PastTense()))
		s.lastErr = fmt.Sprintf("Failed to %s %s: %s", action.Label(), vm.Name, client.ErrorMessage(err, "request failed"))
		s.log.Errorf("%s", s.lastErr)
		return outcome
	}

	if _, exists := s.vms[updated.Name]; !exists {
		s.order = append(s.order, updated.Name)
	}
	s.vms[updated.Name] = *updated
	s.feed.Append(fmt.Sprintf("%s %s", vm.Name, action.PastTense()))
	s.log.Infof("%s %s (%s)", vm.Name, action.PastTense(), updated.Status)
	return outcome
}

// UniqueNames returns names without duplicates, first occurrence order
func UniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	res := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		res = append(res, name)
	}
	return res
}

// PerformBulkAction runs one PerformAction per VM, all at once. Legs
// settle in any order, each one reported to progress (which may be nil).
// A name given twice gets a single leg. It returns when every leg has
// settled, outcomes in the order of UniqueNames(names).
func (s *Store) PerformBulkAction(ctx context.Context, names []string, action common.Action, progress func(BulkProgress)) []ActionOutcome {
	names = UniqueNames(names)
	outcomes := make([]ActionOutcome, len(names))

	if !s.identity.Permission.CanWrite() {
		for i, name := range names {
			outcomes[i] = ActionOutcome{Name: name, Action: action, Skipped: true}
		}
		return outcomes
	}

	total := len(names)
	settled := 0
	var progressMux sync.Mutex
	var wg sync.WaitGroup

	settle := func(i int, outcome ActionOutcome) {
		outcomes[i] = outcome
		progressMux.Lock()
		defer progressMux.Unlock()
		settled++
		if progress != nil {
			progress(BulkProgress{Settled: settled, Total: total, Last: outcome})
		}
	}

	for i, name := range names {
		vm, exists := s.Get(name)
		if !exists {
			s.mux.Lock()
			if !s.closed {
				s.feed.Append(fmt.Sprintf("%s %s failed", name, action.PastTense()))
			}
			s.mux.Unlock()
			settle(i, ActionOutcome{Name: name, Action: action, Err: ErrUnknownVM})
			continue
		}

		wg.Add(1)
		go func(i int, vm common.VirtualMachine) {
			defer wg.Done()
			settle(i, s.PerformAction(ctx, vm, action))
		}(i, vm)
	}
	wg.Wait()

	return outcomes
}

// markInFlight sets the loading marker of a VM and returns its release
func (s *Store) markInFlight(name string, action common.Action) func() {
	s.mux.Lock()
	s.inFlight[name] = action
	s.mux.Unlock()

	return func() {
		s.mux.Lock()
		defer s.mux.Unlock()
		delete(s.inFlight, name)
	}
}

// VMs returns a snapshot of the fleet, in server order
func (s *Store) VMs() []common.VirtualMachine {
	s.mux.Lock()
	defer s.mux.Unlock()

	res := make([]common.VirtualMachine, 0, len(s.order))
	for _, name := range s.order {
		res = append(res, s.vms[name])
	}
	return res
}

// Get returns a VM by name
func (s *Store) Get(name string) (common.VirtualMachine, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	vm, exists := s.vms[name]
	return vm, exists
}

// InFlight returns the action running for a VM, if any
func (s *Store) InFlight(name string) (common.Action, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	action, exists := s.inFlight[name]
	return action, exists
}

// Loading is true while a refresh runs
func (s *Store) Loading() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.loading > 0
}

// Err returns the last surfaced error message, if any
func (s *Store) Err() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.lastErr
}

// ClearErr dismisses the error banner
func (s *Store) ClearErr() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.lastErr = ""
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Tracef(string, ...interface{}) {}
