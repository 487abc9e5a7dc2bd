package server

import (
	"sync"

	"github.com/cloudvalet/valet/common"
)

// ProviderStore keeps the Azure credentials of the sandbox
type ProviderStore struct {
	creds common.AzureCredentials
	mux   sync.Mutex
}

// Get returns the current credentials
func (ps *ProviderStore) Get() common.AzureCredentials {
	ps.mux.Lock()
	defer ps.mux.Unlock()
	return ps.creds
}

// Set replaces credentials
func (ps *ProviderStore) Set(creds common.AzureCredentials) {
	ps.mux.Lock()
	defer ps.mux.Unlock()
	ps.creds = creds
}
