package client

import (
	"context"

	"github.com/cloudvalet/valet/common"
)

// GetAzureCredentials reads provider credentials
func (api *API) GetAzureCredentials(ctx context.Context) (*common.AzureCredentials, error) {
	var creds common.AzureCredentials
	call := api.NewCall("GET", "/provider/azure", map[string]string{})
	call.JSONCallback = DecodeJSON(&creds)
	if err := call.Do(ctx); err != nil {
		return nil, err
	}
	return &creds, nil
}

// AzureCredentialsOrEmpty is used to populate the edition form: any
// failure gives an empty form
func (api *API) AzureCredentialsOrEmpty(ctx context.Context) common.AzureCredentials {
	creds, err := api.GetAzureCredentials(ctx)
	if err != nil {
		if api.Log != nil {
			api.Log.Tracef("provider credentials unavailable: %s", err)
		}
		return common.AzureCredentials{}
	}
	return *creds
}

// SetAzureCredentials writes provider credentials (multipart form)
func (api *API) SetAzureCredentials(ctx context.Context, creds common.AzureCredentials) error {
	call := api.NewCall("POST", "/provider/azure", map[string]string{
		"client_id":     creds.ClientID,
		"tenant_id":     creds.TenantID,
		"client_secret": creds.ClientSecret,
	})
	call.Multipart = true
	return call.Do(ctx)
}
