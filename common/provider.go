package common

// AzureCredentials are the service principal used by the backend to
// reach Azure
type AzureCredentials struct {
	ClientID     string `json:"clientId"`
	TenantID     string `json:"tenantId"`
	ClientSecret string `json:"clientSecret"`
}
