package controllers

import (
	"net/http"

	"github.com/cloudvalet/valet/cmd/valet-sandbox/server"
	"github.com/cloudvalet/valet/common"
)

// ProviderController reads (GET) or writes (POST, multipart) the Azure
// credentials
func ProviderController(req *server.Request) {
	if req.HTTP.Method == http.MethodGet {
		req.JSON(http.StatusOK, req.App.Provider.Get())
		return
	}

	values := req.RequireForm("client_id", "tenant_id", "client_secret")
	if values == nil {
		return
	}

	req.App.Provider.Set(common.AzureCredentials{
		ClientID:     values["client_id"],
		TenantID:     values["tenant_id"],
		ClientSecret: values["client_secret"],
	})
	req.App.Log.Infof("Azure credentials changed by '%s'", req.User.Username)
	req.JSON(http.StatusOK, map[string]bool{"ok": true})
}
