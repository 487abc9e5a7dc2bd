package controllers

import (
	"net/http"

	"github.com/cloudvalet/valet/cmd/valet-sandbox/server"
)

// RootController is the health check of the API
func RootController(req *server.Request) {
	// "/" catches every unknown path
	if req.SubPath != "" {
		req.Detail(http.StatusNotFound, "Not Found")
		return
	}
	req.JSON(http.StatusOK, map[string]string{
		"message": "Cloud Valet API is running!",
		"version": server.Version,
	})
}
