package controllers

import (
	"net/http"

	"github.com/cloudvalet/valet/cmd/valet-sandbox/server"
)

// SandboxController exposes sandbox internals:
// /_sandbox/log (recent log lines, drained on read) and
// /_sandbox/rate (rate controller state)
func SandboxController(req *server.Request) {
	req.Response.Header().Set("Content-Type", "text/plain")

	switch req.SubPath {
	case "log":
		req.Response.Write(req.App.LogBuffer.Drain())
	case "rate":
		req.App.Rate.Dump(req.Response)
	default:
		req.Detail(http.StatusNotFound, "Not Found")
	}
}
