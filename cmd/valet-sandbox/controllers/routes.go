package controllers

import (
	"github.com/cloudvalet/valet/cmd/valet-sandbox/server"
	"github.com/cloudvalet/valet/common"
)

// AddRoutes defines all API routes of the sandbox
func AddRoutes(app *server.App) {
	app.AddRoute(&server.Route{
		Methods: []string{"GET"},
		Path:    "/",
		Public:  true,
		Handler: RootController,
	})

	app.AddRoute(&server.Route{
		Methods: []string{"GET", "POST"},
		Path:    "/login",
		Public:  true,
		Handler: LoginController,
	})

	app.AddRoute(&server.Route{
		Methods: []string{"GET"},
		Path:    "/logout",
		Public:  true,
		Handler: LogoutController,
	})

	app.AddRoute(&server.Route{
		Methods: []string{"GET"},
		Path:    "/dashboard",
		Public:  true,
		Handler: DashboardController,
	})

	app.AddRoute(&server.Route{
		Methods: []string{"GET"},
		Path:    "/users/me",
		Handler: MeController,
	})

	app.AddRoute(&server.Route{
		Methods:    []string{"GET", "POST", "PUT", "DELETE"},
		Path:       "/users/*",
		Permission: common.PermissionAdmin,
		Handler:    UsersController,
	})

	app.AddRoute(&server.Route{
		Methods: []string{"GET"},
		Path:    "/azure/vms",
		Handler: ListVMsController,
	})

	app.AddRoute(&server.Route{
		Methods:    []string{"POST"},
		Path:       "/azure/vm/action",
		Permission: common.PermissionWrite,
		Handler:    VMActionController,
	})

	app.AddRoute(&server.Route{
		Methods:    []string{"POST"},
		Path:       "/azure/vms/bulk_action",
		Permission: common.PermissionWrite,
		Handler:    BulkActionController,
	})

	app.AddRoute(&server.Route{
		Methods:    []string{"GET", "POST"},
		Path:       "/provider/azure",
		Permission: common.PermissionAdmin,
		Handler:    ProviderController,
	})

	app.AddRoute(&server.Route{
		Methods:    []string{"GET"},
		Path:       "/_sandbox/*",
		Permission: common.PermissionAdmin,
		Handler:    SandboxController,
	})
}
