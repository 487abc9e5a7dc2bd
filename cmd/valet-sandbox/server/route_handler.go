package server

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/cloudvalet/valet/common"
)

// SessionCookie holds the username of the session, like the original
// Cloud Valet backend (the sandbox does not sign it)
const SessionCookie = "user"

// Route describes a route to a handler
type Route struct {
	Methods []string
	Path    string
	// no session needed
	Public bool
	// minimum permission (Read if empty), ignored for public routes
	Permission common.Permission
	Handler    func(*Request)
}

func isRouteMethodAllowed(method string, methods []string) bool {
	for _, m := range methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

func permissionRank(perm common.Permission) int {
	for i, p := range common.AllPermissions {
		if p == perm.OrRead() {
			return i
		}
	}
	return 0
}

// AddRoute adds a new route to the muxer
func (app *App) AddRoute(route *Route) error {
	if route.Path == "" {
		return errors.New("route path is not set")
	}

	// remove * (if any) from route.Path end
	route.Path = strings.TrimRight(route.Path, "*")

	app.Mux.HandleFunc(route.Path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		if app.Config.LatestClientVersion != "" {
			w.Header().Set("Latest-Known-Client-Version", app.Config.LatestClientVersion)
		}

		ip, _, _ := net.SplitHostPort(r.RemoteAddr)
		app.Log.Tracef("API call: %s %s %s", ip, r.Method, r.URL.Path)

		finish, reason, ok := app.Rate.Admit(r.Context(), ip)
		if !ok {
			app.Log.Warningf("%s: %s", ip, reason)
			http.Error(w, reason, http.StatusTooManyRequests)
			return
		}
		defer finish()

		request := &Request{
			Route:    route,
			SubPath:  r.URL.Path[len(route.Path):],
			HTTP:     r,
			Response: w,
			App:      app,
		}

		if !isRouteMethodAllowed(r.Method, route.Methods) {
			request.Detail(http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}

		if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
			if user, err := app.Users.Get(cookie.Value); err == nil {
				request.User = &user
			}
		}

		if !route.Public {
			if request.User == nil {
				request.Detail(http.StatusUnauthorized, "Not authenticated")
				return
			}
			if permissionRank(request.User.Permission) < permissionRank(route.Permission) {
				request.Detail(http.StatusForbidden, "Not enough permissions")
				return
			}
		}

		route.Handler(request)
	})
	return nil
}
