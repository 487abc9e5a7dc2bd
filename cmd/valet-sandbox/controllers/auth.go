package controllers

import (
	"html/template"
	"net/http"

	"github.com/cloudvalet/valet/cmd/valet-sandbox/server"
)

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Cloud Valet - Login</title></head>
<body>
<h1>Cloud Valet</h1>
{{if .}}<p class="error">{{.}}</p>{{end}}
<form method="post" action="/login">
<input name="username" placeholder="Username">
<input name="password" type="password" placeholder="Password">
<button type="submit">Login</button>
</form>
</body>
</html>
`))

var dashboardPage = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>Cloud Valet - Dashboard</title></head>
<body>
<h1>Cloud Valet</h1>
<p>Welcome, {{.}}. Use the valet client to manage the fleet.</p>
<a href="/logout">Logout</a>
</body>
</html>
`))

func renderPage(req *server.Request, tpl *template.Template, data string) {
	req.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(req.Response, data); err != nil {
		req.App.Log.Error(err.Error())
	}
}

// LoginController shows the login page (GET) or opens a session (POST):
// a redirect to /dashboard with the session cookie, or the login page
// again with an error
func LoginController(req *server.Request) {
	if req.HTTP.Method == http.MethodGet {
		renderPage(req, loginPage, "")
		return
	}

	values := req.RequireForm("username", "password")
	if values == nil {
		return
	}

	user, ok := req.App.Users.Authenticate(values["username"], values["password"])
	if !ok {
		req.App.Log.Warningf("login failed for '%s'", values["username"])
		renderPage(req, loginPage, "Invalid credentials")
		return
	}

	http.SetCookie(req.Response, &http.Cookie{
		Name:     server.SessionCookie,
		Value:    user.Username,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	req.App.Log.Infof("'%s' logged in (%s)", user.Username, user.Permission)
	http.Redirect(req.Response, req.HTTP, "/dashboard", http.StatusFound)
}

// LogoutController closes the session
func LogoutController(req *server.Request) {
	http.SetCookie(req.Response, &http.Cookie{
		Name:   server.SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	if req.User != nil {
		req.App.Log.Infof("'%s' logged out", req.User.Username)
	}
	http.Redirect(req.Response, req.HTTP, "/login", http.StatusFound)
}

// DashboardController is the landing page of a session
func DashboardController(req *server.Request) {
	if req.User == nil {
		http.Redirect(req.Response, req.HTTP, "/login", http.StatusFound)
		return
	}
	renderPage(req, dashboardPage, req.User.Username)
}
