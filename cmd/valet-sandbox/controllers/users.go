package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cloudvalet/valet/cmd/valet-sandbox/server"
	"github.com/cloudvalet/valet/common"
)

// MeController returns the identity of the session
func MeController(req *server.Request) {
	req.JSON(http.StatusOK, common.Identity{
		Username:   req.User.Username,
		Email:      req.User.Email,
		Permission: req.User.Permission,
	})
}

// UsersController dispatches /users/ and /users/{username}
func UsersController(req *server.Request) {
	username := strings.Trim(req.SubPath, "/")

	if username == "" {
		switch req.HTTP.Method {
		case http.MethodGet:
			req.JSON(http.StatusOK, req.App.Users.List())
		case http.MethodPost:
			createUser(req)
		default:
			req.Detail(http.StatusMethodNotAllowed, "Method Not Allowed")
		}
		return
	}

	switch req.HTTP.Method {
	case http.MethodGet:
		user, err := req.App.Users.Get(username)
		if err != nil {
			req.Detail(http.StatusNotFound, err.Error())
			return
		}
		req.JSON(http.StatusOK, user)
	case http.MethodPut:
		updateUser(req, username)
	case http.MethodDelete:
		if err := req.App.Users.Delete(username); err != nil {
			req.Detail(http.StatusNotFound, err.Error())
			return
		}
		req.App.Log.Infof("user '%s' deleted by '%s'", username, req.User.Username)
		req.JSON(http.StatusOK, map[string]bool{"ok": true})
	default:
		req.Detail(http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

func createUser(req *server.Request) {
	values := req.RequireForm("username", "email", "password")
	if values == nil {
		return
	}
	if strings.TrimSpace(values["username"]) == "" {
		req.Detail(http.StatusBadRequest, "Username is required")
		return
	}
	perm := common.Permission(req.HTTP.FormValue("permission"))

	err := req.App.Users.Create(values["username"], values["email"], values["password"], perm)
	if err != nil {
		req.Detail(http.StatusBadRequest, err.Error())
		return
	}

	user, _ := req.App.Users.Get(values["username"])
	req.App.Log.Infof("user '%s' created (%s) by '%s'", user.Username, user.Permission, req.User.Username)
	req.JSON(http.StatusOK, user)
}

func updateUser(req *server.Request, username string) {
	values := req.RequireForm("new_username", "email")
	if values == nil {
		return
	}
	if strings.TrimSpace(values["new_username"]) == "" {
		req.Detail(http.StatusBadRequest, "Username is required")
		return
	}
	perm := common.Permission(req.HTTP.FormValue("permission"))

	user, err := req.App.Users.Update(username, values["new_username"], values["email"], perm)
	switch {
	case errors.Is(err, server.ErrUserNotFound):
		req.Detail(http.StatusNotFound, err.Error())
		return
	case err != nil:
		req.Detail(http.StatusBadRequest, err.Error())
		return
	}

	req.App.Log.Infof("user '%s' updated by '%s'", user.Username, req.User.Username)
	req.JSON(http.StatusOK, user)
}
