package client

import (
	"bytes"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/cloudvalet/valet/common"
)

// SessionJar is a cookie jar holding the dashboard session. When a
// filename is set, the session cookies are saved after each change so
// the next command can reuse them.
type SessionJar struct {
	filename string
	jar      *cookiejar.Jar
	mux      sync.Mutex
}

type tomlSessionFile struct {
	Cookie []*tomlSessionCookie
}

type tomlSessionCookie struct {
	Server string
	Name   string
	Value  string
}

// NewMemorySessionJar creates a jar without persistence
func NewMemorySessionJar() *SessionJar {
	jar, _ := cookiejar.New(nil)
	return &SessionJar{jar: jar}
}

// NewSessionJar creates a jar persisted in filename, and loads the
// cookies previously saved for server
func NewSessionJar(filename string, server string) (*SessionJar, error) {
	sj := NewMemorySessionJar()
	sj.filename = filename

	if !common.PathExist(filename) {
		return sj, nil
	}

	serverURL, err := url.Parse(server)
	if err != nil {
		return nil, err
	}

	origin := &url.URL{Scheme: serverURL.Scheme, Host: serverURL.Host}

	var tFile tomlSessionFile
	if _, err := toml.DecodeFile(filename, &tFile); err != nil {
		return nil, err
	}

	var cookies []*http.Cookie
	for _, c := range tFile.Cookie {
		if c.Server != origin.String() {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:  c.Name,
			Value: c.Value,
			Path:  "/",
		})
	}
	sj.jar.SetCookies(origin, cookies)

	return sj, nil
}

// SetCookies implements http.CookieJar
func (sj *SessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	sj.mux.Lock()
	defer sj.mux.Unlock()

	sj.jar.SetCookies(u, cookies)
	// best effort: a failed save only costs a new login
	_ = sj.save(u)
}

// Cookies implements http.CookieJar
func (sj *SessionJar) Cookies(u *url.URL) []*http.Cookie {
	sj.mux.Lock()
	defer sj.mux.Unlock()

	return sj.jar.Cookies(u)
}

// Clear forgets the session for server
func (sj *SessionJar) Clear(server string) error {
	sj.mux.Lock()
	defer sj.mux.Unlock()

	serverURL, err := url.Parse(server)
	if err != nil {
		return err
	}

	sj.jar, _ = cookiejar.New(nil)
	return sj.save(serverURL)
}

// save rewrites the file, replacing cookies of serverURL's origin
// only (other servers of the config keep their sessions)
func (sj *SessionJar) save(u *url.URL) error {
	if sj.filename == "" {
		return nil
	}

	origin := &url.URL{Scheme: u.Scheme, Host: u.Host}
	server := origin.String()

	var tFile tomlSessionFile
	if common.PathExist(sj.filename) {
		if _, err := toml.DecodeFile(sj.filename, &tFile); err != nil {
			return err
		}
	}

	kept := []*tomlSessionCookie{}
	for _, c := range tFile.Cookie {
		if c.Server != server {
			kept = append(kept, c)
		}
	}
	for _, c := range sj.jar.Cookies(origin) {
		kept = append(kept, &tomlSessionCookie{
			Server: server,
			Name:   c.Name,
			Value:  c.Value,
		})
	}
	tFile.Cookie = kept

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tFile); err != nil {
		return err
	}
	return os.WriteFile(sj.filename, buf.Bytes(), 0600)
}
