package common

import (
	"net/url"
	"path"
	"strings"
)

// CleanURL clean the URL using path.Clean rules, keeping a trailing
// slash when there was one (the API makes a difference between /users/
// and /users)
func CleanURL(urlIn string) (string, error) {
	urlObj, err := url.Parse(urlIn)
	if err != nil {
		return urlIn, err
	}
	trailing := strings.HasSuffix(urlObj.Path, "/")
	urlObj.Path = path.Clean(urlObj.Path)
	if trailing && urlObj.Path != "/" {
		urlObj.Path += "/"
	}
	return urlObj.String(), nil
}

// RemoveSecretFromString replace any secret appearance in the string
func RemoveSecretFromString(in string, secret string) string {
	if secret == "" {
		return in
	}
	return strings.Replace(in, secret, "xxx", -1)
}
