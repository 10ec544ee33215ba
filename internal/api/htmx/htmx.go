package htmx

import (
	"net/http"
	"strings"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// Target returns the id of the element the request will swap into, if any.
func Target(r *http.Request) string {
	return r.Header.Get("HX-Target")
}
