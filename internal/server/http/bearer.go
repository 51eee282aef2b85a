// Package httpserver exposes the GraphQL API over HTTP.
package httpserver

import (
	"net/http"
	"strings"
)

// BearerFromHeader extracts the bearer token from the Authorization header
// (case-insensitive lookup). The value is split on the first space and the
// second component returned; the scheme word is ignored and not validated.
// A header without a space carries no token and yields ok=false; a garbled
// token simply fails verification downstream.
func BearerFromHeader(h http.Header) (string, bool) {
	v := h.Get("Authorization")
	if v == "" {
		return "", false
	}
	_, tok, ok := strings.Cut(v, " ")
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}
