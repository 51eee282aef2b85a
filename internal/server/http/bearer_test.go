package httpserver

import (
	"net/http"
	"testing"
)

func TestBearerFromHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"bearer token", "Bearer abc", "abc", true},
		{"scheme not validated", "Token abc", "abc", true},
		{"no header", "", "", false},
		{"no space", "abc", "", false},
		{"space but empty token", "Bearer ", "", false},
		{"extra spaces keep remainder", "Bearer a b", "a b", true},
	}
	for _, c := range cases {
		h := http.Header{}
		if c.header != "" {
			h.Set("Authorization", c.header)
		}
		got, ok := BearerFromHeader(h)
		if got != c.want || ok != c.ok {
			t.Fatalf("%s: got=(%q,%v), want=(%q,%v)", c.name, got, ok, c.want, c.ok)
		}
	}
}

func TestBearerFromHeader_CaseInsensitiveName(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	h.Set("authorization", "Bearer tok")
	got, ok := BearerFromHeader(h)
	if !ok || got != "tok" {
		t.Fatalf("got=(%q,%v)", got, ok)
	}
}
