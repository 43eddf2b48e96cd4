package utils

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// WantsJSON reports whether the caller is an API client rather than a browser
// following redirects.
func WantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusOf(err), ErrorResponse{Message: MessageOf(err)})
}

// Back is the page the request came from when that page is on this host,
// otherwise "/".
func Back(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.EscapedPath() + "?" + ref.RawQuery
	}
	return ref.EscapedPath()
}
