package domain

import "strings"

type DisplayMode string

const (
	// DisplayModeFramed renders the shared header and footer around a page.
	DisplayModeFramed DisplayMode = "framed"
	// DisplayModeBare hides the chrome; used by the dashboard and chat views.
	DisplayModeBare DisplayMode = "bare"
)

var bareRoutePrefixes = []string{"/dashboard", "/ask-ai"}

func DisplayModeForRoute(path string) DisplayMode {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	for _, prefix := range bareRoutePrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return DisplayModeBare
		}
	}

	return DisplayModeFramed
}
