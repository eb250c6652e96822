package server

// Header names of the progressive-enhancement protocol spoken with the
// client-side script. The names follow the htmx wire convention.
const (
	// HeaderPartial marks a request as a partial update (fragment fetch)
	// rather than a full navigation.
	HeaderPartial = "HX-Request"

	// HeaderCurrentURL carries the URL currently visible in the client's
	// address bar on partial updates; its path becomes the logical page for
	// history-push URLs.
	HeaderCurrentURL = "HX-Current-URL"

	// HeaderPushURL is the history-push response header: the client script
	// replaces the visible address bar with its value after swapping in the
	// fragment.
	HeaderPushURL = "HX-Push-Url"
)
