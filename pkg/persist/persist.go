// Package persist implements the cookie side of view-state durability: one
// cookie per state field, scoped to path "/", written back on every request
// that touches a component.
//
// Writing the resolved map after each resolution is what makes state survive
// across sessions without every link having to carry every parameter. The
// contract is idempotent with the resolver: resolving immediately after a
// write, with the same request, yields the same resolved state.
package persist

import (
	"net/http"
	"time"

	"github.com/stateview-dev/stateview/pkg/viewstate"
)

// FromRequest adapts a request's cookie jar to the resolver's lookup shape.
func FromRequest(r *http.Request) viewstate.CookieLookup {
	return func(name string) (string, bool) {
		c, err := r.Cookie(name)
		if err != nil {
			return "", false
		}
		return c.Value, true
	}
}

// Write persists a resolved scalar map to response cookies. Non-empty values
// set (or overwrite) a cookie named after the field; empty values delete any
// existing cookie of that name via immediate expiry.
func Write(w http.ResponseWriter, values map[string]string) {
	for name, value := range values {
		if value == "" {
			Delete(w, name)
			continue
		}
		http.SetCookie(w, &http.Cookie{
			Name:  name,
			Value: value,
			Path:  "/",
		})
	}
}

// Delete expires the named cookie.
func Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:    name,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	})
}
