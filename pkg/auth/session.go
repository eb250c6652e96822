package auth

import (
	"errors"

	"github.com/stateview-dev/stateview/pkg/server"
)

// DefaultCookieName is the session cookie read during hydration. The name is
// on the bookmark middleware's denylist, so session tokens never surface in
// synthesized URLs.
const DefaultCookieName = "session"

// Session is the authorize-stage injectable. After hydration it exposes the
// verified principal, or reports unauthenticated when configured as
// optional and no valid token was presented.
type Session struct {
	verifier   Verifier
	cookieName string
	optional   bool

	principal     Principal
	authenticated bool
}

// SessionOption configures a Session injectable.
type SessionOption func(*Session)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) SessionOption {
	return func(s *Session) {
		s.cookieName = name
	}
}

// Optional makes hydration succeed without a token. The handler checks
// Authenticated() and degrades its output instead of the pipeline rejecting
// the request.
func Optional() SessionOption {
	return func(s *Session) {
		s.optional = true
	}
}

// NewSession returns a Session constructor for server.WithInjectable. Each
// request hydrates a fresh Session against the given verifier.
func NewSession(verifier Verifier, opts ...SessionOption) func() server.Injectable {
	return func() server.Injectable {
		s := &Session{
			verifier:   verifier,
			cookieName: DefaultCookieName,
		}
		for _, opt := range opts {
			opt(s)
		}
		return s
	}
}

// SuppliedBy places the session in the authorize stage, after resolve and
// persist have run.
func (s *Session) SuppliedBy() server.StageName { return server.StageAuthorize }

// Hydrate verifies the request's session cookie.
func (s *Session) Hydrate(ctx *server.Ctx) error {
	token, ok := ctx.Cookie(s.cookieName)
	if !ok || token == "" {
		if s.optional {
			return nil
		}
		return server.Unauthorized("login required")
	}

	principal, err := s.verifier.Verify(ctx.Request().Context(), token)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			return server.Forbidden()
		}
		if s.optional && errors.Is(err, ErrInvalidToken) {
			return nil
		}
		return server.Unauthorized("invalid session")
	}

	s.principal = principal
	s.authenticated = true
	return nil
}

// Authenticated reports whether a valid principal was hydrated.
func (s *Session) Authenticated() bool { return s.authenticated }

// Principal returns the verified principal. Zero value when unauthenticated.
func (s *Session) Principal() Principal { return s.principal }

// Subject returns the verified subject, or "" when unauthenticated.
func (s *Session) Subject() string { return s.principal.Subject }

// HasRole reports whether the verified principal holds the role. Always
// false when unauthenticated.
func (s *Session) HasRole(role string) bool {
	return s.authenticated && s.principal.HasRole(role)
}

// FromCtx retrieves the hydrated session from a component context.
func FromCtx(ctx *server.Ctx) (*Session, bool) {
	return server.Injected[*Session](ctx)
}
