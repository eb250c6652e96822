// Package auth supplies session verification for the authorize stage of the
// component pipeline. A Session is an injectable: declare it on a component
// and the pipeline hydrates it from the request's session cookie after state
// has been resolved and persisted, so a rejected request still keeps the
// user's view state for after login.
//
// Example:
//
//	verifier := auth.StaticVerifier{Tokens: map[string]auth.Principal{
//	    "tok-1": {Subject: "ada", Roles: []string{"admin"}},
//	}}
//
//	rec := server.Component("admin", "GET", "/views/admin", handler,
//	    server.WithInjectable(auth.NewSession(verifier)))
//
//	func handler(ctx *server.Ctx, state adminState, urls *urlbuilder.Builder) error {
//	    sess, _ := auth.FromCtx(ctx)
//	    if !sess.HasRole("admin") { ... }
//	}
package auth

import (
	"context"
	"errors"
	"slices"
)

// Principal identifies a verified user.
type Principal struct {
	// Subject is the stable user identifier.
	Subject string

	// Roles are the principal's granted roles.
	Roles []string
}

// HasRole reports whether the principal holds the given role.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// ErrInvalidToken is returned by verifiers for tokens that do not resolve to
// a principal. The session maps it to a 401 response.
var ErrInvalidToken = errors.New("invalid session token")

// ErrForbidden may be returned by verifiers for tokens that are valid but
// not allowed here. The session maps it to a 403 response.
var ErrForbidden = errors.New("forbidden")

// Verifier validates a session token and returns the principal it belongs
// to. Implementations decide what a token is: an opaque server-side session
// ID, a signed value, or anything else carried in a cookie.
type Verifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, token string) (Principal, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Principal, error) {
	return f(ctx, token)
}

// StaticVerifier resolves tokens against a fixed map. Intended for tests and
// examples; production verifiers look tokens up in a session store.
type StaticVerifier struct {
	Tokens map[string]Principal
}

func (v StaticVerifier) Verify(_ context.Context, token string) (Principal, error) {
	p, ok := v.Tokens[token]
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	return p, nil
}
