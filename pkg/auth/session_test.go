package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stateview-dev/stateview/pkg/server"
	"github.com/stateview-dev/stateview/pkg/urlbuilder"
)

var testVerifier = StaticVerifier{Tokens: map[string]Principal{
	"tok-ada":  {Subject: "ada", Roles: []string{"admin", "editor"}},
	"tok-brin": {Subject: "brin"},
}}

func hydrate(t *testing.T, s *Session, cookies ...*http.Cookie) error {
	t.Helper()
	r := httptest.NewRequest("GET", "/views/x", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return s.Hydrate(server.NewCtx(httptest.NewRecorder(), r, nil))
}

func TestSessionHydrateValidToken(t *testing.T) {
	s := NewSession(testVerifier)().(*Session)

	err := hydrate(t, s, &http.Cookie{Name: "session", Value: "tok-ada"})
	if err != nil {
		t.Fatalf("Hydrate() error: %v", err)
	}
	if !s.Authenticated() {
		t.Fatal("Authenticated() = false")
	}
	if got := s.Subject(); got != "ada" {
		t.Errorf("Subject() = %q, want %q", got, "ada")
	}
	if !s.HasRole("admin") {
		t.Error("HasRole(admin) = false")
	}
	if s.HasRole("owner") {
		t.Error("HasRole(owner) = true")
	}
}

func TestSessionHydrateMissingToken(t *testing.T) {
	s := NewSession(testVerifier)().(*Session)

	err := hydrate(t, s)
	var httpErr *server.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != 401 {
		t.Fatalf("Hydrate() = %v, want 401 HTTPError", err)
	}
}

func TestSessionHydrateInvalidToken(t *testing.T) {
	s := NewSession(testVerifier)().(*Session)

	err := hydrate(t, s, &http.Cookie{Name: "session", Value: "tok-bogus"})
	var httpErr *server.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != 401 {
		t.Fatalf("Hydrate() = %v, want 401 HTTPError", err)
	}
}

func TestSessionForbiddenVerifier(t *testing.T) {
	banned := VerifierFunc(func(_ context.Context, _ string) (Principal, error) {
		return Principal{}, ErrForbidden
	})
	s := NewSession(banned)().(*Session)

	err := hydrate(t, s, &http.Cookie{Name: "session", Value: "tok"})
	var httpErr *server.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != 403 {
		t.Fatalf("Hydrate() = %v, want 403 HTTPError", err)
	}
}

func TestSessionOptional(t *testing.T) {
	tests := []struct {
		name    string
		cookies []*http.Cookie
		wantOK  bool
	}{
		{"no cookie", nil, false},
		{"invalid token", []*http.Cookie{{Name: "session", Value: "nope"}}, false},
		{"valid token", []*http.Cookie{{Name: "session", Value: "tok-brin"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(testVerifier, Optional())().(*Session)

			if err := hydrate(t, s, tt.cookies...); err != nil {
				t.Fatalf("Hydrate() error: %v", err)
			}
			if s.Authenticated() != tt.wantOK {
				t.Errorf("Authenticated() = %v, want %v", s.Authenticated(), tt.wantOK)
			}
		})
	}
}

func TestSessionCustomCookieName(t *testing.T) {
	s := NewSession(testVerifier, WithCookieName("sv_session"))().(*Session)

	err := hydrate(t, s, &http.Cookie{Name: "sv_session", Value: "tok-ada"})
	if err != nil {
		t.Fatalf("Hydrate() error: %v", err)
	}
	if s.Subject() != "ada" {
		t.Errorf("Subject() = %q, want %q", s.Subject(), "ada")
	}
}

func TestPrincipalHasRole(t *testing.T) {
	p := Principal{Subject: "ada", Roles: []string{"editor"}}
	if !p.HasRole("editor") {
		t.Error("HasRole(editor) = false")
	}
	if p.HasRole("admin") {
		t.Error("HasRole(admin) = true")
	}
}

func TestStaticVerifier(t *testing.T) {
	p, err := testVerifier.Verify(context.Background(), "tok-ada")
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if p.Subject != "ada" {
		t.Errorf("Subject = %q, want %q", p.Subject, "ada")
	}

	if _, err := testVerifier.Verify(context.Background(), "nope"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(nope) = %v, want ErrInvalidToken", err)
	}
}

func TestFromCtxInsideComponent(t *testing.T) {
	type emptyState struct{}

	var subject string
	rec := server.Component("who", "GET", "/views/who",
		func(ctx *server.Ctx, _ emptyState, _ *urlbuilder.Builder) error {
			sess, ok := FromCtx(ctx)
			if !ok {
				t.Fatal("FromCtx: no session on context")
			}
			subject = sess.Subject()
			ctx.NoContent()
			return nil
		},
		server.WithInjectable(NewSession(testVerifier)))

	r := httptest.NewRequest("GET", "/views/who", nil)
	r.AddCookie(&http.Cookie{Name: "session", Value: "tok-ada"})

	w := httptest.NewRecorder()
	rec.Handler(w, r)

	if w.Code != 204 {
		t.Fatalf("status = %d, want 204: %s", w.Code, w.Body.String())
	}
	if subject != "ada" {
		t.Errorf("Subject() = %q, want %q", subject, "ada")
	}
}
