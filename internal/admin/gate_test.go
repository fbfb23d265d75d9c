package admin

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestGate(t *testing.T, cfg Config) *Gate {
	t.Helper()
	if cfg.HashKey == nil {
		cfg.HashKey = []byte("0123456789abcdef0123456789abcdef")
		cfg.BlockKey = []byte("fedcba9876543210fedcba9876543210")
	}
	g, err := NewGate(cfg)
	if err != nil {
		t.Fatalf("NewGate() error: %v", err)
	}
	return g
}

func TestCheckPassword(t *testing.T) {
	g := newTestGate(t, Config{Password: "let-me-in"})

	if err := g.Check("let-me-in"); err != nil {
		t.Errorf("Check(correct) = %v", err)
	}
	if err := g.Check("nope"); err == nil {
		t.Error("Check(wrong) succeeded")
	}
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	g := newTestGate(t, Config{Password: "ignored", PasswordHash: string(hash)})

	if err := g.Check("hashed"); err != nil {
		t.Errorf("Check(hashed) = %v", err)
	}
	if err := g.Check("ignored"); err == nil {
		t.Error("Plain password must be ignored when a hash is set")
	}
}

func TestInvalidPasswordHash(t *testing.T) {
	if _, err := NewGate(Config{PasswordHash: "not-bcrypt"}); err == nil {
		t.Error("Expected error for invalid hash")
	}
}

func TestNoPasswordRejectsEverything(t *testing.T) {
	g := newTestGate(t, Config{})
	for _, p := range []string{"", "anything"} {
		if err := g.Check(p); !errors.Is(err, ErrNoPassword) {
			t.Errorf("Check(%q) = %v, want ErrNoPassword", p, err)
		}
	}
}

func TestSessionCookieRoundTrip(t *testing.T) {
	g := newTestGate(t, Config{Password: "pw"})

	w := httptest.NewRecorder()
	if err := g.IssueCookie(w); err != nil {
		t.Fatalf("IssueCookie() error: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || !c.HttpOnly || c.MaxAge != 0 {
		t.Errorf("Unexpected cookie %+v", c)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/admin/analytics", nil)
	r.AddCookie(c)
	if !g.Authenticated(r) {
		t.Error("Issued cookie not accepted")
	}
}

func TestAuthenticatedRejectsForgedCookies(t *testing.T) {
	g := newTestGate(t, Config{Password: "pw"})
	other := newTestGate(t, Config{
		Password: "pw",
		HashKey:  []byte("another-hash-key-another-hash-key"),
		BlockKey: []byte("another-block-key-32-bytes-long!"),
	})

	w := httptest.NewRecorder()
	other.IssueCookie(w)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"none", nil},
		{"garbage", &http.Cookie{Name: CookieName, Value: "true"}},
		{"other keys", w.Result().Cookies()[0]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}
			if g.Authenticated(r) {
				t.Error("Forged session accepted")
			}
		})
	}
}

func TestClear(t *testing.T) {
	g := newTestGate(t, Config{Password: "pw"})
	w := httptest.NewRecorder()
	g.Clear(w)

	c := w.Result().Cookies()[0]
	if c.Name != CookieName || c.MaxAge >= 0 {
		t.Errorf("Expected expiring cookie, got %+v", c)
	}
}
