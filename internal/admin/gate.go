// Package admin guards the facilitator dashboard behind a shared password.
// The password is checked on the server and a successful login is carried
// by a signed, encrypted session cookie.
package admin

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	CookieName = "cox_coop_admin"
	// sessionLifetime bounds how long an issued cookie verifies. The cookie
	// itself carries no Max-Age and is dropped when the browser closes.
	sessionLifetime = 12 * time.Hour
)

var ErrNoPassword = errors.New("admin password not configured")

type Config struct {
	// Password is hashed at startup. PasswordHash, a bcrypt hash, wins
	// when both are set.
	Password     string
	PasswordHash string
	HashKey      []byte
	BlockKey     []byte
	Secure       bool
}

type Gate struct {
	hash    []byte
	cookies *securecookie.SecureCookie
	secure  bool
	now     func() time.Time
}

type session struct {
	Admin    bool
	IssuedAt int64
}

func NewGate(cfg Config) (*Gate, error) {
	var hash []byte
	switch {
	case cfg.PasswordHash != "":
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		hash = []byte(cfg.PasswordHash)
	case cfg.Password != "":
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		hash = h
	default:
		log.Warn().Msg("Admin password not configured; dashboard logins are disabled")
	}

	hashKey, blockKey := cfg.HashKey, cfg.BlockKey
	if len(hashKey) == 0 {
		log.Warn().Msg("SESSION_HASH_KEY not set; admin sessions will not survive a restart")
		hashKey = securecookie.GenerateRandomKey(64)
		if len(blockKey) == 0 {
			blockKey = securecookie.GenerateRandomKey(32)
		}
	}

	cookies := securecookie.New(hashKey, blockKey)
	cookies.MaxAge(int(sessionLifetime.Seconds()))

	return &Gate{
		hash:    hash,
		cookies: cookies,
		secure:  cfg.Secure,
		now:     time.Now,
	}, nil
}

// Check compares password with the configured one. With no password
// configured every attempt fails.
func (g *Gate) Check(password string) error {
	if g.hash == nil {
		return ErrNoPassword
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(password))
}

func (g *Gate) IssueCookie(w http.ResponseWriter) error {
	value, err := g.cookies.Encode(CookieName, session{Admin: true, IssuedAt: g.now().Unix()})
	if err != nil {
		return fmt.Errorf("failed to encode admin session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (g *Gate) Authenticated(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	var s session
	if err := g.cookies.Decode(CookieName, c.Value, &s); err != nil {
		log.Debug().Err(err).Msg("Rejected admin session cookie")
		return false
	}
	return s.Admin
}

func (g *Gate) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
