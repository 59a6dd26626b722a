package service

import (
	"bitwise74/account-api/pkg/security"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	// Cookie and refresh token lifetime depending on the "remember me"
	// flag sent at login
	sessionTTL  = 24 * time.Hour
	rememberTTL = 7 * 24 * time.Hour
)

type SessionConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte

	// AccessTTL bounds how long a single access token works. It's
	// deliberately short, clients are expected to come back with the
	// refresh token
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	Domain string
	Secure bool
}

// Sessions mints the access/refresh token pair on login and attaches
// both as scoped cookies. Tokens are not stored server-side so there is
// no revocation list, logging out only clears the cookies
type Sessions struct {
	cfg SessionConfig
}

func NewSessions(cfg SessionConfig) (*Sessions, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("session secrets can't be empty")
	}

	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 5 * time.Minute
	}

	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = sessionTTL
	}

	return &Sessions{cfg: cfg}, nil
}

// Issue creates the token pair for userID and sets both cookies on the
// response. With remember set the refresh token and both cookies live for
// 7 days instead of 1
func (s *Sessions) Issue(c *gin.Context, userID string, remember bool) (access string, err error) {
	refreshTTL := s.cfg.RefreshTTL
	cookieTTL := sessionTTL

	if remember {
		refreshTTL = rememberTTL
		cookieTTL = rememberTTL
	}

	access, err = security.SignUserToken(userID, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return "", err
	}

	refresh, err := security.SignUserToken(userID, s.cfg.RefreshSecret, refreshTTL)
	if err != nil {
		return "", err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, access, int(cookieTTL.Seconds()), "/", s.cfg.Domain, s.cfg.Secure, true)
	c.SetCookie(RefreshCookie, refresh, int(cookieTTL.Seconds()), "/", s.cfg.Domain, s.cfg.Secure, true)

	return access, nil
}

// Clear drops both session cookies. Safe to call without an active
// session
func (s *Sessions) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, "", -1, "/", s.cfg.Domain, s.cfg.Secure, true)
	c.SetCookie(RefreshCookie, "", -1, "/", s.cfg.Domain, s.cfg.Secure, true)
}
