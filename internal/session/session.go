// Package session keeps one portal.Page per visitor, keyed by a signed cookie.
// The cookie is not authentication; it only stops a client from picking
// another visitor's session id.
package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"sync"
	"time"

	"complaintportal/backend/internal/portal"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// CookieName carries the signed session token.
	CookieName = "portal_session"

	issuer  = "complaint-portal"
	pageKey = "portal.page"
)

// ErrInvalidToken is returned for a token that is malformed, expired or signed
// with another key.
var ErrInvalidToken = errors.New("invalid session token")

// PageFactory creates a fresh page in lang.
type PageFactory func(lang string) *portal.Page

// Manager hands out pages to visitors.
type Manager struct {
	secret      []byte
	ttl         time.Duration
	newPage     PageFactory
	languages   []string
	defaultLang string

	mu    sync.Mutex
	pages *expirable.LRU[string, *portal.Page]
}

// NewManager creates a Manager holding at most capacity pages, each dropped
// after ttl without use. An empty secret is replaced with a random one, which
// invalidates every cookie on restart.
func NewManager(secret string, capacity int, ttl time.Duration, newPage PageFactory, languages []string, defaultLang string) *Manager {
	key := []byte(secret)
	if len(key) == 0 {
		log.Println("WARNING: SESSION_SECRET is not set, using a random key")
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}
	return &Manager{
		secret:      key,
		ttl:         ttl,
		newPage:     newPage,
		languages:   languages,
		defaultLang: defaultLang,
		pages:       expirable.NewLRU[string, *portal.Page](capacity, nil, ttl),
	}
}

// generateToken signs a token carrying the session id.
func (m *Manager) generateToken(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(m.ttl).Unix(),
		"iss": issuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// parseToken returns the session id of a valid token.
func (m *Manager) parseToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sid, _ := claims["sid"].(string)
	if _, err := uuid.Parse(sid); err != nil {
		return "", ErrInvalidToken
	}
	return sid, nil
}

// Len is the number of live pages.
func (m *Manager) Len() int {
	return m.pages.Len()
}

func (m *Manager) lang(c *gin.Context) string {
	if l := c.Query("lang"); slices.Contains(m.languages, l) {
		return l
	}
	return m.defaultLang
}

// resolve returns the page for the request's cookie, creating a new session
// when there is none or it has expired.
func (m *Manager) resolve(c *gin.Context) (*portal.Page, string) {
	if raw, err := c.Cookie(CookieName); err == nil && raw != "" {
		if sid, err := m.parseToken(raw); err == nil {
			m.mu.Lock()
			defer m.mu.Unlock()
			if page, ok := m.pages.Get(sid); ok {
				m.pages.Add(sid, page) // slide the expiry
				return page, sid
			}
			page := m.newPage(m.lang(c))
			m.pages.Add(sid, page)
			return page, sid
		}
	}

	sid := uuid.NewString()
	page := m.newPage(m.lang(c))
	m.mu.Lock()
	m.pages.Add(sid, page)
	m.mu.Unlock()
	return page, sid
}

// Middleware attaches the visitor's page to the request and refreshes the
// session cookie.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, sid := m.resolve(c)

		token, err := m.generateToken(sid)
		if err != nil {
			log.Printf("ERROR: Failed to sign session token: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", false, true)

		c.Set(pageKey, page)
		c.Next()
	}
}

// PageFrom returns the page attached by Middleware.
func PageFrom(c *gin.Context) *portal.Page {
	v, ok := c.Get(pageKey)
	if !ok {
		return nil
	}
	page, _ := v.(*portal.Page)
	return page
}
