// Package session authenticates the operator against a static credential
// list and tracks issued bearer tokens for the process lifetime.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Errors returned by the session manager.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Manager holds the static credential list and the set of live tokens.
// Credentials are stored as HMAC-SHA256 digests keyed with a configured
// pepper, never as plaintext.
type Manager struct {
	pepper []byte
	creds  map[string][]byte // username -> password digest

	mu     sync.RWMutex
	tokens map[string]string // token -> username
}

// NewManager builds a Manager from "user:password" pairs. Malformed pairs
// are rejected.
func NewManager(pepper []byte, userPairs []string) (*Manager, error) {
	m := &Manager{
		pepper: pepper,
		creds:  make(map[string][]byte, len(userPairs)),
		tokens: make(map[string]string),
	}
	for _, pair := range userPairs {
		user, pass, ok := strings.Cut(pair, ":")
		if !ok || user == "" || pass == "" {
			return nil, errors.Errorf("malformed credential pair %q: want user:password", pair)
		}
		m.creds[user] = digest(pepper, pass)
	}
	if len(m.creds) == 0 {
		return nil, errors.New("no operator credentials configured")
	}
	return m, nil
}

// Login checks the credentials and issues a bearer token on success.
func (m *Manager) Login(username, password string) (string, error) {
	stored, ok := m.creds[username]
	if !ok {
		// Hash anyway so unknown and known usernames take the same time.
		_ = digest(m.pepper, password)
		return "", ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare(stored, digest(m.pepper, password)) != 1 {
		return "", ErrInvalidCredentials
	}

	token := uuid.New().String()
	m.mu.Lock()
	m.tokens[token] = username
	m.mu.Unlock()
	return token, nil
}

// Validate returns the username a live token belongs to.
func (m *Manager) Validate(token string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.tokens[token]
	if !ok {
		return "", ErrInvalidToken
	}
	return user, nil
}

// Logout revokes a token. Revoking an unknown token is a no-op.
func (m *Manager) Logout(token string) {
	m.mu.Lock()
	delete(m.tokens, token)
	m.mu.Unlock()
}

// digest computes the HMAC-SHA256 of password under the pepper.
func digest(pepper []byte, password string) []byte {
	mac := hmac.New(sha256.New, pepper)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

// Digest returns the hex form of a password digest. Used by tooling that
// needs to print or compare hashes.
func Digest(pepper []byte, password string) string {
	return hex.EncodeToString(digest(pepper, password))
}
