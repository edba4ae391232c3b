// Package session authenticates against the built-in account and keeps the
// active session in storage so it survives restarts.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"todo/internal/service"
	"todo/internal/storage"
	"todo/internal/users"
)

// Built-in account.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "demo123"
	demoUserID   = "1"
)

const signingKeySize = 32

var (
	demoHashOnce sync.Once
	demoHash     []byte
	demoHashErr  error
)

func demoPasswordHash() ([]byte, error) {
	demoHashOnce.Do(func() {
		demoHash, demoHashErr = bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	})
	return demoHash, demoHashErr
}

// Config controls session tokens.
type Config struct {
	// Secret signs tokens. When empty a random key is generated and stored.
	Secret string
	// TTL bounds token lifetime. Zero means sessions never expire.
	TTL time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Manager tracks the active session.
type Manager struct {
	mu  sync.Mutex
	db  *storage.Adapter
	dir *users.Directory
	cfg Config
	log *slog.Logger

	key    []byte
	user   service.User
	active bool
}

// New creates a Manager with no active session. Call Restore to pick up a
// persisted one.
func New(db *storage.Adapter, dir *users.Directory, cfg Config, log *slog.Logger) *Manager {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Manager{db: db, dir: dir, cfg: cfg, log: log}
}

// Current returns the session user, if any.
func (m *Manager) Current() (service.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.active
}

// Authenticate checks the credential pair and persists a new session.
// On failure the current state is left as it was.
func (m *Manager) Authenticate(ctx context.Context, email, password string) (service.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hash, err := demoPasswordHash()
	if err != nil {
		return service.User{}, fmt.Errorf("hash password: %w", err)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != DemoEmail || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		m.log.Debug("login rejected", "email", email)
		return service.User{}, service.ErrInvalidCredentials
	}

	user, ok := m.dir.Get(demoUserID)
	if !ok {
		return service.User{}, fmt.Errorf("user %s: %w", demoUserID, service.ErrNotFound)
	}
	if err := m.persistLocked(ctx, user); err != nil {
		return service.User{}, err
	}
	m.user, m.active = user, true
	m.log.Debug("logged in", "user", user.ID)
	return user, nil
}

// Logout ends the session. Logging out without a session is not an error.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user, m.active = service.User{}, false
	if err := m.db.Delete(ctx, storage.UserKey, storage.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Restore loads the persisted session. A stored token must verify and name
// the stored user; otherwise the session is discarded. A user record without
// a token is accepted and given one.
func (m *Manager) Restore(ctx context.Context) (service.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user, m.active = service.User{}, false

	user, ok, err := m.db.LoadUser(ctx)
	if err != nil {
		return service.User{}, false, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return service.User{}, false, nil
	}

	raw, ok, err := m.db.Value(ctx, storage.SessionKey)
	if err != nil {
		return service.User{}, false, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		m.log.Debug("stamping session without token", "user", user.ID)
		if err := m.persistLocked(ctx, user); err != nil {
			return service.User{}, false, err
		}
		m.user, m.active = user, true
		return user, true, nil
	}

	tok, err := m.tokensLocked(ctx)
	if err != nil {
		return service.User{}, false, err
	}
	subject, err := tok.verify(raw)
	if err == nil && subject != user.ID {
		err = ErrInvalidToken
	}
	if err != nil {
		m.log.Info("discarding stored session", "user", user.ID, "err", err)
		if derr := m.db.Delete(ctx, storage.UserKey, storage.SessionKey); derr != nil {
			return service.User{}, false, fmt.Errorf("clear session: %w", derr)
		}
		return service.User{}, false, nil
	}

	m.user, m.active = user, true
	return user, true, nil
}

func (m *Manager) persistLocked(ctx context.Context, user service.User) error {
	tok, err := m.tokensLocked(ctx)
	if err != nil {
		return err
	}
	raw, err := tok.issue(user.ID)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}
	if err := m.db.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := m.db.SetValue(ctx, storage.SessionKey, raw); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (m *Manager) tokensLocked(ctx context.Context) (tokens, error) {
	if m.key == nil {
		key, err := m.signingKey(ctx)
		if err != nil {
			return tokens{}, err
		}
		m.key = key
	}
	return tokens{key: m.key, ttl: m.cfg.TTL, now: m.cfg.Now}, nil
}

func (m *Manager) signingKey(ctx context.Context) ([]byte, error) {
	if m.cfg.Secret != "" {
		return []byte(m.cfg.Secret), nil
	}

	stored, ok, err := m.db.Value(ctx, storage.SigningKeyKey)
	if err != nil {
		return nil, fmt.Errorf("load signing key: %w", err)
	}
	if ok {
		if key, err := hex.DecodeString(stored); err == nil && len(key) == signingKeySize {
			return key, nil
		}
		m.log.Warn("replacing malformed signing key")
	}

	key := make([]byte, signingKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	if err := m.db.SetValue(ctx, storage.SigningKeyKey, hex.EncodeToString(key)); err != nil {
		return nil, fmt.Errorf("save signing key: %w", err)
	}
	return key, nil
}
