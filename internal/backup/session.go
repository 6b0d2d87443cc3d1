// Package backup copies gallery and report blobs to an external drive
// location. There is no package-level client: each operation runs under an
// explicit Session carrying its own credentials, and token storage sits
// behind a pluggable SecretStore.
package backup

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/campfirehq/youthorg-api/internal/storage"
)

const tokenKey = "backup:drive_token"

// SecretStore abstracts where the drive token lives. Production uses the
// redis implementation; tests use the in-memory one.
type SecretStore interface {
	GetSecret(ctx context.Context, key string) (string, error)
	SetSecret(ctx context.Context, key, value string, ttl time.Duration) error
}

// Session is one authenticated backup context. Build it per operation with
// NewSession, which refuses to hand one out until the secret store yields a
// token. The filesystem target needs no credentials past that gate; a remote
// drive target would take the token in its own constructor.
type Session struct {
	source storage.ObjectStore
	target storage.ObjectStore
}

type Manager struct {
	secrets SecretStore
	source  storage.ObjectStore
	target  storage.ObjectStore
}

func NewManager(secrets SecretStore, source, target storage.ObjectStore) *Manager {
	return &Manager{secrets: secrets, source: source, target: target}
}

// NewSession authenticates against the secret store and returns a session
// scoped to this one backup run.
func (m *Manager) NewSession(ctx context.Context) (*Session, error) {
	token, err := m.secrets.GetSecret(ctx, tokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load backup token: %w", err)
	}
	if token == "" {
		return nil, fmt.Errorf("no backup token configured")
	}
	return &Session{source: m.source, target: m.target}, nil
}

// StoreToken saves a fresh drive token. TTL zero means no expiry.
func (m *Manager) StoreToken(ctx context.Context, token string, ttl time.Duration) error {
	if err := m.secrets.SetSecret(ctx, tokenKey, token, ttl); err != nil {
		return fmt.Errorf("failed to store backup token: %w", err)
	}
	return nil
}

// BackupPrefix copies every object under prefix from the source store into
// the target under a timestamped directory. Individual copy failures are
// logged and counted, not fatal; the first listing failure is.
func (s *Session) BackupPrefix(ctx context.Context, prefix string) (copied, failed int, err error) {
	keys, err := s.source.List(ctx, prefix)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list objects for backup: %w", err)
	}

	stamp := time.Now().UTC().Format("2006-01-02")
	for _, key := range keys {
		if err := s.copyOne(ctx, key, path.Join(stamp, key)); err != nil {
			log.Error().Err(err).Str("key", key).Msg("backup copy failed")
			failed++
			continue
		}
		copied++
	}
	return copied, failed, nil
}

func (s *Session) copyOne(ctx context.Context, from, to string) error {
	r, err := s.source.Get(ctx, from)
	if err != nil {
		return err
	}
	defer r.Close()
	return s.target.Put(ctx, to, r)
}
