package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

// TokenKind selects one of the two independent credential slots.
type TokenKind string

const (
	Participant TokenKind = "participant"
	Admin       TokenKind = "admin"
)

// Fixed storage keys, matching the keys the browser front-end used.
const (
	keyParticipantToken = "ctf_token"
	keyAdminToken       = "ctf_admin_token"
	keyBonusLevel       = "bonus_level_unlocked"
)

// Store is the durable client-side state: the two bearer tokens and
// the bonus unlock level. Reads always hit storage; there is no
// in-memory cache.
type Store struct {
	db      *sql.DB
	openErr error
}

// Open opens (and if needed creates) the state database at path. On
// failure it still returns a usable store alongside the error: reads
// on a degraded store report absent, writes return the open error.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		err = fmt.Errorf("create state directory: %w", err)
		return &Store{openErr: err}, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		err = fmt.Errorf("open state database: %w", err)
		return &Store{openErr: err}, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		err = fmt.Errorf("initialize state database: %w", err)
		return &Store{openErr: err}, err
	}
	return &Store{db: db}, nil
}

// SetToken stores value under the slot for kind. The token shape is
// not validated.
func (s *Store) SetToken(kind TokenKind, value string) error {
	return s.set(tokenKey(kind), value)
}

// Token returns the stored token for kind, reporting absent if it was
// never set, was cleared, or the storage is unavailable. It never
// fails.
func (s *Store) Token(kind TokenKind) (string, bool) {
	return s.get(tokenKey(kind))
}

// ClearToken removes the token for kind. Clearing an absent token is
// not an error.
func (s *Store) ClearToken(kind TokenKind) error {
	return s.delete(tokenKey(kind))
}

// BonusLevel returns the highest unlocked bonus level, defaulting to 1.
func (s *Store) BonusLevel() int {
	value, ok := s.get(keyBonusLevel)
	if !ok {
		return 1
	}
	level, err := strconv.Atoi(value)
	if err != nil || level < 1 {
		return 1
	}
	return level
}

// SetBonusLevel records the highest unlocked bonus level.
func (s *Store) SetBonusLevel(level int) error {
	return s.set(keyBonusLevel, strconv.Itoa(level))
}

// Close releases the underlying database. Safe on a degraded store.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func tokenKey(kind TokenKind) string {
	if kind == Admin {
		return keyAdminToken
	}
	return keyParticipantToken
}

func (s *Store) get(key string) (string, bool) {
	if s.db == nil {
		return "", false
	}
	var value string
	if err := s.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value); err != nil {
		return "", false
	}
	return value, true
}

func (s *Store) set(key, value string) error {
	if s.db == nil {
		return s.openErr
	}
	_, err := s.db.Exec(`INSERT INTO state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write state key %s: %w", key, err)
	}
	return nil
}

func (s *Store) delete(key string) error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(`DELETE FROM state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete state key %s: %w", key, err)
	}
	return nil
}
