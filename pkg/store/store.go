// Package store persists the entry set and settings in a local diskv cache.
// Persistence here is fail-soft: a missing or corrupt blob degrades to
// defaults with a logged line, never a crash.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/daybook/pkg/entry"
)

const (
	entriesKey     = "entries"
	settingsKey    = "settings"
	credentialsKey = "credentials"
)

// Store is the local device cache: one blob holding the whole entry set and
// one holding the settings. Whole-blob replace is the only write guarantee;
// there is no concurrent writer.
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// Load opens (creating if needed) the cache under the configured base path.
func Load(cfg Config) (*Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &Store{d: diskv.New(diskv.Options{
		BasePath: basePath,
		AdvancedTransform: func(key string) *diskv.PathKey {
			return &diskv.PathKey{FileName: key}
		},
		InverseTransform: func(pk *diskv.PathKey) string {
			return pk.FileName
		},
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// BasePath reports where the cache lives on disk.
func (s *Store) BasePath() string {
	return s.basePath
}

// Entries loads the full entry set. Missing data yields an empty set;
// corrupt data is logged and likewise yields an empty set.
func (s *Store) Entries() entry.Set {
	data, err := s.d.Read(entriesKey)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "store: read entries: %v\n", err)
		}
		return entry.Set{}
	}
	set := entry.Set{}
	if err := json.Unmarshal(data, &set); err != nil {
		fmt.Fprintf(os.Stderr, "store: corrupt entries blob, starting empty: %v\n", err)
		return entry.Set{}
	}
	for id, e := range set {
		if e == nil {
			delete(set, id)
			continue
		}
		if e.ID == "" {
			e.ID = id
		}
	}
	return set
}

// SaveEntries replaces the entries blob with the given set.
func (s *Store) SaveEntries(set entry.Set) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("store: marshal entries: %w", err)
	}
	if err := s.d.Write(entriesKey, data); err != nil {
		return fmt.Errorf("store: write entries: %w", err)
	}
	return nil
}

// Settings loads the app settings with defaults backfilled for any fields
// missing from the stored blob.
func (s *Store) Settings() Settings {
	out := DefaultSettings()
	data, err := s.d.Read(settingsKey)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "store: read settings: %v\n", err)
		}
		return out
	}
	if err := json.Unmarshal(data, &out); err != nil {
		fmt.Fprintf(os.Stderr, "store: corrupt settings blob, using defaults: %v\n", err)
		return DefaultSettings()
	}
	return out.sanitized()
}

// SaveSettings replaces the settings blob.
func (s *Store) SaveSettings(cfg Settings) error {
	data, err := json.Marshal(cfg.sanitized())
	if err != nil {
		return fmt.Errorf("store: marshal settings: %w", err)
	}
	if err := s.d.Write(settingsKey, data); err != nil {
		return fmt.Errorf("store: write settings: %w", err)
	}
	return nil
}

// Credentials identify the signed-in principal against the remote entry
// service. Absent credentials mean signed out.
type Credentials struct {
	Endpoint string `json:"endpoint"`
	Token    string `json:"token"`
}

// SignedIn reports whether the credentials are usable.
func (c Credentials) SignedIn() bool {
	return c.Endpoint != "" && c.Token != ""
}

// LoadCredentials returns the stored credentials, zero when signed out.
func (s *Store) LoadCredentials() Credentials {
	var c Credentials
	data, err := s.d.Read(credentialsKey)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(data, &c); err != nil {
		fmt.Fprintf(os.Stderr, "store: corrupt credentials blob: %v\n", err)
		return Credentials{}
	}
	return c
}

// SaveCredentials persists the sign-in state.
func (s *Store) SaveCredentials(c Credentials) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("store: marshal credentials: %w", err)
	}
	if err := s.d.Write(credentialsKey, data); err != nil {
		return fmt.Errorf("store: write credentials: %w", err)
	}
	return nil
}

// ClearCredentials signs the user out.
func (s *Store) ClearCredentials() error {
	if err := s.d.Erase(credentialsKey); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: clear credentials: %w", err)
	}
	return nil
}
