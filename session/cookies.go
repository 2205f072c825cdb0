package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const cookieStoreVersion = 1

// cookieStore is the on-disk cookie jar. Scopes are keyed by
// scheme://host/path of the page the cookies were sent to.
type cookieStore struct {
	Version int                       `json:"version"`
	Scopes  map[string][]storedCookie `json:"scopes"`
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// readCookieFile reports ok=false when the file does not exist.
func readCookieFile(path string) (cookieStore, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cookieStore{}, false, nil
		}
		return cookieStore{}, false, fmt.Errorf("read cookie file: %w", err)
	}

	var store cookieStore
	if err := json.Unmarshal(data, &store); err != nil {
		return cookieStore{}, false, fmt.Errorf("unmarshal cookie file: %w", err)
	}
	if store.Version != cookieStoreVersion {
		return cookieStore{}, false, fmt.Errorf("unsupported cookie file version: %d", store.Version)
	}
	return store, true, nil
}

// writeCookieFile replaces the file atomically.
func writeCookieFile(path string, store cookieStore) error {
	payload, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cookie file: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create cookie dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write cookie file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename cookie file: %w", err)
	}
	return nil
}
