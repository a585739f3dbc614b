// ABOUTME: Persisted last-successful-fetch timestamp for staleness checks.
// ABOUTME: Stored as a small JSON state file next to the record database.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// stampFile is the state file name inside the data directory.
const stampFile = "catalog_state.json"

type stampState struct {
	LastFetch int64 `json:"last_fetch"`
}

// FetchStamp tracks when the catalog was last downloaded successfully.
type FetchStamp struct {
	path string
}

// NewFetchStamp creates a stamp stored in the given data directory.
func NewFetchStamp(dataDir string) *FetchStamp {
	return &FetchStamp{path: filepath.Join(dataDir, stampFile)}
}

// Last returns the last successful fetch time, reporting whether one has
// ever been recorded. Unreadable state counts as never fetched.
func (s *FetchStamp) Last() (time.Time, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return time.Time{}, false
	}
	var st stampState
	if err := json.Unmarshal(data, &st); err != nil || st.LastFetch <= 0 {
		return time.Time{}, false
	}
	return time.Unix(st.LastFetch, 0), true
}

// Record stores t as the last successful fetch time.
func (s *FetchStamp) Record(t time.Time) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return err
	}
	data, err := json.Marshal(stampState{LastFetch: t.Unix()})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the stamp so the next staleness check forces a refresh.
func (s *FetchStamp) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
