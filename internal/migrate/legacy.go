// ABOUTME: File-backed LegacyStore reading the old per-key JSON files.
// ABOUTME: The previous app version wrote <key>.json blobs in the data dir.
package migrate

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileLegacyStore reads legacy flat blobs from <dir>/<key>.json.
type FileLegacyStore struct {
	dir string
}

// NewFileLegacyStore creates a legacy store over the given data directory.
func NewFileLegacyStore(dir string) *FileLegacyStore {
	return &FileLegacyStore{dir: dir}
}

func (f *FileLegacyStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get returns the blob under key, reporting whether the file exists.
func (f *FileLegacyStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", f.path(key), err)
	}
	return data, true, nil
}

// Delete removes the key's file. Absent files are ignored.
func (f *FileLegacyStore) Delete(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", f.path(key), err)
	}
	return nil
}
