// ABOUTME: Bundled catalog snapshot used when the first download fails.
// ABOUTME: Keeps the app usable offline out of the box.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/gfauredev/logout/internal/models"
)

//go:embed snapshot.json
var snapshotData []byte

func loadSnapshot() ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := json.Unmarshal(snapshotData, &exercises); err != nil {
		return nil, fmt.Errorf("decoding bundled snapshot: %w", err)
	}
	if len(exercises) == 0 {
		return nil, fmt.Errorf("bundled snapshot is empty")
	}
	return exercises, nil
}
