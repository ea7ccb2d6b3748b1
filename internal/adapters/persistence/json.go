package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/danielp299/ogamecloneapp-sub000/internal/domain/catalog"
)

// countsToJSON serializes an entity count map for a text column
func countsToJSON(counts map[catalog.EntityID]int) (string, error) {
	if len(counts) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(counts)
	if err != nil {
		return "", fmt.Errorf("failed to marshal counts: %w", err)
	}
	return string(data), nil
}

// countsFromJSON deserializes an entity count map from a text column.
// Empty columns decode to an empty map.
func countsFromJSON(data string) (map[catalog.EntityID]int, error) {
	counts := make(map[catalog.EntityID]int)
	if data == "" {
		return counts, nil
	}
	if err := json.Unmarshal([]byte(data), &counts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal counts: %w", err)
	}
	return counts, nil
}
