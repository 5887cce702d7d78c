package migrate

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"tidytodo/server/pkg/idwrap"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Migration)

	// ErrDuplicateID is returned when registering the same migration twice.
	ErrDuplicateID = errors.New("migrate: duplicate migration id")
)

// Register adds a migration to the in-process registry. Ids must be
// ULIDs so lexicographic order matches creation order.
func Register(m Migration) error {
	if err := validateMigration(m); err != nil {
		return err
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[m.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, m.ID)
	}

	registry[m.ID] = m
	return nil
}

// List returns the registered migrations ordered by ID.
func List() []Migration {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Migration, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out
}

// ResetForTesting clears the registry. Intended for use in tests only.
func ResetForTesting() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Migration)
}

func validateMigration(m Migration) error {
	if _, err := idwrap.NewText(m.ID); err != nil {
		return fmt.Errorf("migrate: migration id %q is not a ULID: %w", m.ID, err)
	}
	if m.Checksum == "" {
		return fmt.Errorf("migrate: migration %s has no checksum", m.ID)
	}
	if m.Apply == nil {
		return fmt.Errorf("migrate: migration %s has no apply func", m.ID)
	}
	return nil
}
