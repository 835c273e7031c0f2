package storage

import (
	"errors"
	"sync"

	"github.com/eugenenazirov/barplanner/internal/engine"
)

// maxOptionsPerIngredient caps a single catalog so a misbehaving client
// cannot grow the store without bound.
const maxOptionsPerIngredient = 20

var (
	// ErrInvalidOptions indicates that none of the provided pack options
	// survived normalization, or the catalog exceeds the size cap.
	ErrInvalidOptions = errors.New("pack options must contain between 1 and 20 entries with positive sizes and non-negative prices")
)

// CatalogStore provides access to the per-ingredient pack option catalogs
// used by the shopping-list engine.
type CatalogStore interface {
	GetOptions(ingredientID string) ([]engine.PackOption, error)
	SetOptions(ingredientID string, options []engine.PackOption) error
	ReplaceAll(catalogs map[string][]engine.PackOption) error
	Snapshot() (map[string][]engine.PackOption, error)
}

// MemoryStore keeps catalogs in-memory and guards access with a RWMutex.
type MemoryStore struct {
	mu       sync.RWMutex
	catalogs map[string][]engine.PackOption
}

// NewMemoryStore initialises an empty catalog store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		catalogs: make(map[string][]engine.PackOption),
	}
}

// GetOptions returns a defensive copy of the catalog for one ingredient.
// An unknown ingredient yields an empty catalog, not an error.
func (s *MemoryStore) GetOptions(ingredientID string) ([]engine.PackOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneOptions(s.catalogs[ingredientID]), nil
}

// SetOptions validates, normalises, and stores the catalog for one
// ingredient. An empty slice clears the entry.
func (s *MemoryStore) SetOptions(ingredientID string, options []engine.PackOption) error {
	if len(options) == 0 {
		s.mu.Lock()
		delete(s.catalogs, ingredientID)
		s.mu.Unlock()
		return nil
	}

	normalized, err := normalizeCatalog(options)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.catalogs[ingredientID] = normalized
	s.mu.Unlock()

	return nil
}

// ReplaceAll swaps the entire store contents. The whole input is validated
// before anything is applied, so a bad entry leaves the store untouched.
func (s *MemoryStore) ReplaceAll(catalogs map[string][]engine.PackOption) error {
	next := make(map[string][]engine.PackOption, len(catalogs))
	for id, options := range catalogs {
		if len(options) == 0 {
			continue
		}
		normalized, err := normalizeCatalog(options)
		if err != nil {
			return err
		}
		next[id] = normalized
	}

	s.mu.Lock()
	s.catalogs = next
	s.mu.Unlock()

	return nil
}

// Snapshot returns a defensive copy of every stored catalog.
func (s *MemoryStore) Snapshot() (map[string][]engine.PackOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]engine.PackOption, len(s.catalogs))
	for id, options := range s.catalogs {
		out[id] = cloneOptions(options)
	}
	return out, nil
}

func normalizeCatalog(options []engine.PackOption) ([]engine.PackOption, error) {
	normalized := engine.NormalizeOptions(options)
	if len(normalized) == 0 || len(normalized) > maxOptionsPerIngredient {
		return nil, ErrInvalidOptions
	}
	return normalized, nil
}

func cloneOptions(src []engine.PackOption) []engine.PackOption {
	if len(src) == 0 {
		return []engine.PackOption{}
	}
	out := make([]engine.PackOption, len(src))
	copy(out, src)
	return out
}
