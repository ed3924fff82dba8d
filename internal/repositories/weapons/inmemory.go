package weapons

import (
	"context"
	"sort"
	"sync"

	qcerr "github.com/KirkDiggler/quakecraft-arsenal/internal/errors"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
)

// InMemoryRepository keeps definitions in process memory.
// Useful for testing and for running without Redis.
type InMemoryRepository struct {
	mu           sync.RWMutex
	definitions  map[identifier.Identifier]*Definition
	timeProvider TimeProvider
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository(timeProvider TimeProvider) Repository {
	if timeProvider == nil {
		timeProvider = SystemTime()
	}
	return &InMemoryRepository{
		definitions:  make(map[identifier.Identifier]*Definition),
		timeProvider: timeProvider,
	}
}

func (r *InMemoryRepository) Save(_ context.Context, def *Definition) error {
	if err := validate(def); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to avoid external modifications
	stored := *def
	stored.UpdatedAt = r.timeProvider.Now()
	r.definitions[def.ID] = &stored
	def.UpdatedAt = stored.UpdatedAt

	return nil
}

func (r *InMemoryRepository) Get(_ context.Context, id identifier.Identifier) (*Definition, error) {
	if id.IsZero() {
		return nil, qcerr.InvalidArgument("definition ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[id]
	if !ok {
		return nil, qcerr.NotFoundf("definition '%s' not found", id).
			WithMeta("weapon_id", id.String())
	}

	out := *def
	return &out, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Definition, 0, len(r.definitions))
	for _, def := range r.definitions {
		c := *def
		out = append(out, &c)
	}
	sortDefinitions(out)
	return out, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id identifier.Identifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.definitions[id]; !ok {
		return qcerr.NotFoundf("definition '%s' not found", id).
			WithMeta("weapon_id", id.String())
	}
	delete(r.definitions, id)
	return nil
}

func sortDefinitions(defs []*Definition) {
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID.String() < defs[j].ID.String()
	})
}
