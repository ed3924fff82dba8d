package weapon

import (
	"sort"
	"sync"

	qcerr "github.com/KirkDiggler/quakecraft-arsenal/internal/errors"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/item"
)

// Registry holds the weapons available to a match
type Registry struct {
	mu      sync.RWMutex
	weapons map[identifier.Identifier]*Weapon
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		weapons: make(map[identifier.Identifier]*Weapon),
	}
}

// Register adds w; identifiers must be unique
func (r *Registry) Register(w *Weapon) error {
	if w == nil {
		return qcerr.InvalidArgument("weapon cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.weapons[w.id]; exists {
		return qcerr.AlreadyExistsf("weapon '%s' already registered", w.id).
			WithMeta("weapon_id", w.id.String())
	}
	r.weapons[w.id] = w
	return nil
}

// Replace registers w, overwriting any weapon with the same identifier
func (r *Registry) Replace(w *Weapon) error {
	if w == nil {
		return qcerr.InvalidArgument("weapon cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.weapons[w.id] = w
	return nil
}

// Get returns the weapon registered under id
func (r *Registry) Get(id identifier.Identifier) (*Weapon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.weapons[id]
	if !ok {
		return nil, qcerr.NotFoundf("weapon '%s' not registered", id).
			WithMeta("weapon_id", id.String())
	}
	return w, nil
}

// All returns the registered weapons ordered by identifier
func (r *Registry) All() []*Weapon {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Weapon, 0, len(r.weapons))
	for _, w := range r.weapons {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].id.String() < out[j].id.String()
	})
	return out
}

// ForStack returns the weapon a held stack corresponds to. When several
// weapons share an item the first by identifier wins.
func (r *Registry) ForStack(stack item.Stack) (*Weapon, bool) {
	if stack.IsEmpty() {
		return nil, false
	}
	for _, w := range r.All() {
		if w.MatchesStack(stack) {
			return w, true
		}
	}
	return nil, false
}
