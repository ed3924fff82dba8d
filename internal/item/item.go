package item

import (
	"sort"
	"sync"

	qcerr "github.com/KirkDiggler/quakecraft-arsenal/internal/errors"
	"github.com/KirkDiggler/quakecraft-arsenal/internal/identifier"
)

// Item is a registered item type. Handles are owned by a Registry and
// compared by pointer; two *Item values are the same item iff they are equal.
type Item struct {
	id           identifier.Identifier
	maxStackSize int
}

// ID returns the registry identifier of the item
func (i *Item) ID() identifier.Identifier {
	return i.id
}

// MaxStackSize returns the largest count a single stack of this item may hold
func (i *Item) MaxStackSize() int {
	return i.maxStackSize
}

func (i *Item) String() string {
	if i == nil {
		return "<nil item>"
	}
	return i.id.String()
}

// Registry is the process-wide table of item types
type Registry struct {
	mu    sync.RWMutex
	items map[identifier.Identifier]*Item
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		items: make(map[identifier.Identifier]*Item),
	}
}

// Register adds a new item type with the given max stack size.
// A non-positive size is stored as 1.
func (r *Registry) Register(id identifier.Identifier, maxStackSize int) (*Item, error) {
	if id.IsZero() {
		return nil, qcerr.InvalidArgument("item identifier is required")
	}
	if maxStackSize <= 0 {
		maxStackSize = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; exists {
		return nil, qcerr.AlreadyExistsf("item '%s' already registered", id).
			WithMeta("item_id", id.String())
	}

	it := &Item{id: id, maxStackSize: maxStackSize}
	r.items[id] = it
	return it, nil
}

// Get returns the handle for id
func (r *Registry) Get(id identifier.Identifier) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return nil, qcerr.NotFoundf("item '%s' not registered", id).
			WithMeta("item_id", id.String())
	}
	return it, nil
}

// All returns every registered item ordered by identifier
func (r *Registry) All() []*Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].id.String() < out[j].id.String()
	})
	return out
}

// Vanilla registers the hoe items the stock weapons are carried on
func Vanilla() *Registry {
	r := NewRegistry()
	for _, path := range []string{"wooden_hoe", "stone_hoe", "iron_hoe", "golden_hoe", "diamond_hoe", "netherite_hoe"} {
		if _, err := r.Register(identifier.Identifier{Namespace: identifier.DefaultNamespace, Path: path}, 1); err != nil {
			panic(err)
		}
	}
	for _, path := range []string{"arrow", "firework_rocket"} {
		if _, err := r.Register(identifier.Identifier{Namespace: identifier.DefaultNamespace, Path: path}, 64); err != nil {
			panic(err)
		}
	}
	return r
}
