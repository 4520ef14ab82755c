package inventory

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownBaseItem is returned when a base item id is not registered.
var ErrUnknownBaseItem = errors.New("inventory: unknown base item")

// Registry holds all loaded base item definitions indexed by ID.
type Registry struct {
	items map[string]*BaseItemDef
}

// NewRegistry returns an empty Registry.
//
// Postcondition: the internal map is initialised.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*BaseItemDef)}
}

// NewRegistryFromDefs registers every def.
//
// Postcondition: returns an error on the first duplicate ID.
func NewRegistryFromDefs(defs []*BaseItemDef) (*Registry, error) {
	r := NewRegistry()
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds d to the registry.
//
// Precondition:  d must not be nil.
// Postcondition: Lookup(d.ID) returns (d, true); returns error if d.ID already registered.
func (r *Registry) Register(d *BaseItemDef) error {
	if _, exists := r.items[d.ID]; exists {
		return fmt.Errorf("inventory: Registry.Register: base item ID %q already registered", d.ID)
	}
	r.items[d.ID] = d
	return nil
}

// Lookup returns the BaseItemDef for id and whether it was found.
func (r *Registry) Lookup(id string) (*BaseItemDef, bool) {
	d, ok := r.items[id]
	return d, ok
}

// NewItem creates an unenchanted Item from the template id.
//
// Postcondition: returns an error wrapping ErrUnknownBaseItem if id is not registered.
func (r *Registry) NewItem(id string) (*Item, error) {
	d, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBaseItem, id)
	}
	return NewItem(d), nil
}

// All returns every registered definition sorted by ID.
func (r *Registry) All() []*BaseItemDef {
	out := make([]*BaseItemDef, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByCategory returns the definitions of category c sorted by ID.
func (r *Registry) ByCategory(c Category) []*BaseItemDef {
	var out []*BaseItemDef
	for _, d := range r.All() {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.items)
}
