package ego

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

// weightScale is divided by an ego's rarity to get its draw weight.
const weightScale = 255

// Table indexes ego definitions by ID and slot. It is read-only after
// construction and safe for concurrent use.
type Table struct {
	byID   map[trait.EgoID]*Def
	bySlot map[inventory.Slot][]*Def
	logger *zap.Logger
}

// NewTable builds a Table from defs.
//
// Precondition: logger must be non-nil.
// Postcondition: returns an error on the first duplicate ID.
func NewTable(defs []*Def, logger *zap.Logger) (*Table, error) {
	if logger == nil {
		panic("ego: NewTable precondition violated: logger must be non-nil")
	}
	t := &Table{
		byID:   make(map[trait.EgoID]*Def, len(defs)),
		bySlot: make(map[inventory.Slot][]*Def),
		logger: logger,
	}
	for _, d := range defs {
		if _, exists := t.byID[d.ID]; exists {
			return nil, fmt.Errorf("ego: NewTable: ego ID %q already registered", d.ID)
		}
		t.byID[d.ID] = d
		t.bySlot[d.Slot] = append(t.bySlot[d.Slot], d)
	}
	for _, ds := range t.bySlot {
		sort.Slice(ds, func(i, j int) bool { return ds[i].ID < ds[j].ID })
	}
	return t, nil
}

// Def returns the definition for id and whether it exists.
func (t *Table) Def(id trait.EgoID) (*Def, bool) {
	d, ok := t.byID[id]
	return d, ok
}

// Len returns the number of definitions.
func (t *Table) Len() int {
	return len(t.byID)
}

// MaxPval returns the pval bound of id, or 0 when id is unknown.
func (t *Table) MaxPval(id trait.EgoID) int {
	if d, ok := t.byID[id]; ok {
		return d.MaxPval
	}
	return 0
}

// Weight returns the draw weight of d. Rarity 0 means never drawn.
func Weight(d *Def) int {
	if d.Rarity <= 0 {
		return 0
	}
	return weightScale / d.Rarity
}

// Draw picks an ego for slot with weight 255/rarity among the egos whose
// polarity matches good.
//
// Postcondition: returns trait.NoEgo when no ego of that polarity has weight.
func (t *Table) Draw(r *dice.Roller, slot inventory.Slot, good bool) trait.EgoID {
	total := 0
	for _, d := range t.bySlot[slot] {
		if d.Good() == good {
			total += Weight(d)
		}
	}
	if total == 0 {
		return trait.NoEgo
	}
	value := r.RandInt1(total)
	for _, d := range t.bySlot[slot] {
		if d.Good() != good {
			continue
		}
		value -= Weight(d)
		if value <= 0 {
			return d.ID
		}
	}
	return trait.NoEgo
}
