// Package forge produces batches of enchanted items from base templates.
package forge

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/enchant"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
)

// ErrNoTemplates is returned when a request matches no base item.
var ErrNoTemplates = errors.New("forge: no base items match request")

// Request describes one batch.
type Request struct {
	Count int
	// Depth is the dungeon level; a negative depth draws one per item from
	// [0, MaxDepth).
	Depth    int
	MaxDepth int
	Mode     enchant.Mode
	// BaseID pins the template. When empty, Category (if set) narrows the
	// random template choice.
	BaseID   string
	Category inventory.Category
}

// Forged is one generated item with the parameters that produced it.
type Forged struct {
	Depth   int    `yaml:"depth"`
	Outcome string `yaml:"outcome"`
	// OutOfDepth marks a pinned template whose native level is deeper than
	// Depth.
	OutOfDepth bool            `yaml:"out_of_depth,omitempty"`
	Item       *inventory.Item `yaml:"item"`
}

// Forge pairs a template registry with an enchantment engine.
type Forge struct {
	items  *inventory.Registry
	engine *enchant.Engine
	logger *zap.Logger
}

// New creates a Forge.
//
// Precondition: items, engine and logger must be non-nil.
func New(items *inventory.Registry, engine *enchant.Engine, logger *zap.Logger) *Forge {
	if items == nil || engine == nil || logger == nil {
		panic("forge: New precondition violated: items, engine and logger must be non-nil")
	}
	return &Forge{items: items, engine: engine, logger: logger}
}

func (f *Forge) templates(req Request) ([]*inventory.BaseItemDef, error) {
	if req.BaseID != "" {
		def, ok := f.items.Lookup(req.BaseID)
		if !ok {
			return nil, fmt.Errorf("forge: base item %q: %w", req.BaseID, inventory.ErrUnknownBaseItem)
		}
		return []*inventory.BaseItemDef{def}, nil
	}
	var defs []*inventory.BaseItemDef
	if req.Category != "" {
		defs = f.items.ByCategory(req.Category)
	} else {
		defs = f.items.All()
	}
	if len(defs) == 0 {
		return nil, ErrNoTemplates
	}
	return defs, nil
}

// atDepth returns the templates whose native level is at most depth, or defs
// unchanged when none is that shallow.
func atDepth(defs []*inventory.BaseItemDef, depth int) []*inventory.BaseItemDef {
	var pool []*inventory.BaseItemDef
	for _, d := range defs {
		if d.Level <= depth {
			pool = append(pool, d)
		}
	}
	if len(pool) == 0 {
		return defs
	}
	return pool
}

// Batch generates req.Count items. Random template picks only consider
// templates native to the item's depth when any exist.
//
// Precondition: req.Count >= 0.
// Postcondition: returns exactly req.Count items, or an error and none.
func (f *Forge) Batch(r *dice.Roller, req Request) ([]Forged, error) {
	if req.Count < 0 {
		return nil, fmt.Errorf("forge: count must be >= 0, got %d", req.Count)
	}
	defs, err := f.templates(req)
	if err != nil {
		return nil, err
	}
	maxDepth := req.MaxDepth
	if maxDepth <= 0 || maxDepth > enchant.MaxDepth {
		maxDepth = enchant.MaxDepth
	}

	out := make([]Forged, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		depth := req.Depth
		if depth < 0 {
			depth = r.RandInt0(maxDepth)
		}
		pool := atDepth(defs, depth)
		def := pool[r.RandInt0(len(pool))]
		item := inventory.NewItem(def)
		outcome, err := f.engine.EnchantItem(r, item, depth, req.Mode)
		if err != nil {
			return nil, fmt.Errorf("forge: item %d (%s): %w", i, def.ID, err)
		}
		out = append(out, Forged{
			Depth:      depth,
			Outcome:    outcome.String(),
			OutOfDepth: item.Level() > depth,
			Item:       item,
		})
	}
	f.logger.Info("batch forged",
		zap.Int("count", len(out)),
		zap.String("mode", req.Mode.String()),
		zap.Int("depth", req.Depth),
	)
	return out, nil
}
