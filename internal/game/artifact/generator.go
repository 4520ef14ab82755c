package artifact

import (
	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
)

// Generator combines the fixed artifact registry and the random generator
// behind the interface the enchantment engine consumes.
type Generator struct {
	fixed  *Registry
	random *RandomGenerator
}

// NewGenerator creates a Generator.
//
// Precondition: fixed and random must be non-nil.
func NewGenerator(fixed *Registry, random *RandomGenerator) *Generator {
	if fixed == nil || random == nil {
		panic("artifact: NewGenerator precondition violated: fixed and random must be non-nil")
	}
	return &Generator{fixed: fixed, random: random}
}

// Registry returns the fixed artifact registry.
func (g *Generator) Registry() *Registry {
	return g.fixed
}

// TryMakeFixedArtifact tries to realize a fixed artifact matching item.
func (g *Generator) TryMakeFixedArtifact(r *dice.Roller, item *inventory.Item, depth int) bool {
	return g.fixed.Realize(r, item, depth)
}

// TryMakeRandomArtifact turns item into a random artifact.
func (g *Generator) TryMakeRandomArtifact(r *dice.Roller, item *inventory.Item, depth int, fromScroll bool) bool {
	return g.random.Make(r, item, depth, fromScroll)
}
