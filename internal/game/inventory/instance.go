package inventory

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

// Item is one generated object. It is created from a BaseItemDef and then
// mutated in place by exactly one enchantment pass.
//
// Invariant: once Bias is non-none it never changes (see SetBias).
// Invariant: at most one of ArtifactID, RandomArtifact and EgoID is set.
type Item struct {
	InstanceID string   `yaml:"instance_id"`
	BaseID     string   `yaml:"base_id"`
	Name       string   `yaml:"name"`
	Category   Category `yaml:"category"`
	Sval       string   `yaml:"sval,omitempty"`

	ToHit  int       `yaml:"to_hit"`
	ToDam  int       `yaml:"to_dam"`
	ToAC   int       `yaml:"to_ac"`
	Pval   int       `yaml:"pval"`
	BaseAC int       `yaml:"ac"`
	Dice   dice.Dice `yaml:"damage,omitempty"`
	Weight int       `yaml:"weight"`

	// BaseTraits are inherited from the template; Traits are granted by
	// enchantment.
	BaseTraits trait.Set      `yaml:"base_traits,omitempty"`
	Traits     trait.Set      `yaml:"traits,omitempty"`
	Curses     trait.CurseSet `yaml:"curses,omitempty"`
	Bias       trait.Bias     `yaml:"bias,omitempty"`

	EgoID          trait.EgoID `yaml:"ego,omitempty"`
	ArtifactID     string      `yaml:"artifact,omitempty"`
	RandomArtifact bool        `yaml:"random_artifact,omitempty"`
	ArtifactName   string      `yaml:"artifact_name,omitempty"`
	Activation     string      `yaml:"activation,omitempty"`
	Broken         bool        `yaml:"broken,omitempty"`

	Base *BaseItemDef `yaml:"-"`
}

// NewItem creates a fresh, unenchanted instance of def.
//
// Precondition: def must be non-nil and valid.
// Postcondition: the returned Item has a new InstanceID and the template's stats.
func NewItem(def *BaseItemDef) *Item {
	if def == nil {
		panic("inventory: NewItem precondition violated: def must be non-nil")
	}
	return &Item{
		InstanceID: uuid.NewString(),
		BaseID:     def.ID,
		Name:       def.Name,
		Category:   def.Category,
		Sval:       def.Sval,
		ToHit:      def.ToHit,
		ToDam:      def.ToDam,
		ToAC:       def.ToAC,
		Pval:       def.Pval,
		BaseAC:     def.AC,
		Dice:       def.Damage,
		Weight:     def.Weight,
		BaseTraits: def.Traits,
		Base:       def,
	}
}

// Level returns the template's native depth, or 0 without a template.
func (it *Item) Level() int {
	if it.Base == nil {
		return 0
	}
	return it.Base.Level
}

// HasTrait reports whether t is inherited or granted.
func (it *Item) HasTrait(t trait.Trait) bool {
	return it.Traits.Has(t) || it.BaseTraits.Has(t)
}

// AllTraits returns the union of inherited and granted traits.
func (it *Item) AllTraits() trait.Set {
	s := it.BaseTraits
	s.Union(it.Traits)
	return s
}

// SetBias assigns b when no bias is set yet.
//
// Postcondition: returns true iff the item's bias equals b afterwards. A
// non-none bias is never replaced.
func (it *Item) SetBias(b trait.Bias) bool {
	if it.Bias == trait.BiasNone {
		it.Bias = b
	}
	return it.Bias == b
}

// IsFixedArtifact reports whether the item realized a predefined artifact.
func (it *Item) IsFixedArtifact() bool {
	return it.ArtifactID != ""
}

// IsArtifact reports whether the item is a fixed or random artifact.
func (it *Item) IsArtifact() bool {
	return it.IsFixedArtifact() || it.RandomArtifact
}

// IsEgo reports whether the item carries an ego.
func (it *Item) IsEgo() bool {
	return it.EgoID != trait.NoEgo
}

// IsCursed reports whether any curse flag is set.
func (it *Item) IsCursed() bool {
	return it.Curses.Any()
}

// DisplayName returns the item's name with its artifact title, if any.
func (it *Item) DisplayName() string {
	switch {
	case it.ArtifactName != "":
		return it.Name + " " + it.ArtifactName
	case it.IsEgo():
		return it.Name + " (" + string(it.EgoID) + ")"
	}
	return it.Name
}
