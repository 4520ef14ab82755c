package artifact

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/enchant"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

const (
	cursedOneIn      = 13
	weirdLuck        = 12
	biasLuck         = 20
	imLuck           = 7
	activationChance = 3
	// maxRerolls bounds the "roll again" entries of the random tables.
	maxRerolls = 64
	// maxTrim bounds the to-hit/to-dam trimming loops for armour.
	maxTrim = 1000
)

// RandomGenerator turns items into procedurally statted, procedurally
// named artifacts.
type RandomGenerator struct {
	logger *zap.Logger
}

// NewRandomGenerator creates a RandomGenerator.
//
// Precondition: logger must be non-nil.
func NewRandomGenerator(logger *zap.Logger) *RandomGenerator {
	if logger == nil {
		panic("artifact: NewRandomGenerator precondition violated: logger must be non-nil")
	}
	return &RandomGenerator{logger: logger}
}

// Make promotes item to a random artifact. fromScroll marks artifacts made by
// the player, which are never cursed.
//
// Postcondition: returns false and leaves item unchanged if it is already an
// artifact; otherwise item.RandomArtifact is set, item has no ego and carries
// a generated name.
func (g *RandomGenerator) Make(r *dice.Roller, item *inventory.Item, depth int, fromScroll bool) bool {
	if item.IsArtifact() {
		return false
	}
	item.EgoID = trait.NoEgo
	hasPval := item.Pval != 0

	powers := r.RandInt1(5) + 1
	cursed := !fromScroll && r.OneIn(cursedOneIn)
	for r.OneIn(powers) || r.OneIn(7) || r.OneIn(10) {
		powers++
	}
	if !cursed && r.OneIn(weirdLuck) {
		powers *= 2
	}
	if cursed {
		powers /= 2
	}

	kinds := 5
	if item.Category.IsWeaponAmmo() {
		kinds = 7
	}
	for i := 0; i < powers; i++ {
		switch r.RandInt1(kinds) {
		case 1, 2:
			enchant.AddPvalTrait(r, item)
			hasPval = true
		case 3, 4:
			if r.OneIn(2) && item.Category.IsWeaponAmmo() && item.Category != inventory.CategoryBow {
				if cursed && !r.OneIn(cursedOneIn) {
					break
				}
				if r.OneIn(13) {
					if r.OneIn(item.Dice.Sides + 4) {
						item.Dice.Sides++
					}
				} else if r.OneIn(item.Dice.Count + 1) {
					item.Dice.Count++
				}
			} else {
				g.randomResistance(r, item)
			}
		case 5:
			g.randomMisc(r, item)
		case 6, 7:
			g.randomSlay(r, item)
		}
	}

	if hasPval {
		if item.HasTrait(trait.Blows) {
			item.Pval = r.RandInt1(2)
			if item.Sval == inventory.SvalHayabusa {
				item.Pval++
			}
		} else {
			for {
				item.Pval++
				if item.Pval >= r.RandInt1(5) && !r.OneIn(item.Pval) {
					break
				}
			}
		}
		if item.Pval > 4 && !r.OneIn(weirdLuck) {
			item.Pval = 4
		}
	}

	switch {
	case item.Category.IsArmour():
		item.ToAC += r.RandInt1(headroom(item.ToAC))
	case item.Category.IsWeaponAmmo():
		item.ToHit += r.RandInt1(headroom(item.ToHit))
		item.ToDam += r.RandInt1(headroom(item.ToDam))
		if item.HasTrait(trait.Wis) && item.Pval > 0 {
			item.Traits.Add(trait.Blessed)
		}
	}
	for _, t := range []trait.Trait{trait.IgnoreAcid, trait.IgnoreElec, trait.IgnoreFire, trait.IgnoreCold} {
		item.Traits.Add(t)
	}

	if cursed {
		curse(r, item)
	}
	chance := activationChance
	if item.Category.IsArmour() {
		chance *= 2
	}
	if !cursed && r.OneIn(chance) {
		giveActivation(r, item)
	}

	if item.Category.IsArmour() {
		trimArmourOffence(r, item)
	}
	if (item.Bias == trait.BiasMage || item.Bias == trait.BiasInt) && item.Category == inventory.CategoryGloves {
		item.Traits.Add(trait.FreeAct)
	}

	level := powerLevel(item)
	if cursed {
		level = 0
	}
	item.RandomArtifact = true
	item.ArtifactName = Name(r, item.Category.IsArmour(), level)

	g.logger.Debug("random artifact created",
		zap.String("item", item.BaseID),
		zap.String("name", item.ArtifactName),
		zap.Int("powers", powers),
		zap.Bool("cursed", cursed),
		zap.Stringer("bias", item.Bias),
		zap.Strings("traits", item.Traits.Names()),
	)
	return true
}

// headroom is the bound of the final plus roll: 20-v below 20, else 1.
func headroom(v int) int {
	if v > 19 {
		return 1
	}
	return 20 - v
}

func trimArmourOffence(r *dice.Roller, item *inventory.Item) {
	for i := 0; i < maxTrim && item.ToDam+item.ToHit > 20; i++ {
		if r.OneIn(item.ToDam) && r.OneIn(item.ToHit) {
			break
		}
		item.ToDam -= r.RandInt0(3)
		item.ToHit -= r.RandInt0(3)
	}
	for i := 0; i < maxTrim && item.ToDam+item.ToHit > 10; i++ {
		if r.OneIn(item.ToDam) || r.OneIn(item.ToHit) {
			break
		}
		item.ToDam -= r.RandInt0(3)
		item.ToHit -= r.RandInt0(3)
	}
}

// curse turns the pluses of item into minuses and adds curse traits.
func curse(r *dice.Roller, item *inventory.Item) {
	negate := func(v int) int {
		if v > 0 {
			return -(v + r.RandInt1(4))
		}
		return v
	}
	item.Pval = negate(item.Pval)
	item.ToAC = negate(item.ToAC)
	item.ToHit = negate(item.ToHit)
	item.ToDam = negate(item.ToDam)
	item.Curses.Set(trait.HeavyCurse)
	item.Curses.Set(trait.Cursed)
	item.Traits.Remove(trait.Blessed)

	if r.OneIn(4) {
		item.Curses.Set(trait.PermaCurse)
	}
	if r.OneIn(3) {
		item.Traits.Add(trait.TyCurse)
	}
	if r.OneIn(2) {
		item.Traits.Add(trait.Aggravate)
	}
	if r.OneIn(3) {
		item.Traits.Add(trait.DrainExp)
	}
	if r.OneIn(6) {
		item.Traits.Add(trait.AddLCurse)
	}
	if r.OneIn(9) {
		item.Traits.Add(trait.AddHCurse)
	}
	if r.OneIn(9) {
		item.Traits.Add(trait.DrainHP)
	}
	if r.OneIn(9) {
		item.Traits.Add(trait.DrainMana)
	}
	if r.OneIn(2) {
		item.Traits.Add(trait.Teleport)
	} else if r.OneIn(3) {
		item.Traits.Add(trait.NoTele)
	}
	if r.OneIn(3) {
		item.Traits.Add(trait.NoMagic)
	}
}

// powerLevel rates a finished artifact from 1 (minor) to 3 (major).
func powerLevel(item *inventory.Item) int {
	score := item.AllTraits().Len()*1000 + item.Pval*1500 + (item.ToHit+item.ToDam+item.ToAC)*200
	switch {
	case score < 10000:
		return 1
	case score < 30000:
		return 2
	}
	return 3
}

// stopAfter adds t when absent and then ends the caller on a coin flip.
func stopAfter(r *dice.Roller, item *inventory.Item, t trait.Trait) bool {
	if item.HasTrait(t) {
		return false
	}
	item.Traits.Add(t)
	return r.OneIn(2)
}

// assignBias sets b on an unbiased item with probability 1/oneIn.
func assignBias(r *dice.Roller, item *inventory.Item, b trait.Bias, oneIn int) {
	if item.Bias == trait.BiasNone && r.OneIn(oneIn) {
		item.SetBias(b)
	}
}
