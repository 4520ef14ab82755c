package artifact

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

type elementTheme struct {
	res, im, aura trait.Trait
}

var elementThemes = map[trait.Bias]elementTheme{
	trait.BiasAcid: {trait.ResAcid, trait.ImAcid, trait.None},
	trait.BiasElec: {trait.ResElec, trait.ImElec, trait.ShElec},
	trait.BiasFire: {trait.ResFire, trait.ImFire, trait.ShFire},
	trait.BiasCold: {trait.ResCold, trait.ImCold, trait.ShCold},
}

// resistThemes lists the resistances tried, in order, for the remaining
// resistance-bearing biases.
var resistThemes = map[trait.Bias][]trait.Trait{
	trait.BiasPoison:      {trait.ResPois},
	trait.BiasWarrior:     {trait.ResFear},
	trait.BiasNecromantic: {trait.ResNether, trait.ResPois, trait.ResDark},
	trait.BiasChaos:       {trait.ResChaos, trait.ResConf, trait.ResDisen},
}

// randomResistance grants one resistance-like power.
func (g *RandomGenerator) randomResistance(r *dice.Roller, item *inventory.Item) {
	if biasedResistance(r, item) {
		return
	}
	for attempt := 0; attempt < maxRerolls; attempt++ {
		if rollResistance(r, item) {
			return
		}
	}
	g.logger.Warn("resistance re-roll exhausted",
		zap.String("item", item.BaseID),
		zap.Int("attempts", maxRerolls),
	)
}

// biasedResistance applies the themed resistances and reports whether the
// power has been spent.
func biasedResistance(r *dice.Roller, item *inventory.Item) bool {
	if th, ok := elementThemes[item.Bias]; ok {
		if stopAfter(r, item, th.res) {
			return true
		}
		if r.OneIn(biasLuck) && !item.HasTrait(th.im) {
			item.Traits.Add(th.im)
			if !r.OneIn(imLuck) {
				for _, im := range trait.Immunities {
					if im != th.im {
						item.Traits.Remove(im)
					}
				}
			}
			if r.OneIn(2) {
				return true
			}
		}
		if th.aura != trait.None && item.Category.IsArmour() && stopAfter(r, item, th.aura) {
			return true
		}
		return false
	}
	for _, t := range resistThemes[item.Bias] {
		if stopAfter(r, item, t) {
			return true
		}
	}
	return false
}

// rollResistance rolls once on the unbiased resistance table. It reports
// false when the roll asks for a re-roll.
func rollResistance(r *dice.Roller, item *inventory.Item) bool {
	add := func(t trait.Trait) bool {
		item.Traits.Add(t)
		return true
	}
	immunity := func(t trait.Trait, b trait.Bias) bool {
		if !r.OneIn(weirdLuck) {
			return false
		}
		item.Traits.Add(t)
		assignBias(r, item, b, 1)
		return true
	}
	element := func(t trait.Trait, b trait.Bias) bool {
		item.Traits.Add(t)
		assignBias(r, item, b, 1)
		return true
	}

	switch roll := r.RandInt1(42); {
	case roll == 1:
		return immunity(trait.ImAcid, trait.BiasAcid)
	case roll == 2:
		return immunity(trait.ImElec, trait.BiasElec)
	case roll == 3:
		return immunity(trait.ImCold, trait.BiasCold)
	case roll == 4:
		return immunity(trait.ImFire, trait.BiasFire)
	case roll <= 6, roll == 13:
		return element(trait.ResAcid, trait.BiasAcid)
	case roll <= 8, roll == 14:
		return element(trait.ResElec, trait.BiasElec)
	case roll <= 10, roll == 15:
		return element(trait.ResFire, trait.BiasFire)
	case roll <= 12, roll == 16:
		return element(trait.ResCold, trait.BiasCold)
	case roll <= 18:
		item.Traits.Add(trait.ResPois)
		if item.Bias == trait.BiasNone {
			switch {
			case !r.OneIn(4):
				item.SetBias(trait.BiasPoison)
			case r.OneIn(2):
				item.SetBias(trait.BiasNecromantic)
			case r.OneIn(2):
				item.SetBias(trait.BiasRogue)
			}
		}
		return true
	case roll <= 20:
		item.Traits.Add(trait.ResFear)
		assignBias(r, item, trait.BiasWarrior, 3)
		return true
	case roll == 21:
		return add(trait.ResLite)
	case roll == 22:
		return add(trait.ResDark)
	case roll <= 24:
		return add(trait.ResBlind)
	case roll <= 26:
		item.Traits.Add(trait.ResConf)
		assignBias(r, item, trait.BiasChaos, 6)
		return true
	case roll <= 28:
		return add(trait.ResSound)
	case roll <= 30:
		return add(trait.ResShards)
	case roll <= 32:
		item.Traits.Add(trait.ResNether)
		assignBias(r, item, trait.BiasNecromantic, 3)
		return true
	case roll <= 34:
		return add(trait.ResNexus)
	case roll <= 36:
		item.Traits.Add(trait.ResChaos)
		assignBias(r, item, trait.BiasChaos, 2)
		return true
	case roll <= 38:
		return add(trait.ResDisen)
	case roll == 39:
		if !item.Category.IsArmour() {
			return false
		}
		return element(trait.ShElec, trait.BiasElec)
	case roll == 40:
		if !item.Category.IsArmour() {
			return false
		}
		return element(trait.ShFire, trait.BiasFire)
	case roll == 41:
		switch item.Category {
		case inventory.CategoryShield, inventory.CategoryCloak, inventory.CategoryHelm, inventory.CategoryHardArmor:
			return add(trait.Reflect)
		}
		return false
	default:
		if !item.Category.IsArmour() {
			return false
		}
		return element(trait.ShCold, trait.BiasCold)
	}
}

// miscThemes lists the misc powers tried, in order, per bias.
var miscThemes = map[trait.Bias][]trait.Trait{
	trait.BiasRanger:      {trait.SustCon},
	trait.BiasStr:         {trait.SustStr},
	trait.BiasWis:         {trait.SustWis},
	trait.BiasInt:         {trait.SustInt},
	trait.BiasDex:         {trait.SustDex},
	trait.BiasCon:         {trait.SustCon},
	trait.BiasChr:         {trait.SustChr},
	trait.BiasChaos:       {trait.Teleport},
	trait.BiasFire:        {trait.Lite1},
	trait.BiasNecromantic: {trait.HoldExp, trait.SeeInvis},
	trait.BiasMage:        {trait.Telepathy, trait.SeeInvis},
	trait.BiasPriestly:    {trait.HoldExp, trait.SeeInvis},
	trait.BiasRogue:       {trait.FreeAct, trait.SeeInvis},
	trait.BiasWarrior:     {trait.FreeAct, trait.SeeInvis},
}

// randomMisc grants one utility power.
func (g *RandomGenerator) randomMisc(r *dice.Roller, item *inventory.Item) {
	for _, t := range miscThemes[item.Bias] {
		if stopAfter(r, item, t) {
			return
		}
	}
	for attempt := 0; attempt < maxRerolls; attempt++ {
		if rollMisc(r, item) {
			return
		}
	}
	g.logger.Warn("misc power re-roll exhausted",
		zap.String("item", item.BaseID),
		zap.Int("attempts", maxRerolls),
	)
}

func rollMisc(r *dice.Roller, item *inventory.Item) bool {
	sustain := func(t trait.Trait, b trait.Bias) bool {
		item.Traits.Add(t)
		assignBias(r, item, b, 7)
		return true
	}
	switch roll := r.RandInt1(33); {
	case roll == 1:
		return sustain(trait.SustStr, trait.BiasStr)
	case roll == 2:
		return sustain(trait.SustInt, trait.BiasInt)
	case roll == 3:
		return sustain(trait.SustWis, trait.BiasWis)
	case roll == 4:
		return sustain(trait.SustDex, trait.BiasDex)
	case roll == 5:
		return sustain(trait.SustCon, trait.BiasCon)
	case roll == 6:
		return sustain(trait.SustChr, trait.BiasChr)
	case roll <= 8, roll == 14:
		item.Traits.Add(trait.FreeAct)
	case roll == 9:
		item.Traits.Add(trait.HoldExp)
		if item.Bias == trait.BiasNone {
			if r.OneIn(5) {
				item.SetBias(trait.BiasPriestly)
			} else if r.OneIn(6) {
				item.SetBias(trait.BiasNecromantic)
			}
		}
	case roll <= 11:
		item.Traits.Add(trait.Lite1)
	case roll == 12:
		item.Traits.Add(trait.Levitation)
	case roll <= 16:
		item.Traits.Add(trait.SeeInvis)
	case roll <= 18:
		if item.Category.IsWeaponAmmo() && r.OneIn(3) {
			item.Traits.AddOneOf(r, trait.WeakESP)
		} else {
			item.Traits.Add(trait.Telepathy)
			assignBias(r, item, trait.BiasMage, 9)
		}
	case roll <= 20:
		item.Traits.Add(trait.SlowDigest)
	case roll <= 22:
		item.Traits.Add(trait.Regen)
	case roll == 23:
		item.Traits.Add(trait.Teleport)
	case roll <= 26:
		if item.Category.IsArmour() {
			item.ToAC += 4 + r.RandInt1(11)
		} else {
			return false
		}
	case roll <= 29:
		item.ToHit += 4 + r.RandInt1(11)
		item.ToDam += 4 + r.RandInt1(11)
	case roll == 30:
		item.Traits.Add(trait.NoMagic)
	case roll == 31:
		item.Traits.Add(trait.NoTele)
	case roll == 32:
		item.Traits.Add(trait.Warning)
	default:
		if item.Traits.AddOneOf(r, trait.WeakESP) == trait.None {
			return false
		}
	}
	return true
}

type slayTheme struct {
	traits []trait.Trait
	// bladeOnly themes apply only to swords and polearms.
	bladeOnly bool
}

var slayThemes = map[trait.Bias]slayTheme{
	trait.BiasChaos:       {traits: []trait.Trait{trait.Chaotic}},
	trait.BiasPriestly:    {traits: []trait.Trait{trait.Blessed}, bladeOnly: true},
	trait.BiasNecromantic: {traits: []trait.Trait{trait.Vampiric, trait.BrandPois}},
	trait.BiasRanger:      {traits: []trait.Trait{trait.SlayAnimal}},
	trait.BiasRogue:       {traits: []trait.Trait{trait.BrandPois}},
	trait.BiasPoison:      {traits: []trait.Trait{trait.BrandPois}},
	trait.BiasFire:        {traits: []trait.Trait{trait.BrandFire}},
	trait.BiasCold:        {traits: []trait.Trait{trait.BrandCold}},
	trait.BiasElec:        {traits: []trait.Trait{trait.BrandElec}},
	trait.BiasAcid:        {traits: []trait.Trait{trait.BrandAcid}},
	trait.BiasLaw:         {traits: []trait.Trait{trait.SlayEvil, trait.SlayUndead, trait.SlayDemon}},
}

// randomSlay grants one offensive power. Bows get extra might or shots
// instead of slays and brands.
func (g *RandomGenerator) randomSlay(r *dice.Roller, item *inventory.Item) {
	if item.Category == inventory.CategoryBow {
		if r.RandInt1(6) <= 3 {
			item.Traits.Add(trait.XtraMight)
		} else {
			item.Traits.Add(trait.XtraShots)
		}
		assignBias(r, item, trait.BiasRanger, 9)
		return
	}
	if th, ok := slayThemes[item.Bias]; ok {
		blade := item.Category == inventory.CategorySword || item.Category == inventory.CategoryPolearm
		if !th.bladeOnly || blade {
			for _, t := range th.traits {
				if stopAfter(r, item, t) {
					return
				}
			}
		}
	}
	for attempt := 0; attempt < maxRerolls; attempt++ {
		if rollSlay(r, item) {
			return
		}
	}
	g.logger.Warn("slay re-roll exhausted",
		zap.String("item", item.BaseID),
		zap.Int("attempts", maxRerolls),
	)
}

func rollSlay(r *dice.Roller, item *inventory.Item) bool {
	switch roll := r.RandInt1(36); {
	case roll <= 2:
		item.Traits.Add(trait.SlayAnimal)
		assignBias(r, item, trait.BiasRanger, 4)
	case roll <= 4:
		item.Traits.Add(trait.SlayEvil)
		if item.Bias == trait.BiasNone {
			if r.OneIn(2) {
				item.SetBias(trait.BiasLaw)
			} else if r.OneIn(9) {
				item.SetBias(trait.BiasPriestly)
			}
		}
	case roll <= 6:
		item.Traits.Add(trait.SlayUndead)
		assignBias(r, item, trait.BiasPriestly, 9)
	case roll <= 8:
		item.Traits.Add(trait.SlayDemon)
		assignBias(r, item, trait.BiasPriestly, 9)
	case roll <= 10:
		item.Traits.Add(trait.SlayOrc)
	case roll <= 12:
		item.Traits.Add(trait.SlayTroll)
	case roll <= 14:
		item.Traits.Add(trait.SlayGiant)
	case roll <= 16:
		item.Traits.Add(trait.SlayDragon)
	case roll == 17:
		item.Traits.Add(trait.KillDragon)
	case roll <= 19:
		if item.Category != inventory.CategorySword {
			return false
		}
		item.Traits.Add(trait.Vorpal)
		assignBias(r, item, trait.BiasWarrior, 9)
	case roll == 20:
		item.Traits.Add(trait.Impact)
	case roll <= 22:
		item.Traits.Add(trait.BrandFire)
		assignBias(r, item, trait.BiasFire, 1)
	case roll <= 24:
		item.Traits.Add(trait.BrandCold)
		assignBias(r, item, trait.BiasCold, 1)
	case roll <= 26:
		item.Traits.Add(trait.BrandElec)
		assignBias(r, item, trait.BiasElec, 1)
	case roll <= 28:
		item.Traits.Add(trait.BrandAcid)
		assignBias(r, item, trait.BiasAcid, 1)
	case roll <= 30:
		item.Traits.Add(trait.BrandPois)
		if item.Bias == trait.BiasNone {
			switch {
			case !r.OneIn(3):
				item.SetBias(trait.BiasPoison)
			case r.OneIn(6):
				item.SetBias(trait.BiasNecromantic)
			default:
				item.SetBias(trait.BiasRogue)
			}
		}
	case roll == 31:
		item.Traits.Add(trait.Vampiric)
		assignBias(r, item, trait.BiasNecromantic, 1)
	case roll <= 33:
		item.Traits.Add(trait.Chaotic)
		assignBias(r, item, trait.BiasChaos, 1)
	default:
		item.Traits.Add(trait.SlayHuman)
	}
	return true
}

// activations lists the activation keys available per bias. Unlisted biases
// draw from genericActivations.
var activations = map[trait.Bias][]string{
	trait.BiasElec:        {"bolt_elec", "ball_elec", "ball_elec_big"},
	trait.BiasFire:        {"bolt_fire", "ball_fire", "ball_fire_big"},
	trait.BiasCold:        {"bolt_cold", "ball_cold", "ball_cold_big"},
	trait.BiasAcid:        {"bolt_acid", "ball_acid"},
	trait.BiasPoison:      {"ball_pois"},
	trait.BiasChaos:       {"ball_chaos", "teleport", "summon_demon"},
	trait.BiasPriestly:    {"cure_serious", "dispel_evil", "banish_evil", "protect_evil"},
	trait.BiasNecromantic: {"drain_life", "vampire", "summon_undead", "dispel_good"},
	trait.BiasLaw:         {"banish_evil", "dispel_evil", "protect_evil"},
	trait.BiasRogue:       {"identify", "detect_all", "speed", "teleport"},
	trait.BiasMage:        {"magic_missile", "detect_all", "recharge", "teleport"},
	trait.BiasWarrior:     {"berserk", "cure_light", "resist_all"},
	trait.BiasRanger:      {"charm_animal", "summon_animal", "cure_poison", "satisfy"},
}

var genericActivations = []string{
	"light", "map_area", "detect_all", "identify", "cure_light", "satisfy",
	"stone_to_mud", "teleport", "resist_all", "speed", "recall", "rest_life",
}

// giveActivation sets a themed activation on item.
func giveActivation(r *dice.Roller, item *inventory.Item) {
	pool, ok := activations[item.Bias]
	if !ok || r.OneIn(4) {
		pool = genericActivations
	}
	item.Activation = pool[r.RandInt0(len(pool))]
	item.Traits.Add(trait.Activate)
}
