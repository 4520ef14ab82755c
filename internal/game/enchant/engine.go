package enchant

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

// ErrAlreadyEnchanted is returned when an item that already carries an
// artifact or ego identity is passed to the engine again.
var ErrAlreadyEnchanted = errors.New("enchant: item already enchanted")

// ArtifactGenerator promotes items to artifacts.
type ArtifactGenerator interface {
	// TryMakeFixedArtifact matches item against the unclaimed fixed
	// artifacts and, on success, gives it the artifact's stats.
	TryMakeFixedArtifact(r *dice.Roller, item *inventory.Item, depth int) bool
	// TryMakeRandomArtifact turns item into a procedurally named artifact.
	TryMakeRandomArtifact(r *dice.Roller, item *inventory.Item, depth int, fromScroll bool) bool
}

// EgoTable draws and applies ego templates.
type EgoTable interface {
	// Draw picks a weighted ego for slot; good selects positive-rated egos.
	// Returns trait.NoEgo when the slot has none of the requested polarity.
	Draw(r *dice.Roller, slot inventory.Slot, good bool) trait.EgoID
	// MaxPval returns the pval adjustment bound of the ego, 0 if unknown.
	MaxPval(id trait.EgoID) int
	// Apply applies the effects of item.EgoID to item.
	Apply(r *dice.Roller, item *inventory.Item, depth int)
}

// PostEnchantHook runs content-defined logic on a finished item. r is the
// stream of the pass that produced item; hooks draw from it instead of
// holding a stream of their own.
type PostEnchantHook interface {
	AfterEnchant(r *dice.Roller, item *inventory.Item) error
}

// Recorder observes generation outcomes.
type Recorder interface {
	RecordOutcome(category inventory.Category, tier Tier, outcome Outcome)
	RecordDiagnostic(reason string)
}

// Outcome is the terminal state of an enchantment pass.
type Outcome int

// Outcomes.
const (
	OutcomeNameless Outcome = iota
	OutcomeEgo
	OutcomeRandomArtifact
	OutcomeFixedArtifact
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeEgo:
		return "ego"
	case OutcomeRandomArtifact:
		return "random_artifact"
	case OutcomeFixedArtifact:
		return "fixed_artifact"
	}
	return "nameless"
}

// Luck shifts the tier thresholds.
type Luck int

// Luck values.
const (
	LuckNone Luck = iota
	LuckGood
	LuckBad
)

// ParseLuck parses "", "none", "good" or "bad".
func ParseLuck(s string) (Luck, error) {
	switch s {
	case "", "none":
		return LuckNone, nil
	case "good":
		return LuckGood, nil
	case "bad":
		return LuckBad, nil
	}
	return LuckNone, fmt.Errorf("enchant: unknown luck %q", s)
}

// Personalities the engine reacts to.
const (
	PersonalityMunchkin = "munchkin"
	PersonalitySexy     = "sexy"
)

// Config holds the dungeon and character parameters of a generation run.
type Config struct {
	// ObjGood and ObjGreat cap the good and great thresholds.
	ObjGood  int
	ObjGreat int
	Luck     Luck
	// Personality is the character personality name; see Personality* constants.
	Personality string
	// PlayerLevel feeds the munchkin depth boost.
	PlayerLevel int
}

// DefaultConfig returns the parameters of an ordinary dungeon.
func DefaultConfig() Config {
	return Config{ObjGood: 75, ObjGreat: 20}
}

// Option configures an Engine.
type Option func(*Engine)

// WithHook installs a post-enchant hook.
func WithHook(h PostEnchantHook) Option {
	return func(e *Engine) { e.hook = h }
}

// WithRecorder installs an outcome recorder.
func WithRecorder(rec Recorder) Option {
	return func(e *Engine) { e.recorder = rec }
}

// Engine runs enchantment passes. It holds no per-item state; the random
// stream is passed into every call, so one Engine may serve several
// goroutines that each own a Roller.
type Engine struct {
	cfg       Config
	egos      EgoTable
	artifacts ArtifactGenerator
	hook      PostEnchantHook
	recorder  Recorder
	logger    *zap.Logger
}

// NewEngine creates an Engine.
//
// Precondition: egos, artifacts and logger must be non-nil.
func NewEngine(cfg Config, egos EgoTable, artifacts ArtifactGenerator, logger *zap.Logger, opts ...Option) *Engine {
	if egos == nil || artifacts == nil || logger == nil {
		panic("enchant: NewEngine precondition violated: egos, artifacts and logger must be non-nil")
	}
	e := &Engine{cfg: cfg, egos: egos, artifacts: artifacts, logger: logger}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Config returns the engine's generation parameters.
func (e *Engine) Config() Config {
	return e.cfg
}

// Chances returns the good and great percentages for depth.
//
// Postcondition: depth is clamped to [0, MaxDepth-1] before use.
func (e *Engine) Chances(depth int) (good, great int) {
	depth = ClampDepth(depth)
	good = depth + 10
	if good > e.cfg.ObjGood {
		good = e.cfg.ObjGood
	}
	great = good * 2 / 3
	if e.cfg.Personality != PersonalityMunchkin && great > e.cfg.ObjGreat {
		great = e.cfg.ObjGreat
	}
	switch e.cfg.Luck {
	case LuckGood:
		good += 5
		great += 2
	case LuckBad:
		good -= 5
		great -= 2
	}
	return good, great
}

// RollTier picks the power tier for one pass.
func (e *Engine) RollTier(r *dice.Roller, depth int, mode Mode) Tier {
	good, great := e.Chances(depth)
	power := 0
	if mode.Has(ModeGood) || r.Magik(good) {
		power = 1
		if mode.Has(ModeGreat) || r.Magik(great) {
			power = 2
			if mode.Has(ModeSpecial) {
				power = 3
			}
		}
	} else if r.Magik(good) {
		power = -1
		if r.Magik(great) {
			power = -2
		}
	}
	if mode.Has(ModeCursed) {
		power = ApplyCursedMode(power)
	}
	return TierFromLegacy(power)
}

// artifactRolls returns how many fixed artifact attempts a pass gets.
func artifactRolls(item *inventory.Item, tier Tier, mode Mode) int {
	if mode.Has(ModeNoFixedArtifact) || item.IsFixedArtifact() {
		return 0
	}
	if mode&(ModeGreat|ModeSpecial) != 0 {
		return 4
	}
	if tier.Magnitude() >= 2 {
		return 1
	}
	return 0
}

// EnchantItem runs the single enchantment pass for item at depth.
//
// Precondition: item must not already be an artifact or ego.
// Postcondition: on success at most one of fixed artifact, random artifact
// and ego identity is set, and the returned Outcome names which.
func (e *Engine) EnchantItem(r *dice.Roller, item *inventory.Item, depth int, mode Mode) (Outcome, error) {
	if err := checkFresh(item); err != nil {
		return OutcomeNameless, err
	}
	if e.cfg.Personality == PersonalityMunchkin {
		depth += r.RandInt0(e.cfg.PlayerLevel/2 + 10)
	}
	depth = ClampDepth(depth)
	tier := e.RollTier(r, depth, mode)

	rolls := artifactRolls(item, tier, mode)
	for i := 0; i < rolls; i++ {
		if e.artifacts.TryMakeFixedArtifact(r, item, depth) {
			break
		}
		if e.cfg.Luck == LuckGood && r.OneIn(77) && e.artifacts.TryMakeFixedArtifact(r, item, depth) {
			break
		}
	}
	if item.IsFixedArtifact() {
		return e.finish(r, item, tier, OutcomeFixedArtifact), nil
	}
	return e.enchant(r, item, depth, tier), nil
}

// EnchantAtTier runs the pass with a pre-selected tier, skipping the tier
// roll and fixed artifact attempts. Store stock and tests use it.
//
// Precondition: item must not already be an artifact or ego.
func (e *Engine) EnchantAtTier(r *dice.Roller, item *inventory.Item, depth int, tier Tier) (Outcome, error) {
	if err := checkFresh(item); err != nil {
		return OutcomeNameless, err
	}
	return e.enchant(r, item, ClampDepth(depth), tier), nil
}

func checkFresh(item *inventory.Item) error {
	if item == nil {
		return fmt.Errorf("enchant: nil item")
	}
	if item.IsArtifact() || item.IsEgo() {
		return fmt.Errorf("enchanting %q (%s): %w", item.BaseID, item.InstanceID, ErrAlreadyEnchanted)
	}
	return nil
}

func (e *Engine) enchant(r *dice.Roller, item *inventory.Item, depth int, tier Tier) Outcome {
	if item.Category == inventory.CategoryCloak && item.Sval == inventory.SvalElvenCloak ||
		item.Category == inventory.CategorySoftArmor && item.Sval == inventory.SvalBlackClothes {
		item.Pval = r.RandInt1(4)
	}

	if policy, ok := PolicyFor(item); ok && (tier != TierNormal || policy.alwaysApplies(item)) {
		ApplyCommonNumericEnchant(r, item, tier, depth)
		policy.apply(&pass{e: e, r: r, item: item, depth: depth, tier: tier})
	}

	if item.Category == inventory.CategorySoftArmor && item.Sval == inventory.SvalAbunaiMizugi &&
		e.cfg.Personality == PersonalitySexy {
		item.Pval = 3
		for _, s := range trait.Stats {
			item.Traits.Add(s)
		}
	}

	outcome := OutcomeNameless
	switch {
	case item.RandomArtifact:
		outcome = OutcomeRandomArtifact
	case item.IsEgo():
		e.egos.Apply(r, item, depth)
		outcome = OutcomeEgo
	default:
		applyBaseCurses(item)
	}
	return e.finish(r, item, tier, outcome)
}

// applyBaseCurses carries the template's intrinsic curse and broken state
// onto a nameless item.
func applyBaseCurses(item *inventory.Item) {
	if item.Base == nil {
		return
	}
	if item.Base.Cost == 0 {
		item.Broken = true
	}
	item.Curses.Merge(item.Base.Curses)
}

func (e *Engine) finish(r *dice.Roller, item *inventory.Item, tier Tier, outcome Outcome) Outcome {
	if e.hook != nil {
		if err := e.hook.AfterEnchant(r, item); err != nil {
			e.logger.Warn("post-enchant hook failed",
				zap.String("item", item.BaseID),
				zap.Error(err),
			)
		}
	}
	if e.recorder != nil {
		e.recorder.RecordOutcome(item.Category, tier, outcome)
	}
	e.logger.Debug("item enchanted",
		zap.String("item", item.BaseID),
		zap.String("instance", item.InstanceID),
		zap.Stringer("tier", tier),
		zap.Stringer("outcome", outcome),
		zap.String("ego", string(item.EgoID)),
		zap.String("artifact", item.ArtifactID),
	)
	return outcome
}

// diagnostic reports a content table gap.
func (e *Engine) diagnostic(reason string, item *inventory.Item, fields ...zap.Field) {
	fields = append([]zap.Field{zap.String("item", item.BaseID), zap.String("category", string(item.Category))}, fields...)
	e.logger.Warn(reason, fields...)
	if e.recorder != nil {
		e.recorder.RecordDiagnostic(reason)
	}
}
