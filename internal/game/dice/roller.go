package dice

import (
	"math"

	"go.uber.org/zap"
)

// normalResolution is the granularity of the uniform draws fed to Normal.
const normalResolution = 1 << 30

// Roller is the explicit random handle passed to every generation call.
// It wraps a Source with the roguelike roll primitives and logs dice rolls at
// debug level.
//
// A Roller is as safe for concurrent use as its Source.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil || logger == nil {
		panic("dice: NewRoller precondition violated: src and logger must be non-nil")
	}
	return &Roller{src: src, logger: logger}
}

// Logger returns the logger the roller reports to.
func (r *Roller) Logger() *zap.Logger {
	return r.logger
}

// Intn returns a value in [0, n). It lets a Roller stand in for a Source.
//
// Precondition: n > 0.
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}

// RandInt0 returns a value in [0, n), or 0 when n <= 0.
func (r *Roller) RandInt0(n int) int {
	if n <= 0 {
		return 0
	}
	return r.src.Intn(n)
}

// RandInt1 returns a value in [1, n], or 1 when n <= 1.
func (r *Roller) RandInt1(n int) int {
	return r.RandInt0(n) + 1
}

// OneIn reports true with probability 1/n. Values of n <= 1 always succeed.
func (r *Roller) OneIn(n int) bool {
	return r.RandInt0(n) == 0
}

// Magik reports true with probability p percent.
func (r *Roller) Magik(p int) bool {
	return r.RandInt0(100) < p
}

// Range returns a value in [lo, hi]. When hi < lo, lo is returned.
func (r *Roller) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.src.Intn(hi-lo+1)
}

// Normal returns a normally distributed value with the given mean and
// standard deviation, rounded to the nearest integer.
//
// Postcondition: Returns mean exactly when stand < 1.
func (r *Roller) Normal(mean, stand int) int {
	if stand < 1 {
		return mean
	}
	u1 := (float64(r.src.Intn(normalResolution)) + 1) / normalResolution
	u2 := float64(r.src.Intn(normalResolution)) / normalResolution
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + int(math.Round(z*float64(stand)))
}

// Roll rolls d and logs the individual dice at debug level.
//
// Postcondition: Returns a total in [d.Count, d.Max()], or 0 for the zero Dice.
func (r *Roller) Roll(d Dice) int {
	if d.IsZero() {
		return 0
	}
	rolled := make([]int, d.Count)
	total := 0
	for i := range rolled {
		rolled[i] = r.src.Intn(d.Sides) + 1
		total += rolled[i]
	}
	r.logger.Debug("dice roll",
		zap.String("expression", d.String()),
		zap.Ints("dice", rolled),
		zap.Int("total", total),
	)
	return total
}

// levelScale is the depth at which MBonus is centred on its maximum.
const levelScale = 128

// MBonus returns a depth-scaled bonus in [0, max]. The mean grows linearly
// with level and reaches max at level 128; the spread is a quarter of max.
//
// Postcondition: 0 <= result <= max; returns 0 when max <= 0.
func (r *Roller) MBonus(max, level int) int {
	if max <= 0 {
		return 0
	}
	if level < 0 {
		level = 0
	}
	if level > levelScale-1 {
		level = levelScale - 1
	}
	bonus := max * level / levelScale
	if r.RandInt0(levelScale) < (max*level)%levelScale {
		bonus++
	}
	stand := max / 4
	if r.RandInt0(4) < max%4 {
		stand++
	}
	v := r.Normal(bonus, stand)
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
