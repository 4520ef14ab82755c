package artifact

import (
	"strings"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
)

var syllables = []string{
	"ab", "ag", "al", "an", "ar", "ash", "bar", "bel", "bor", "cal", "dor", "dur",
	"el", "en", "er", "fal", "gal", "gil", "gor", "ha", "hel", "ith", "kal", "kor",
	"la", "lin", "lor", "mar", "mir", "mor", "na", "nar", "nin", "or", "ra", "ran",
	"ril", "ros", "sa", "sil", "tar", "thal", "thor", "tin", "ul", "ur", "val", "vor",
}

var doomEpithets = []string{
	"Woe", "Ruin", "Despair", "Sorrow", "the Grave", "Rot", "Blight", "Lament",
}

// Name returns a generated artifact name. Stronger artifacts get longer
// names; level 0 marks a cursed artifact.
//
// Postcondition: the result is non-empty and starts with "of " or a quote.
func Name(r *dice.Roller, armour bool, level int) string {
	if level <= 0 {
		return "of " + doomEpithets[r.RandInt0(len(doomEpithets))]
	}
	n := 1 + r.RandInt1(level+1)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(syllables[r.RandInt0(len(syllables))])
	}
	word := b.String()
	word = strings.ToUpper(word[:1]) + word[1:]
	if armour || r.OneIn(2) {
		return "of " + word
	}
	return "'" + word + "'"
}
