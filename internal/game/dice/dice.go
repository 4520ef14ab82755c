// Package dice provides the randomness abstraction and the roll primitives
// used by the item generation engine.
package dice

import "fmt"

// Dice is a damage dice pair such as 2d5.
//
// Invariant: Count >= 0 and Sides >= 0; the zero value means "no dice".
type Dice struct {
	Count int
	Sides int
}

// IsZero reports whether d carries no dice.
func (d Dice) IsZero() bool {
	return d.Count == 0 || d.Sides == 0
}

// Max returns the largest total d can produce.
//
// Postcondition: Returns Count * Sides.
func (d Dice) Max() int {
	return d.Count * d.Sides
}

// String returns the canonical "NdS" form, or "" for the zero value.
func (d Dice) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%dd%d", d.Count, d.Sides)
}

// Source is the randomness provider for every roll.
//
// Implementations returned by NewCryptoSource are safe for concurrent use;
// seeded sources are not and must be owned by a single generation stream.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
