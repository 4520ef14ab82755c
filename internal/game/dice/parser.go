package dice

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse parses a damage dice string of the form "NdS" (e.g. "2d5", "d8").
// The empty string parses to the zero Dice.
//
// Precondition: none.
// Postcondition: Returns Dice with Count >= 1 and Sides >= 1, the zero Dice for
// "", or a descriptive error.
func Parse(expr string) (Dice, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Dice{}, nil
	}

	dIdx := strings.Index(s, "d")
	if dIdx < 0 {
		return Dice{}, fmt.Errorf("dice: missing 'd' in expression %q", expr)
	}

	count := 1
	if countStr := s[:dIdx]; countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil {
			return Dice{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
		if n <= 0 {
			return Dice{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", expr)
		}
		count = n
	}

	sides, err := strconv.Atoi(s[dIdx+1:])
	if err != nil {
		return Dice{}, fmt.Errorf("dice: invalid die sides in %q: %w", expr, err)
	}
	if sides < 1 {
		return Dice{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 1", expr)
	}

	return Dice{Count: count, Sides: sides}, nil
}

// MustParse parses expr and panics on error. Useful for test fixtures.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Dice {
	d, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return d
}

// UnmarshalYAML decodes a scalar "NdS" node into d.
func (d *Dice) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("dice: expected scalar at line %d: %w", node.Line, err)
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes d in its "NdS" form.
func (d Dice) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
