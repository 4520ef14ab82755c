package trait

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Curse is a curse severity flag.
type Curse uint8

// Curse severities, weakest first.
const (
	Cursed Curse = 1 << iota
	HeavyCurse
	PermaCurse
)

var curseNames = []struct {
	c    Curse
	name string
}{
	{Cursed, "cursed"},
	{HeavyCurse, "heavy_curse"},
	{PermaCurse, "perma_curse"},
}

// String returns the content name of a single curse flag.
func (c Curse) String() string {
	for _, cn := range curseNames {
		if cn.c == c {
			return cn.name
		}
	}
	return fmt.Sprintf("curse(%d)", uint8(c))
}

// ParseCurse returns the Curse named name.
func ParseCurse(name string) (Curse, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, cn := range curseNames {
		if cn.name == n {
			return cn.c, nil
		}
	}
	return 0, fmt.Errorf("trait: unknown curse %q", name)
}

// CurseSet holds the curse flags of an item. The zero value is uncursed.
type CurseSet uint8

// Has reports whether c is set.
func (s CurseSet) Has(c Curse) bool {
	return uint8(s)&uint8(c) != 0
}

// Set turns on c.
func (s *CurseSet) Set(c Curse) {
	*s |= CurseSet(c)
}

// Merge turns on every flag of o.
func (s *CurseSet) Merge(o CurseSet) {
	*s |= o
}

// Any reports whether any curse is set.
func (s CurseSet) Any() bool {
	return s != 0
}

// Names returns the set flags in severity order.
func (s CurseSet) Names() []string {
	var out []string
	for _, cn := range curseNames {
		if s.Has(cn.c) {
			out = append(out, cn.name)
		}
	}
	return out
}

// UnmarshalYAML decodes a sequence of curse names.
func (s *CurseSet) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	if err := node.Decode(&names); err != nil {
		return fmt.Errorf("trait: expected a list of curse names at line %d: %w", node.Line, err)
	}
	var out CurseSet
	for _, n := range names {
		c, err := ParseCurse(n)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		out.Set(c)
	}
	*s = out
	return nil
}

// MarshalYAML encodes s as a list of names.
func (s CurseSet) MarshalYAML() (interface{}, error) {
	return s.Names(), nil
}
