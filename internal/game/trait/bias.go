package trait

import (
	"fmt"
	"strings"
)

// Bias is the thematic affinity steering which traits an item prefers.
type Bias int

// Bias themes. BiasNone means no theme has been chosen yet.
const (
	BiasNone Bias = iota
	BiasElec
	BiasFire
	BiasCold
	BiasAcid
	BiasStr
	BiasInt
	BiasWis
	BiasDex
	BiasCon
	BiasChr
	BiasChaos
	BiasPriestly
	BiasPoison
	BiasRanger
	BiasRogue
	BiasNecromantic
	BiasMage
	BiasWarrior
	BiasLaw
	biasCount
)

var biasNames = [biasCount]string{
	BiasNone:        "none",
	BiasElec:        "elec",
	BiasFire:        "fire",
	BiasCold:        "cold",
	BiasAcid:        "acid",
	BiasStr:         "str",
	BiasInt:         "int",
	BiasWis:         "wis",
	BiasDex:         "dex",
	BiasCon:         "con",
	BiasChr:         "chr",
	BiasChaos:       "chaos",
	BiasPriestly:    "priestly",
	BiasPoison:      "poison",
	BiasRanger:      "ranger",
	BiasRogue:       "rogue",
	BiasNecromantic: "necromantic",
	BiasMage:        "mage",
	BiasWarrior:     "warrior",
	BiasLaw:         "law",
}

// String returns the content name of b.
func (b Bias) String() string {
	if b < BiasNone || b >= biasCount {
		return fmt.Sprintf("bias(%d)", int(b))
	}
	return biasNames[b]
}

// MarshalYAML encodes b by name.
func (b Bias) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

// ParseBias returns the Bias named name. The empty string parses to BiasNone.
func ParseBias(name string) (Bias, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return BiasNone, nil
	}
	for b := BiasNone; b < biasCount; b++ {
		if biasNames[b] == n {
			return b, nil
		}
	}
	return BiasNone, fmt.Errorf("trait: unknown bias %q", name)
}

// MarshalText encodes b by name.
func (b Bias) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText decodes a bias name.
func (b *Bias) UnmarshalText(text []byte) error {
	v, err := ParseBias(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
