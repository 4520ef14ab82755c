// Package ego loads ego templates and implements the weighted ego draw and
// ego effect application used by the enchantment engine.
package ego

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

// Gen is an ego generation flag: an extra random grant or a roll modifier.
type Gen string

// Generation flags.
const (
	GenOneSustain Gen = "one_sustain"
	GenXtraPower  Gen = "xtra_power"
	GenXtraHRes   Gen = "xtra_h_res"
	GenXtraERes   Gen = "xtra_e_res"
	GenXtraDRes   Gen = "xtra_d_res"
	GenXtraLRes   Gen = "xtra_l_res"
	GenXtraRes    Gen = "xtra_res"
	GenXtraDice   Gen = "xtra_dice"
	// GenPowerful keeps bonuses positive even on cursed or broken items.
	GenPowerful Gen = "powerful"
)

var validGens = map[Gen]bool{
	GenOneSustain: true,
	GenXtraPower:  true,
	GenXtraHRes:   true,
	GenXtraERes:   true,
	GenXtraDRes:   true,
	GenXtraLRes:   true,
	GenXtraRes:    true,
	GenXtraDice:   true,
	GenPowerful:   true,
}

// Def is an ego template loaded from YAML.
//
// A positive Rating marks a good ego; zero marks a cursed one. The Max*
// fields bound the bonus rolled on application; a negative bound is a
// penalty.
type Def struct {
	ID         trait.EgoID    `yaml:"id"`
	Name       string         `yaml:"name"`
	Slot       inventory.Slot `yaml:"slot"`
	Rating     int            `yaml:"rating"`
	Rarity     int            `yaml:"rarity"`
	Cost       int            `yaml:"cost"`
	MaxToHit   int            `yaml:"max_to_hit"`
	MaxToDam   int            `yaml:"max_to_dam"`
	MaxToAC    int            `yaml:"max_to_ac"`
	MaxPval    int            `yaml:"max_pval"`
	Traits     trait.Set      `yaml:"traits"`
	Curses     trait.CurseSet `yaml:"curses"`
	Gen        []Gen          `yaml:"gen"`
	Activation string         `yaml:"activation"`
}

// Good reports whether d is drawn for good items.
func (d *Def) Good() bool {
	return d.Rating > 0
}

// HasGen reports whether g is among d's generation flags.
func (d *Def) HasGen(g Gen) bool {
	for _, x := range d.Gen {
		if x == g {
			return true
		}
	}
	return false
}

// Validate checks that the Def satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == trait.NoEgo {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, err := inventory.ParseSlot(string(d.Slot)); err != nil {
		errs = append(errs, err)
	}
	if d.Rating < 0 {
		errs = append(errs, errors.New("rating must be >= 0"))
	}
	if d.Rarity < 0 {
		errs = append(errs, errors.New("rarity must be >= 0"))
	}
	if d.Cost < 0 {
		errs = append(errs, errors.New("cost must be >= 0"))
	}
	for _, g := range d.Gen {
		if !validGens[g] {
			errs = append(errs, fmt.Errorf("gen flag %q is not valid", g))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("ego validation failed: %v", errs)
	}
	return nil
}

// LoadDefs reads all *.yaml and *.yml files from dir. Each file holds a YAML
// sequence of ego definitions; unknown fields are rejected.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Defs or the first encountered error.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadDefs: cannot read directory %q: %w", dir, err)
	}
	defs := []*Def{}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadDefs: cannot read file %q: %w", path, err)
		}
		var parsed []*Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("LoadDefs: cannot parse file %q: %w", path, err)
		}
		for _, d := range parsed {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("LoadDefs: invalid ego %q in %q: %w", d.ID, path, err)
			}
			defs = append(defs, d)
		}
	}
	return defs, nil
}
