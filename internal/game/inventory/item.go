package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

// BaseItemDef is a base item template loaded from YAML. Every generated Item
// starts as a copy of one of these.
type BaseItemDef struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Category    Category       `yaml:"category"`
	Sval        string         `yaml:"sval"`
	Level       int            `yaml:"level"`
	AC          int            `yaml:"ac"`
	Damage      dice.Dice      `yaml:"damage"`
	Weight      int            `yaml:"weight"`
	Cost        int            `yaml:"cost"`
	Pval        int            `yaml:"pval"`
	ToHit       int            `yaml:"to_hit"`
	ToDam       int            `yaml:"to_dam"`
	ToAC        int            `yaml:"to_ac"`
	Traits      trait.Set      `yaml:"traits"`
	Curses      trait.CurseSet `yaml:"curses"`
	// Hook names a Lua function run after enchantment. Empty means none.
	Hook string `yaml:"hook"`
}

// Validate checks that the BaseItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *BaseItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !d.Category.Valid() {
		errs = append(errs, fmt.Errorf("category %q is not a valid category", d.Category))
	}
	if d.Level < 0 {
		errs = append(errs, errors.New("level must be >= 0"))
	}
	if d.AC < 0 {
		errs = append(errs, errors.New("ac must be >= 0"))
	}
	if d.Weight < 0 {
		errs = append(errs, errors.New("weight must be >= 0"))
	}
	if d.Cost < 0 {
		errs = append(errs, errors.New("cost must be >= 0"))
	}
	if (d.Category.IsMeleeWeapon() || d.Category.IsAmmo()) && d.Damage.IsZero() {
		errs = append(errs, fmt.Errorf("damage is required for category %q", d.Category))
	}
	if len(errs) > 0 {
		return fmt.Errorf("base item validation failed: %v", errs)
	}
	return nil
}

// LoadBaseItems reads all *.yaml and *.yml files from dir. Each file holds a
// YAML sequence of base item definitions; unknown fields are rejected.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid BaseItemDefs or the first encountered error.
func LoadBaseItems(dir string) ([]*BaseItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadBaseItems: cannot read directory %q: %w", dir, err)
	}

	defs := []*BaseItemDef{}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadBaseItems: cannot read file %q: %w", path, err)
		}
		parsed, err := decodeBaseItems(data)
		if err != nil {
			return nil, fmt.Errorf("LoadBaseItems: cannot parse file %q: %w", path, err)
		}
		for _, d := range parsed {
			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("LoadBaseItems: invalid base item %q in %q: %w", d.ID, path, err)
			}
			defs = append(defs, d)
		}
	}
	return defs, nil
}

func decodeBaseItems(data []byte) ([]*BaseItemDef, error) {
	var defs []*BaseItemDef
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&defs); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return defs, nil
}
