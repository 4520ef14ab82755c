// Package artifact implements fixed artifact realization with singleton claim
// bookkeeping and the procedural random artifact generator.
package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/itemforge/internal/game/dice"
	"github.com/cory-johannsen/itemforge/internal/game/inventory"
	"github.com/cory-johannsen/itemforge/internal/game/trait"
)

// Def is a predefined, one-of-a-kind artifact loaded from YAML.
type Def struct {
	ID         string             `yaml:"id"`
	Name       string             `yaml:"name"`
	Category   inventory.Category `yaml:"category"`
	Sval       string             `yaml:"sval"`
	Level      int                `yaml:"level"`
	Rarity     int                `yaml:"rarity"`
	Pval       int                `yaml:"pval"`
	AC         int                `yaml:"ac"`
	Damage     dice.Dice          `yaml:"damage"`
	ToHit      int                `yaml:"to_hit"`
	ToDam      int                `yaml:"to_dam"`
	ToAC       int                `yaml:"to_ac"`
	Weight     int                `yaml:"weight"`
	Traits     trait.Set          `yaml:"traits"`
	Curses     trait.CurseSet     `yaml:"curses"`
	Activation string             `yaml:"activation"`
	// QuestItem and InstaArt artifacts are placed by other systems and are
	// never matched by the generator.
	QuestItem bool `yaml:"quest_item"`
	InstaArt  bool `yaml:"insta_art"`
}

// Validate checks that the Def satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (d *Def) Validate() error {
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
	if d.Sval == "" {
		errs = append(errs, errors.New("sval must not be empty"))
	}
	if d.Level < 0 {
		errs = append(errs, errors.New("level must be >= 0"))
	}
	if d.Rarity < 1 {
		errs = append(errs, errors.New("rarity must be >= 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("artifact validation failed: %v", errs)
	}
	return nil
}

// LoadDefs reads all *.yaml and *.yml files from dir. Each file holds a YAML
// sequence of fixed artifact definitions; unknown fields are rejected.
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
				return nil, fmt.Errorf("LoadDefs: invalid artifact %q in %q: %w", d.ID, path, err)
			}
			defs = append(defs, d)
		}
	}
	return defs, nil
}

// Claim records that a fixed artifact has been generated.
type Claim struct {
	ArtifactID string
	InstanceID string
	Depth      int
	ClaimedAt  time.Time
}

// ClaimStore persists claims so that a fixed artifact is generated at most
// once across runs.
type ClaimStore interface {
	LoadClaims(ctx context.Context) ([]Claim, error)
	SaveClaims(ctx context.Context, claims []Claim) error
}

// Registry holds the fixed artifacts and which of them are claimed. It is
// safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	defs    []*Def
	byID    map[string]*Def
	claimed map[string]Claim
	pending []Claim
	now     func() time.Time
}

// NewRegistry builds a Registry from defs.
//
// Postcondition: returns an error on the first duplicate ID.
func NewRegistry(defs []*Def) (*Registry, error) {
	r := &Registry{
		byID:    make(map[string]*Def, len(defs)),
		claimed: make(map[string]Claim),
		now:     time.Now,
	}
	for _, d := range defs {
		if _, exists := r.byID[d.ID]; exists {
			return nil, fmt.Errorf("artifact: NewRegistry: artifact ID %q already registered", d.ID)
		}
		r.byID[d.ID] = d
		r.defs = append(r.defs, d)
	}
	sort.Slice(r.defs, func(i, j int) bool { return r.defs[i].ID < r.defs[j].ID })
	return r, nil
}

// Def returns the definition for id and whether it exists.
func (r *Registry) Def(id string) (*Def, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Len returns the number of fixed artifacts.
func (r *Registry) Len() int {
	return len(r.defs)
}

// IsClaimed reports whether id has been generated.
func (r *Registry) IsClaimed(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.claimed[id]
	return ok
}

// Hydrate marks every claim in store as taken.
//
// Postcondition: on error the registry is unchanged.
func (r *Registry) Hydrate(ctx context.Context, store ClaimStore) error {
	claims, err := store.LoadClaims(ctx)
	if err != nil {
		return fmt.Errorf("artifact: loading claims: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range claims {
		r.claimed[c.ArtifactID] = c
	}
	return nil
}

// Flush writes the claims made since the last flush to store.
//
// Postcondition: returns the number of claims written; on error the pending
// claims are kept for a later flush.
func (r *Registry) Flush(ctx context.Context, store ClaimStore) (int, error) {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()
	if len(pending) == 0 {
		return 0, nil
	}
	if err := store.SaveClaims(ctx, pending); err != nil {
		r.mu.Lock()
		r.pending = append(pending, r.pending...)
		r.mu.Unlock()
		return 0, fmt.Errorf("artifact: saving claims: %w", err)
	}
	return len(pending), nil
}

// Realize tries to turn item into an unclaimed fixed artifact of the same
// category and subcategory. Artifacts deeper than depth pass only
// one_in((level-depth)*2); every candidate must then pass one_in(rarity).
//
// Postcondition: on success the artifact is claimed and its stats are copied
// onto item. Nothing happens at depth 0.
func (r *Registry) Realize(rl *dice.Roller, item *inventory.Item, depth int) bool {
	if depth <= 0 {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.defs {
		if _, taken := r.claimed[d.ID]; taken {
			continue
		}
		if d.QuestItem || d.InstaArt {
			continue
		}
		if d.Category != item.Category || d.Sval != item.Sval {
			continue
		}
		if d.Level > depth && !rl.OneIn((d.Level-depth)*2) {
			continue
		}
		if !rl.OneIn(d.Rarity) {
			continue
		}
		c := Claim{ArtifactID: d.ID, InstanceID: item.InstanceID, Depth: depth, ClaimedAt: r.now()}
		r.claimed[d.ID] = c
		r.pending = append(r.pending, c)
		copyStats(d, item)
		return true
	}
	return false
}

func copyStats(d *Def, item *inventory.Item) {
	item.ArtifactID = d.ID
	item.ArtifactName = d.Name
	item.Pval = d.Pval
	item.BaseAC = d.AC
	if !d.Damage.IsZero() {
		item.Dice = d.Damage
	}
	item.ToHit = d.ToHit
	item.ToDam = d.ToDam
	item.ToAC = d.ToAC
	if d.Weight > 0 {
		item.Weight = d.Weight
	}
	item.Traits.Union(d.Traits)
	item.Curses.Merge(d.Curses)
	item.Activation = d.Activation
}

// MemoryClaimStore is an in-process ClaimStore.
type MemoryClaimStore struct {
	mu     sync.Mutex
	claims []Claim
}

// NewMemoryClaimStore returns an empty store.
func NewMemoryClaimStore() *MemoryClaimStore {
	return &MemoryClaimStore{}
}

// LoadClaims returns a copy of the stored claims.
func (m *MemoryClaimStore) LoadClaims(_ context.Context) ([]Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Claim, len(m.claims))
	copy(out, m.claims)
	return out, nil
}

// SaveClaims appends claims.
func (m *MemoryClaimStore) SaveClaims(_ context.Context, claims []Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claims = append(m.claims, claims...)
	return nil
}
