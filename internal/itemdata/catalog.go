package itemdata

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/gacha-server/internal/domain"
	"github.com/xtding233/gacha-server/internal/gacha"
)

// File is the on-disk item definition list.
type File struct {
	Items []domain.ItemDefinition `yaml:"items" validate:"required,dive"`
}

// Catalog is an immutable set of item definitions keyed by id.
type Catalog struct {
	items map[int]domain.ItemDefinition
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item data %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("item data %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.TrimPrefix(e.Namespace(), "File."), e.Tag()))
			}
			return nil, fmt.Errorf("invalid item data: %s", strings.Join(msgs, "; "))
		}
		return nil, err
	}

	c := &Catalog{items: make(map[int]domain.ItemDefinition, len(f.Items))}
	for _, d := range f.Items {
		if _, dup := c.items[d.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %d", d.ID)
		}
		c.items[d.ID] = d
	}
	return c, nil
}

// DefaultCatalog derives a definition for every pool item: character pools hold characters
// and everything else is a weapon, ranked by the pool's tier.
func DefaultCatalog(p gacha.Pools) *Catalog {
	c := &Catalog{items: make(map[int]domain.ItemDefinition)}
	add := func(ids []int, kind domain.ItemKind, rank int) {
		for _, id := range ids {
			c.items[id] = domain.ItemDefinition{ID: id, Kind: kind, Rank: rank}
		}
	}
	add(p.TopCharacters, domain.KindAvatar, domain.RankTop)
	add(p.MidCharacters, domain.KindAvatar, domain.RankMid)
	add(p.TopEquipment, domain.KindWeapon, domain.RankTop)
	add(p.MidEquipment, domain.KindWeapon, domain.RankMid)
	add(p.LowEquipment, domain.KindWeapon, domain.RankLow)
	return c
}

// Lookup returns the definition for itemID.
func (c *Catalog) Lookup(itemID int) (domain.ItemDefinition, bool) {
	d, ok := c.items[itemID]
	return d, ok
}

// Len returns the number of definitions.
func (c *Catalog) Len() int { return len(c.items) }

// Overlay returns a catalog holding c's definitions with o's taking precedence.
func (c *Catalog) Overlay(o *Catalog) *Catalog {
	out := &Catalog{items: make(map[int]domain.ItemDefinition, len(c.items)+len(o.items))}
	for id, d := range c.items {
		out.items[id] = d
	}
	for id, d := range o.items {
		out.items[id] = d
	}
	return out
}

// Missing returns the ids in ids that have no definition.
func (c *Catalog) Missing(ids []int) []int {
	var out []int
	for _, id := range ids {
		if _, ok := c.items[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
