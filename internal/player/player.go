package player

import (
	"sync"

	"github.com/xtding233/gacha-server/internal/domain"
	"github.com/xtding233/gacha-server/internal/reward"
)

// Player is an in-memory account with an inventory and a character roster.
type Player struct {
	ID        int64
	Inventory *Inventory
	Avatars   *Avatars
}

// Option configures a new player.
type Option func(*options)

type options struct {
	limits map[domain.ItemClass]int
	table  reward.ConversionTable
	items  map[int]int
}

// WithCapacity limits the number of slots of class.
func WithCapacity(class domain.ItemClass, slots int) Option {
	return func(o *options) { o.limits[class] = slots }
}

// WithConversion sets the table used to map character items to character ids.
func WithConversion(t reward.ConversionTable) Option {
	return func(o *options) { o.table = t }
}

// WithItem starts the player with count units of itemID.
func WithItem(itemID, count int) Option {
	return func(o *options) { o.items[itemID] += count }
}

// New creates a player.
func New(id int64, opts ...Option) *Player {
	o := options{
		limits: make(map[domain.ItemClass]int),
		table:  reward.DefaultConversionTable(),
		items:  make(map[int]int),
	}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Player{ID: id, Inventory: NewInventory(o.limits), Avatars: NewAvatars()}
	table := o.table
	p.Inventory.onCharacter = func(def domain.ItemDefinition) {
		p.Avatars.Grant(table.CharacterID(def.ID))
	}
	for itemID, n := range o.items {
		_ = p.Inventory.AddItem(itemID, n)
	}
	return p
}

// Reward returns the collaborators the pull path acts on.
func (p *Player) Reward() reward.Player {
	return reward.Player{ID: p.ID, Inventory: p.Inventory, Avatars: p.Avatars}
}

// Directory holds the players known to this process.
type Directory struct {
	mu      sync.RWMutex
	players map[int64]*Player
	factory func(id int64) *Player
}

// NewDirectory creates a directory. When factory is non-nil, unknown ids are created on
// first lookup.
func NewDirectory(factory func(id int64) *Player) *Directory {
	return &Directory{players: make(map[int64]*Player), factory: factory}
}

// Register adds or replaces p.
func (d *Directory) Register(p *Player) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.players[p.ID] = p
}

// Get returns the player with id, creating it when the directory has a factory.
func (d *Directory) Get(id int64) (*Player, bool) {
	d.mu.RLock()
	p, ok := d.players[id]
	d.mu.RUnlock()
	if ok || d.factory == nil {
		return p, ok
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.players[id]; ok {
		return p, true
	}
	p = d.factory(id)
	d.players[id] = p
	return p, true
}

// Lookup implements the pull service's player source.
func (d *Directory) Lookup(id int64) (reward.Player, bool) {
	p, ok := d.Get(id)
	if !ok {
		return reward.Player{}, false
	}
	return p.Reward(), true
}
