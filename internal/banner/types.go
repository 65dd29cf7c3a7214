// types.go
package banner

import "github.com/xtding233/gacha-server/internal/gacha"

// File is the banner configuration as stored on disk. The source may also be a bare list of
// banners, which is how the JSON banner files are laid out.
type File struct {
	Version  string   `yaml:"version"`
	Defaults *Config  `yaml:"defaults,omitempty" validate:"-"`
	Banners  []Config `yaml:"banners" validate:"dive"`
}

// Config mirrors one banner record. Optional fields are pointers so defaults can be applied
// only where the file is silent.
type Config struct {
	GachaType         int    `yaml:"gachaType" validate:"required,gt=0"`
	ScheduleID        int    `yaml:"scheduleId" validate:"gte=0"`
	SortID            int    `yaml:"sortId"`
	PrefabPath        string `yaml:"prefabPath"`
	PreviewPrefabPath string `yaml:"previewPrefabPath"`
	TitlePath         string `yaml:"titlePath"`
	BeginTime         int64  `yaml:"beginTime" validate:"gte=0"`
	EndTime           int64  `yaml:"endTime" validate:"gte=0"`

	CostItem    int  `yaml:"costItem" validate:"gte=0"`
	CostPerPull *int `yaml:"costPerPull,omitempty" validate:"omitempty,gte=0"`

	SoftPity    *int `yaml:"softPity,omitempty" validate:"omitempty,gte=2"`
	HardPity    *int `yaml:"hardPity,omitempty" validate:"omitempty,gte=3"`
	EventChance *int `yaml:"eventChance,omitempty" validate:"omitempty,gte=0,lte=100"`
	MinItemType *int `yaml:"minItemType,omitempty"`
	MaxItemType *int `yaml:"maxItemType,omitempty"`

	RateUpItems1 []int `yaml:"rateUpItems1" validate:"dive,gt=0"` // featured top rarity
	RateUpItems2 []int `yaml:"rateUpItems2" validate:"dive,gt=0"` // featured mid rarity
}

// Defaults applied to fields a banner record leaves out.
const (
	DefaultCostPerPull = 1
	DefaultSoftPity    = 75
	DefaultHardPity    = 90
	DefaultEventChance = 50
	DefaultMinItemType = 1
	DefaultMaxItemType = 2
)

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// ToBanner converts a record into the engine's banner, filling defaults.
func (c Config) ToBanner() gacha.Banner {
	b := gacha.Banner{
		Type:              c.GachaType,
		CostItemID:        c.CostItem,
		CostPerPull:       intOr(c.CostPerPull, DefaultCostPerPull),
		SoftPity:          intOr(c.SoftPity, DefaultSoftPity),
		HardPity:          intOr(c.HardPity, DefaultHardPity),
		GuaranteeChance:   intOr(c.EventChance, DefaultEventChance),
		ItemTypeMin:       intOr(c.MinItemType, DefaultMinItemType),
		ItemTypeMax:       intOr(c.MaxItemType, DefaultMaxItemType),
		ScheduleID:        c.ScheduleID,
		SortID:            c.SortID,
		PrefabPath:        c.PrefabPath,
		PreviewPrefabPath: c.PreviewPrefabPath,
		TitlePath:         c.TitlePath,
		BeginTime:         c.BeginTime,
		EndTime:           c.EndTime,
		RateUpTop:         c.RateUpItems1,
		RateUpMid:         c.RateUpItems2,
	}
	return b.Clone()
}
