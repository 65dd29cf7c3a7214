package banner

// withDefaults layers a record over the file's defaults block. Fields the record sets win;
// identity fields (gachaType, scheduleId, sortId, rate-up lists) never come from defaults.
func (c Config) withDefaults(d Config) Config {
	out := c
	out.CostItem = nonZero(c.CostItem, d.CostItem)
	out.CostPerPull = firstSet(c.CostPerPull, d.CostPerPull)
	out.SoftPity = firstSet(c.SoftPity, d.SoftPity)
	out.HardPity = firstSet(c.HardPity, d.HardPity)
	out.EventChance = firstSet(c.EventChance, d.EventChance)
	out.MinItemType = firstSet(c.MinItemType, d.MinItemType)
	out.MaxItemType = firstSet(c.MaxItemType, d.MaxItemType)
	out.BeginTime = nonZero(c.BeginTime, d.BeginTime)
	out.EndTime = nonZero(c.EndTime, d.EndTime)
	out.PrefabPath = nonZero(c.PrefabPath, d.PrefabPath)
	out.PreviewPrefabPath = nonZero(c.PreviewPrefabPath, d.PreviewPrefabPath)
	out.TitlePath = nonZero(c.TitlePath, d.TitlePath)
	return out
}

// resolved returns the file with its defaults folded into every record.
func (f File) resolved() File {
	if f.Defaults == nil {
		return f
	}
	out := File{Version: f.Version, Banners: make([]Config, len(f.Banners))}
	for i, c := range f.Banners {
		out.Banners[i] = c.withDefaults(*f.Defaults)
	}
	return out
}

func firstSet(a, b *int) *int {
	if a != nil {
		return a
	}
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func nonZero[T comparable](a, b T) T {
	var zero T
	if a != zero {
		return a
	}
	return b
}
