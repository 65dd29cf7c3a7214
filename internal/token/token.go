package token

// Token defines which currency item a banner consumes and how many units each draw costs.
type Token struct {
	ItemID  int // e.g. 223 "Intertwined Fate", 224 "Acquaint Fate"
	PerDraw int // units per draw, >= 0
}

// Free reports whether drawing costs nothing.
func (t Token) Free() bool {
	return t.ItemID <= 0 || t.PerDraw <= 0
}

// ForDraws returns how many units are required for n draws. There is no multi-draw discount.
func (t Token) ForDraws(n int) int {
	if n <= 0 || t.Free() {
		return 0
	}
	return n * t.PerDraw
}
