package gacha

import (
	"testing"
)

// scriptedRNG replays fixed IntN results. Each value is the offset from the bottom of the
// requested range, so a [1,10000] roll of r is scripted as r-1.
type scriptedRNG struct {
	t    *testing.T
	vals []int
	pos  int
}

func script(t *testing.T, vals ...int) *scriptedRNG {
	t.Helper()
	return &scriptedRNG{t: t, vals: vals}
}

func (s *scriptedRNG) IntN(n int) int {
	s.t.Helper()
	if s.pos >= len(s.vals) {
		s.t.Fatalf("rng script exhausted after %d values", len(s.vals))
	}
	v := s.vals[s.pos]
	s.pos++
	if v < 0 || v >= n {
		s.t.Fatalf("scripted value %d out of range [0,%d)", v, n)
	}
	return v
}

func (s *scriptedRNG) done() bool { return s.pos == len(s.vals) }

// chance scripts a [1,10000] tier roll.
func chance(r int) int { return r - 1 }

// percent scripts a [1,100] guarantee roll.
func percent(r int) int { return r - 1 }

const (
	characterPool = 0 // fallback roll landing on 1
	equipmentPool = 1 // fallback roll landing on 2
)

func eventBanner() Banner {
	return Banner{
		Type:            301,
		CostItemID:      223,
		CostPerPull:     160,
		SoftPity:        74,
		HardPity:        90,
		RateUpTop:       []int{1022},
		RateUpMid:       []int{1023, 1031, 1014},
		GuaranteeChance: 50,
		ItemTypeMin:     1,
		ItemTypeMax:     2,
	}
}

func standardBanner() Banner {
	b := eventBanner()
	b.Type = 200
	b.RateUpTop = nil
	b.RateUpMid = nil
	return b
}

func newTestEngine(t *testing.T, rng RandomSource) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultPools(), rng)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}
