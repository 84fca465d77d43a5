package game

import (
	"testing"

	"pixel-casino/internal/config"
)

// scriptedRand returns a fixed sequence of draws, then repeats the last one.
type scriptedRand struct {
	seq []int
	i   int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.seq[r.i]
	if r.i < len(r.seq)-1 {
		r.i++
	}
	if v >= n {
		v = n - 1
	}
	return v
}

func testRules() Rules {
	return RulesFromConfig(config.GameConfig{})
}

func TestDrawReelsAllMatch(t *testing.T) {
	rules := testRules()
	rnd := &scriptedRand{seq: []int{2, 2, 2}}

	out := DrawReels(rnd, rules, 30)
	if !out.Won {
		t.Fatalf("three equal reels must win: %+v", out)
	}
	if out.Payout != 90 {
		t.Fatalf("expected payout 90 for stake 30 at 3x, got %d", out.Payout)
	}
	if len(out.Symbols) != rules.ReelCount {
		t.Fatalf("expected %d symbols, got %d", rules.ReelCount, len(out.Symbols))
	}
	for _, s := range out.Symbols {
		if s != rules.ReelSymbols[2] {
			t.Fatalf("unexpected symbols: %v", out.Symbols)
		}
	}
}

func TestDrawReelsMixed(t *testing.T) {
	rules := testRules()
	rnd := &scriptedRand{seq: []int{0, 1, 0}}

	out := DrawReels(rnd, rules, 30)
	if out.Won {
		t.Fatalf("mixed reels must lose: %+v", out)
	}
	if out.Payout != 0 {
		t.Fatalf("losing round must pay 0, got %d", out.Payout)
	}
}

func TestDrawCardThreshold(t *testing.T) {
	rules := testRules()

	cases := []struct {
		name string
		draw int
		rank string
		won  bool
	}{
		{"lowest rank loses", 0, "1", false},
		{"at threshold loses", 9, "10", false},
		{"just above threshold wins", 10, "11", true},
		{"highest rank wins", 12, "13", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := DrawCard(&scriptedRand{seq: []int{tc.draw}}, rules, 20)
			if out.Won != tc.won {
				t.Fatalf("rank %s: won=%v, want %v", tc.rank, out.Won, tc.won)
			}
			if len(out.Symbols) != 1 || out.Symbols[0] != tc.rank {
				t.Fatalf("expected symbols [%s], got %v", tc.rank, out.Symbols)
			}
			wantPayout := int64(0)
			if tc.won {
				wantPayout = 40
			}
			if out.Payout != wantPayout {
				t.Fatalf("expected payout %d, got %d", wantPayout, out.Payout)
			}
		})
	}
}

func TestRulesFromConfigDefaults(t *testing.T) {
	r := RulesFromConfig(config.GameConfig{})

	if len(r.ReelSymbols) != 5 {
		t.Fatalf("expected 5 default symbols, got %v", r.ReelSymbols)
	}
	if r.ReelCount != 3 {
		t.Fatalf("expected 3 reels, got %d", r.ReelCount)
	}
	if r.JackpotMultiplier != 3 {
		t.Fatalf("expected 3x jackpot multiplier, got %d", r.JackpotMultiplier)
	}
	if r.CardWinThreshold != 10 {
		t.Fatalf("expected card threshold 10, got %d", r.CardWinThreshold)
	}
	if r.CardMultiplier != 2 {
		t.Fatalf("expected 2x card multiplier, got %d", r.CardMultiplier)
	}
	if r.MemoryReward != 10 {
		t.Fatalf("expected memory reward 10, got %d", r.MemoryReward)
	}
}

func TestRulesFromConfigRejectsBadThreshold(t *testing.T) {
	r := RulesFromConfig(config.GameConfig{CardWinThreshold: 13})
	if r.CardWinThreshold != 10 {
		t.Fatalf("unwinnable threshold must fall back to default, got %d", r.CardWinThreshold)
	}
}
