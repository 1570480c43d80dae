// Package grading holds the school's configurable grade-banding table.
//
// The mark engine itself stores grades exactly as submitted by evaluators;
// this table is advisory. It is surfaced on the API for clients that want to
// band totals consistently, and used by the seeder for plausible fixtures.
package grading

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Band maps a letter grade to the minimum percentage that earns it.
type Band struct {
	Letter     string  `json:"letter"`
	MinPercent float64 `json:"min_percent"`
}

// Table is an ordered list of bands, highest cutoff first.
type Table struct {
	bands []Band
}

// Parse builds a Table from a "LETTER:MIN_PERCENT,..." string, e.g.
// "A+:90,A:80,B:70,C:60,F:0". Order in the input does not matter; the
// table is sorted by cutoff descending. The lowest band should have a
// cutoff of 0 so every total lands somewhere.
func Parse(raw string) (*Table, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("grade bands string is empty")
	}

	var bands []Band
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		letter, cutoff, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("grade band %q: expected LETTER:MIN_PERCENT", part)
		}
		letter = strings.TrimSpace(letter)
		if letter == "" {
			return nil, fmt.Errorf("grade band %q: empty letter", part)
		}
		min, err := strconv.ParseFloat(strings.TrimSpace(cutoff), 64)
		if err != nil {
			return nil, fmt.Errorf("grade band %q: %w", part, err)
		}
		if min < 0 || min > 100 {
			return nil, fmt.Errorf("grade band %q: cutoff outside 0..100", part)
		}
		bands = append(bands, Band{Letter: letter, MinPercent: min})
	}
	if len(bands) == 0 {
		return nil, fmt.Errorf("grade bands string has no bands")
	}

	sort.SliceStable(bands, func(i, j int) bool {
		return bands[i].MinPercent > bands[j].MinPercent
	})

	for i := 1; i < len(bands); i++ {
		if bands[i].MinPercent == bands[i-1].MinPercent {
			return nil, fmt.Errorf("grade bands %q and %q share cutoff %.1f",
				bands[i-1].Letter, bands[i].Letter, bands[i].MinPercent)
		}
	}

	return &Table{bands: bands}, nil
}

// Bands returns the table contents, highest cutoff first.
func (t *Table) Bands() []Band {
	out := make([]Band, len(t.bands))
	copy(out, t.bands)
	return out
}

// Grade returns the letter for obtained marks out of max. When max is not
// positive, or the percentage falls below every cutoff, it returns the
// lowest band's letter.
func (t *Table) Grade(obtained, max float64) string {
	lowest := t.bands[len(t.bands)-1].Letter
	if max <= 0 {
		return lowest
	}
	pct := obtained / max * 100
	for _, b := range t.bands {
		if pct >= b.MinPercent {
			return b.Letter
		}
	}
	return lowest
}
