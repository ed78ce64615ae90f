package rank

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/poiesic/rankit/core"
)

// Policy maps tier names to score multipliers.
type Policy struct {
	multipliers map[string]float64
}

// NewPolicy builds a policy from a tier→multiplier table. The table is
// copied, so later mutation of the argument does not affect the policy.
func NewPolicy(multipliers map[string]float64) (Policy, error) {
	if len(multipliers) == 0 {
		return Policy{}, ErrEmptyPolicy
	}
	return Policy{multipliers: maps.Clone(multipliers)}, nil
}

// Multiplier returns the configured multiplier for a tier.
func (p Policy) Multiplier(tier string) (float64, error) {
	mult, ok := p.multipliers[tier]
	if !ok {
		return 0, fmt.Errorf("%w: %q (known tiers: %s)", ErrUnknownTier, tier, strings.Join(p.Tiers(), ", "))
	}
	return mult, nil
}

// Tiers returns the known tier names in sorted order.
func (p Policy) Tiers() []string {
	tiers := make([]string, 0, len(p.multipliers))
	for tier := range p.multipliers {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	return tiers
}

// Apply weights every candidate by its tier multiplier. A candidate
// whose tier is not in the policy aborts the whole ranking; no partial
// result list is returned.
func Apply(cands []core.Candidate, p Policy) ([]core.Result, error) {
	results := make([]core.Result, 0, len(cands))
	for _, c := range cands {
		mult, err := p.Multiplier(c.Tier)
		if err != nil {
			return nil, fmt.Errorf("ranking %s: %w", c.DocID, err)
		}
		results = append(results, core.Result{
			DocID:         c.DocID,
			Tier:          c.Tier,
			RawSim:        c.RawSim,
			Multiplier:    mult,
			WeightedScore: c.RawSim * mult,
		})
	}
	return results, nil
}

// Order sorts results by weighted score, highest first. The sort is
// stable: equal scores keep their index row order.
func Order(results []core.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].WeightedScore > results[j].WeightedScore
	})
}

// Top returns the first k results. k at or below zero yields nothing;
// k beyond the slice length yields everything.
func Top(results []core.Result, k int) []core.Result {
	if k <= 0 {
		return nil
	}
	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}
