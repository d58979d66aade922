package quality

import (
	"sort"

	"paleotrek.quest/internal/content"
	"paleotrek.quest/internal/tuning"
)

// Tier names, worst to best.
const (
	TierPoor       = "poor"
	TierAdequate   = "adequate"
	TierGood       = "good"
	TierExcellent  = "excellent"
	TierMasterwork = "masterwork"
)

// Scorer computes craft quality from material properties. Pure and total:
// identical inputs always produce the identical score.
type Scorer struct {
	Floor float64
	Cuts  tuning.TierCuts
}

func NewScorer(t tuning.Tuning) Scorer {
	return Scorer{Floor: t.QualityFloor, Cuts: t.TierCuts}
}

// Score maps the used materials onto [0,1]. Each filled slot contributes the
// weighted sum of its material's properties, normalized from the 1..10 scale
// to 0..1; slots are averaged so the formula holds for any slot count. With
// no slots filled the fixed floor is returned, never zero.
func (s Scorer) Score(weights map[string]float64, mats []content.Material) float64 {
	if len(mats) == 0 {
		return s.Floor
	}
	// Fixed axis order keeps float summation identical across calls.
	axes := make([]string, 0, len(weights))
	for axis := range weights {
		axes = append(axes, axis)
	}
	sort.Strings(axes)

	total := 0.0
	for _, m := range mats {
		slot := 0.0
		for _, axis := range axes {
			v, ok := m.Properties[axis]
			if !ok {
				continue
			}
			slot += weights[axis] * normalize(v)
		}
		total += slot
	}
	return clamp01(total / float64(len(mats)))
}

// Tier buckets a score into the five-step ladder. Cut points are tuning
// constants, monotonic over [0,1].
func (s Scorer) Tier(score float64) string {
	switch {
	case score >= s.Cuts.Masterwork:
		return TierMasterwork
	case score >= s.Cuts.Excellent:
		return TierExcellent
	case score >= s.Cuts.Good:
		return TierGood
	case score >= s.Cuts.Adequate:
		return TierAdequate
	default:
		return TierPoor
	}
}

// normalize maps a 1..10 property value onto 0..1, clamping out-of-range
// values so a bad input can never push a score outside the bound.
func normalize(v float64) float64 {
	return clamp01((v - 1) / 9)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
