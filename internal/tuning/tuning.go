package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the balance constants that are deliberately not correctness
// invariants: quality tier cut points and the floor score for a craft with
// no material slots filled.
type Tuning struct {
	QualityFloor float64  `yaml:"quality_floor"`
	TierCuts     TierCuts `yaml:"tier_cuts"`
}

// TierCuts are the lower bounds of each tier above "poor". They must be
// strictly increasing within [0,1].
type TierCuts struct {
	Adequate   float64 `yaml:"adequate"`
	Good       float64 `yaml:"good"`
	Excellent  float64 `yaml:"excellent"`
	Masterwork float64 `yaml:"masterwork"`
}

func Default() Tuning {
	return Tuning{
		QualityFloor: 0.1,
		TierCuts: TierCuts{
			Adequate:   0.2,
			Good:       0.4,
			Excellent:  0.6,
			Masterwork: 0.8,
		},
	}
}

func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if t.QualityFloor < 0 || t.QualityFloor > 1 {
		return fmt.Errorf("quality_floor %v outside [0,1]", t.QualityFloor)
	}
	c := t.TierCuts
	if !(c.Adequate > 0 && c.Adequate < c.Good && c.Good < c.Excellent &&
		c.Excellent < c.Masterwork && c.Masterwork <= 1) {
		return fmt.Errorf("tier_cuts not strictly increasing within [0,1]: %+v", c)
	}
	return nil
}
