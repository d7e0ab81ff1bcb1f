// Package bias produces fairness-metric assessments. Scores are simulated
// from per-attribute baselines; a real deployment would plug measurement
// pipelines in behind the same interface.
package bias

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/governa-io/governa/app/services/audit"
)

// Assessment is the outcome of scoring one protected attribute of a
// dataset.
type Assessment struct {
	ID        string             `json:"id"`
	Dataset   string             `json:"dataset"`
	Attribute string             `json:"attribute"`
	Threshold float64            `json:"threshold"`
	Metrics   map[string]float64 `json:"metrics"`
	Flagged   bool               `json:"flagged"`
	At        time.Time          `json:"at"`
}

// Scorer computes assessments. Scorers are cheap and stateless between
// calls; register them transient so every resolution gets a fresh one.
type Scorer struct {
	trail *audit.Trail
}

// NewScorer creates a scorer that records every assessment on trail.
func NewScorer(trail *audit.Trail) *Scorer {
	return &Scorer{trail: trail}
}

// attribute → baseline parity score; unknown attributes fall back to 0.85.
var baselines = map[string]float64{
	"age":       0.82,
	"gender":    0.78,
	"ethnicity": 0.74,
	"income":    0.88,
}

const defaultBaseline = 0.85

// Score assesses dataset's protected attribute. An assessment is flagged
// when any metric falls below threshold.
func (s *Scorer) Score(dataset, attribute string, threshold float64) Assessment {
	base, ok := baselines[attribute]
	if !ok {
		base = defaultBaseline
	}

	metrics := map[string]float64{
		"demographic_parity": jitter(base),
		"equalized_odds":     jitter(base - 0.03),
		"disparate_impact":   jitter(base + 0.02),
	}

	flagged := false
	for _, v := range metrics {
		if v < threshold {
			flagged = true
			break
		}
	}

	a := Assessment{
		ID:        uuid.NewString(),
		Dataset:   dataset,
		Attribute: attribute,
		Threshold: threshold,
		Metrics:   metrics,
		Flagged:   flagged,
		At:        time.Now().UTC(),
	}
	s.trail.Record("system", "score", dataset+"/"+attribute)
	return a
}

// jitter perturbs a baseline by ±0.05 and clamps to [0, 1].
func jitter(base float64) float64 {
	v := base + (rand.Float64()-0.5)*0.1
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
