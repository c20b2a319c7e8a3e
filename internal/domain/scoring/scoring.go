// Package scoring derives the six ability scores from a natal chart.
package scoring

import (
	"math/rand"

	"github.com/okian/astrohero/internal/domain/astro"
	"github.com/okian/astrohero/internal/domain/tables"
)

// Score bounds.
const (
	BaseScore = 10
	MinScore  = 8
	MaxScore  = 18
	// Spread is the largest absolute perturbation applied to one ability.
	Spread = 2
)

// Source produces the perturbation draws. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

type bodyWeight struct {
	body   astro.Body
	weight float64
}

// influences lists the bodies that move ability scores, in application order.
var influences = []bodyWeight{
	{astro.Sun, 1.0},
	{astro.Moon, 0.7},
	{astro.Mars, 0.5},
	{astro.Mercury, 0.5},
	{astro.Venus, 0.5},
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithSource makes every Score call draw from src instead of a source
// seeded from the chart. The caller owns any synchronization src needs.
func WithSource(src Source) Option {
	return func(s *Scorer) {
		if src != nil {
			s.source = src
		}
	}
}

// WithoutPerturbation disables the random spread entirely.
func WithoutPerturbation() Option {
	return func(s *Scorer) {
		s.perturb = false
	}
}

// Scorer computes AbilityScores. A zero Scorer is not usable; use NewScorer.
type Scorer struct {
	source  Source
	perturb bool
}

// NewScorer creates a scorer with perturbation seeded from each chart.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{perturb: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the ability scores for chart. Placements with unknown signs
// contribute nothing. It fails only when an influential body is absent.
func (s *Scorer) Score(chart astro.NatalChart) (AbilityScores, error) {
	var missing []astro.Body
	for _, in := range influences {
		if _, ok := chart.Placements[in.body]; !ok {
			missing = append(missing, in.body)
		}
	}
	if len(missing) > 0 {
		return AbilityScores{}, &astro.MissingPlacementError{Bodies: canonical(missing)}
	}

	var raw [tables.AbilityCount]int
	for i := range raw {
		raw[i] = BaseScore
	}
	for _, in := range influences {
		p := chart.Placements[in.body]
		for _, m := range tables.AbilityModifiers(p.Sign) {
			raw[m.Ability] += int(float64(m.Value) * in.weight)
		}
	}

	if s.perturb {
		src := s.source
		if src == nil {
			src = rand.New(rand.NewSource(int64(chart.Seed()))) //nolint:gosec // reproducible flavor, not security
		}
		for i := range raw {
			raw[i] += src.Intn(2*Spread+1) - Spread
		}
	}

	var out AbilityScores
	for _, a := range tables.Abilities() {
		out.set(a, clamp(raw[a]))
	}
	return out, nil
}

func clamp(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// canonical reorders bodies into astro.Bodies order.
func canonical(in []astro.Body) []astro.Body {
	out := make([]astro.Body, 0, len(in))
	for _, b := range astro.Bodies() {
		for _, m := range in {
			if m == b {
				out = append(out, b)
			}
		}
	}
	return out
}
