// Package character assembles a character sheet from a natal chart.
package character

import (
	"fmt"
	"math"
	"slices"

	"github.com/okian/astrohero/internal/domain/astro"
	"github.com/okian/astrohero/internal/domain/background"
	"github.com/okian/astrohero/internal/domain/classify"
	"github.com/okian/astrohero/internal/domain/rating"
	"github.com/okian/astrohero/internal/domain/scoring"
)

// Option applies a configuration option to the Deriver.
type Option func(*Deriver)

// WithScale grades totals on s instead of rating.Standard.
func WithScale(s rating.Scale) Option {
	return func(d *Deriver) {
		if len(s.Thresholds) > 0 {
			d.scale = s
		}
	}
}

// WithScorer replaces the ability scorer.
func WithScorer(s *scoring.Scorer) Option {
	return func(d *Deriver) {
		if s != nil {
			d.scorer = s
		}
	}
}

// WithComposer replaces the background composer.
func WithComposer(c *background.Composer) Option {
	return func(d *Deriver) {
		if c != nil {
			d.composer = c
		}
	}
}

// Deriver turns charts into sheets. It is safe for concurrent use as long
// as its scorer is, which holds unless a shared source was injected.
type Deriver struct {
	scorer   *scoring.Scorer
	composer *background.Composer
	scale    rating.Scale
}

// NewDeriver creates a deriver with seeded scoring, the default background
// length and the standard rating scale.
func NewDeriver(opts ...Option) *Deriver {
	d := &Deriver{
		scorer:   scoring.NewScorer(),
		composer: background.NewComposer(),
		scale:    rating.Standard,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Scale reports the rating scale in use.
func (d *Deriver) Scale() rating.Scale { return d.scale }

// DeriveAbilityScores validates chart and scores it.
func (d *Deriver) DeriveAbilityScores(chart astro.NatalChart) (scoring.AbilityScores, error) {
	if err := chart.Validate(); err != nil {
		return scoring.AbilityScores{}, err
	}
	return d.scorer.Score(chart)
}

// DeriveCharacter builds the full sheet. A non-empty name replaces the
// chart's subject name, including in the perturbation seed.
func (d *Deriver) DeriveCharacter(chart astro.NatalChart, name string) (Sheet, error) {
	if name != "" {
		chart.Subject.Name = name
	}
	scores, err := d.DeriveAbilityScores(chart)
	if err != nil {
		return Sheet{}, err
	}

	picked := classify.Classify(chart)
	class := picked.Class.Info()
	total := scores.Total()

	sun := chart.Placements[astro.Sun]
	moon := chart.Placements[astro.Moon]
	mars := chart.Placements[astro.Mars]

	story := d.composer.Compose(background.Input{
		Name:   chart.Subject.Name,
		Class:  picked.Class,
		Sun:    sun.Sign,
		Moon:   moon.Sign,
		Mars:   mars.Sign,
		Scores: scores,
	})

	return Sheet{
		Name: chart.Subject.Name,
		Class: ClassInfo{
			ID:                picked.Class,
			Name:              class.Name,
			Description:       class.Description,
			MatchScore:        round2(picked.Score),
			PrimaryStats:      slices.Clone(class.PrimaryAbilities),
			PersonalityTraits: slices.Clone(class.PersonalityTraits),
		},
		Abilities:  scores,
		Total:      total,
		Rating:     d.scale.Grade(total),
		Background: story,
		Summary:    summarize(chart),
		Warnings:   chart.Warnings(),
	}, nil
}

func summarize(chart astro.NatalChart) ChartSummary {
	s := ChartSummary{
		Sun:  placementLabel(chart.Placements[astro.Sun]),
		Moon: placementLabel(chart.Placements[astro.Moon]),
	}
	if chart.Ascendant != nil {
		s.Ascendant = chart.Ascendant.Sign.DisplayName()
	}
	return s
}

func placementLabel(p astro.Placement) string {
	return fmt.Sprintf("%s 第%d宮", p.Sign.DisplayName(), p.House)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

var defaultDeriver = NewDeriver()

// DeriveAbilityScores scores chart with the default Deriver.
func DeriveAbilityScores(chart astro.NatalChart) (scoring.AbilityScores, error) {
	return defaultDeriver.DeriveAbilityScores(chart)
}

// DeriveCharacter builds a sheet with the default Deriver.
func DeriveCharacter(chart astro.NatalChart, name string) (Sheet, error) {
	return defaultDeriver.DeriveCharacter(chart, name)
}
