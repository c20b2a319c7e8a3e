// Package background writes the short origin story for a character.
package background

import (
	"fmt"
	"strings"

	"github.com/okian/astrohero/internal/domain/astro"
	"github.com/okian/astrohero/internal/domain/scoring"
	"github.com/okian/astrohero/internal/domain/tables"
	"github.com/rivo/uniseg"
)

// Length limits, counted in grapheme clusters.
const (
	DefaultMaxLength = 180
	Ellipsis         = "..."
	minMaxLength     = len(Ellipsis) + 1
	reputation       = "備受尊敬"
)

// Input carries everything the story refers to.
type Input struct {
	Name   string
	Class  tables.ClassID
	Sun    astro.Sign
	Moon   astro.Sign
	Mars   astro.Sign
	Scores scoring.AbilityScores
}

// Option applies a configuration option to the Composer.
type Option func(*Composer)

// WithMaxLength caps the story at n grapheme clusters. Values too small to
// hold the ellipsis are ignored.
func WithMaxLength(n int) Option {
	return func(c *Composer) {
		if n >= minMaxLength {
			c.maxLen = n
		}
	}
}

// Composer renders backgrounds. It holds no per-call state.
type Composer struct {
	maxLen int
}

// NewComposer creates a composer with the default length cap.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{maxLen: DefaultMaxLength}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxLength reports the configured cap.
func (c *Composer) MaxLength() int { return c.maxLen }

// Compose renders the three-paragraph story for in. Signs without phrases
// use the DefaultTraitSign entries.
func (c *Composer) Compose(in Input) string {
	class := in.Class.Info()
	sun, _ := tables.SunTraitFor(in.Sun)
	moon, _ := tables.MoonTraitFor(in.Moon)
	mars, _ := tables.MarsTraitFor(in.Mars)

	intro := fmt.Sprintf("%s是一位%s，%s。", in.Name, class.Name, class.Description)
	middle := fmt.Sprintf("%s在%s中成長，從小展現%s的%s特質。%s這份%s式的%s，讓%s走上%s之路。",
		sun.Origin, sun.Environment, in.Sun.DisplayName(), sun.Trait,
		moon.Calling, in.Moon.DisplayName(), moon.Trait, in.Name, class.Name)
	closing := fmt.Sprintf("在戰鬥中展現%s的%s風格。憑藉%d點力量、%d點敏捷和%d點智慧，%s已成為%s的冒險者，準備書寫屬於自己的傳奇。",
		in.Mars.DisplayName(), mars.Trait,
		in.Scores.Strength, in.Scores.Dexterity, in.Scores.Wisdom, in.Name, reputation)

	story := strings.Join([]string{intro, middle, closing}, "\n\n")
	return Truncate(story, c.maxLen)
}

// Truncate shortens s to at most max grapheme clusters, replacing the tail
// with Ellipsis. Cuts never split a cluster.
func Truncate(s string, max int) string {
	if max < minMaxLength || uniseg.GraphemeClusterCount(s) <= max {
		return s
	}
	keep := max - uniseg.GraphemeClusterCount(Ellipsis)
	var b strings.Builder
	b.Grow(len(s))
	rest, state := s, -1
	var cluster string
	for i := 0; i < keep && rest != ""; i++ {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		b.WriteString(cluster)
	}
	b.WriteString(Ellipsis)
	return b.String()
}
