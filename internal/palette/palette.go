// Package palette assigns circle colours the way the reference chart does:
// an ordinal scale over the ten-colour categorical palette, keyed by the
// circle's position modulo 3.
package palette

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Category10 is the classic ten-colour categorical palette
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Groups is the number of keys actually used by the visualisation
const Groups = 3

// Ordinal maps keys to range colours in order of first use
type Ordinal struct {
	colors []color.RGBA
	domain map[int]int
}

// NewOrdinal parses hex colours into a scale
func NewOrdinal(hexes []string) (*Ordinal, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("palette: empty range")
	}
	o := &Ordinal{
		colors: make([]color.RGBA, len(hexes)),
		domain: make(map[int]int),
	}
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette: colour %d: %w", i, err)
		}
		r, g, b := c.RGB255()
		o.colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return o, nil
}

// NewCategory10 returns an ordinal scale over Category10
func NewCategory10() *Ordinal {
	o, err := NewOrdinal(Category10)
	if err != nil {
		panic(err)
	}
	return o
}

// Color returns the colour for key, extending the domain on first use
func (o *Ordinal) Color(key int) color.RGBA {
	i, ok := o.domain[key]
	if !ok {
		i = len(o.domain)
		o.domain[key] = i
	}
	return o.colors[i%len(o.colors)]
}

// ForParticle returns the fill of particle index. Circles are bound to the
// particles after the anchor, so circle i draws particle i+1.
func (o *Ordinal) ForParticle(index int) color.RGBA {
	return o.Color((index - 1) % Groups)
}
