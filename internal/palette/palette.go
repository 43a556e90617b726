/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package palette generates complementary color pairs for block themes.
package palette

import (
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Style keys written by a generated theme.
const (
	NavigationBackgroundKey  = "navigationBackgroundColor"
	AccountMenuBackgroundKey = "accountMenuButtonBackgroundColor"
)

const (
	minSaturation   = 0.5
	saturationRange = 0.4
	minLightness    = 0.4
	lightnessRange  = 0.2
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// Pair is a harmonious color pair. Both colors share saturation and
// lightness; their hues are half a turn apart.
type Pair struct {
	Primary       string
	Secondary     string
	Hue           float64
	ComplementHue float64
	Saturation    float64
	Lightness     float64
}

// Style returns the style entries a generated theme applies to a block.
func (p Pair) Style() map[string]string {
	return map[string]string{
		NavigationBackgroundKey:  p.Primary,
		AccountMenuBackgroundKey: p.Secondary,
	}
}

// Generator draws color pairs from a random source.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded from the clock.
func NewGenerator() *Generator {
	now := uint64(time.Now().UnixNano())
	return &Generator{rng: rand.New(rand.NewPCG(now, now>>1))}
}

// NewSeededGenerator creates a generator with a reproducible sequence.
func NewSeededGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Generate returns a new harmonious pair.
func (g *Generator) Generate() Pair {
	h := g.rng.Float64()
	s := minSaturation + g.rng.Float64()*saturationRange
	l := minLightness + g.rng.Float64()*lightnessRange
	return PairFor(h, s, l)
}

// PairFor builds the pair for hue h in [0,1), saturation s and lightness l.
func PairFor(h, s, l float64) Pair {
	h2 := math.Mod(h+0.5, 1.0)
	return Pair{
		Primary:       HLSToHex(h, l, s),
		Secondary:     HLSToHex(h2, l, s),
		Hue:           h,
		ComplementHue: h2,
		Saturation:    s,
		Lightness:     l,
	}
}

// HLSToHex converts hue, lightness and saturation (all in [0,1]) to #rrggbb.
// Channels are truncated to 8 bits, not rounded.
func HLSToHex(h, l, s float64) string {
	c := colorful.Hsl(h*360, s, l).Clamped()
	return fmt.Sprintf("#%02x%02x%02x", uint8(c.R*255), uint8(c.G*255), uint8(c.B*255))
}

// IsHexColor reports whether value is a lowercase #rrggbb color.
func IsHexColor(value string) bool {
	return hexColorPattern.MatchString(value)
}

// ParseHex accepts any #rgb or #rrggbb color and returns its lowercase #rrggbb form.
func ParseHex(value string) (string, bool) {
	c, err := colorful.Hex(value)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}
