package pdf

import (
	"strings"
	"unicode"
)

// glyph is a single text run as returned by a backend library. Both libraries
// usually emit one run per character.
type glyph struct {
	s    string
	x    float64
	y    float64
	w    float64
	size float64
	font string
}

// fragmentBuilder accumulates glyphs belonging to the same word
type fragmentBuilder struct {
	text   strings.Builder
	x0     float64
	x1     float64
	y      float64
	height float64
	font   string
	open   bool
}

func (b *fragmentBuilder) start(g glyph) {
	b.text.Reset()
	b.text.WriteString(g.s)
	b.x0 = g.x
	b.x1 = g.x + g.w
	b.y = g.y
	b.height = g.size
	b.font = g.font
	b.open = true
}

func (b *fragmentBuilder) add(g glyph) {
	b.text.WriteString(g.s)
	b.x1 = max(b.x1, g.x+g.w)
	b.height = max(b.height, g.size)
}

func (b *fragmentBuilder) fragment() TextFragment {
	y := b.y
	return TextFragment{
		Text:      b.text.String(),
		X:         b.x0,
		BaselineY: &y,
		Width:     b.x1 - b.x0,
		Height:    b.height,
		Font:      b.font,
	}
}

// mergeGlyphs groups consecutive glyphs into word fragments, keeping the
// engine's order. A glyph starts a new fragment when it is whitespace, sits on
// another baseline, or is separated from the previous glyph by more than
// xTolerance or 30% of its own width. A fragment is flagged EndOfLine when the
// next glyph moves to another baseline and returns to the left of it.
func mergeGlyphs(glyphs []glyph, xTolerance float64) []TextFragment {
	var fragments []TextFragment
	var current fragmentBuilder

	flush := func() {
		if current.open {
			fragments = append(fragments, current.fragment())
			current.open = false
		}
	}

	// reference is the position of the most recent fragment, open or emitted
	reference := func() (y, x0, height float64, ok bool) {
		if current.open {
			return current.y, current.x0, current.height, true
		}
		if len(fragments) == 0 {
			return 0, 0, 0, false
		}
		last := fragments[len(fragments)-1]
		if last.BaselineY == nil {
			return 0, 0, 0, false
		}
		return *last.BaselineY, last.X, last.Height, true
	}

	for _, g := range glyphs {
		if strings.TrimFunc(g.s, unicode.IsSpace) == "" {
			flush()
			continue
		}

		if y, x0, height, ok := reference(); ok {
			if abs(g.y-y) > baselineJitter(height) && g.x < x0 {
				flush()
				fragments[len(fragments)-1].EndOfLine = true
			}
		}

		if !current.open {
			current.start(g)
			continue
		}

		gap := g.x - current.x1
		sameBaseline := abs(g.y-current.y) <= baselineJitter(current.height)
		if !sameBaseline || gap > xTolerance || (g.w > 0 && gap > g.w*0.3) || gap < -xTolerance {
			flush()
			current.start(g)
			continue
		}

		current.add(g)
	}

	flush()
	return fragments
}

// baselineJitter is the vertical drift tolerated inside one word
func baselineJitter(height float64) float64 {
	if height <= 0 {
		return 1.0
	}
	return max(1.0, height*0.2)
}
