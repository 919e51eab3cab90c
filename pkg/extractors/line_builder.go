package extractors

import (
	"strings"

	"github.com/pyhub-apps/quotetally/pkg/pdf"
)

// LineBuilder groups positioned text fragments into logical lines by
// clustering their baselines
type LineBuilder struct {
	minTolerance  float64 // Smallest baseline drift that splits a line
	heightFactor  float64 // Share of the fragment height tolerated as drift
	defaultHeight float64 // Height assumed when the engine reports none
}

// NewLineBuilder creates a new line builder with default tolerances
func NewLineBuilder() *LineBuilder {
	return &LineBuilder{
		minTolerance:  2.0,
		heightFactor:  0.6,
		defaultHeight: 9.0,
	}
}

// SetTolerances sets the tolerances for baseline clustering
func (lb *LineBuilder) SetTolerances(minTolerance, heightFactor, defaultHeight float64) {
	lb.minTolerance = minTolerance
	lb.heightFactor = heightFactor
	lb.defaultHeight = defaultHeight
}

// tolerance returns the baseline drift allowed for a fragment
func (lb *LineBuilder) tolerance(f pdf.TextFragment) float64 {
	height := f.Height
	if height <= 0 {
		height = lb.defaultHeight
	}
	return max(lb.minTolerance, height*lb.heightFactor)
}

// BuildLines turns one page's fragments, in engine order, into logical lines.
// A fragment whose baseline drifts from the current reference by more than
// the tolerance starts a new line; an end-of-line marker flushes immediately
// and forces the next fragment onto a new line. Fragments without a baseline
// continue the current line.
func (lb *LineBuilder) BuildLines(fragments []pdf.TextFragment) []string {
	var lines []string
	var parts []string
	var reference float64
	hasReference := false

	flush := func() {
		if len(parts) == 0 {
			return
		}
		if line := NormalizeLine(strings.Join(parts, " ")); line != "" {
			lines = append(lines, line)
		}
		parts = parts[:0]
	}

	for _, frag := range fragments {
		text := NormalizeLine(frag.Text)
		if text == "" {
			continue
		}

		baseline, known := frag.Baseline()
		if !hasReference && known {
			reference = baseline
			hasReference = true
		}

		if len(parts) > 0 && known && hasReference && abs(baseline-reference) > lb.tolerance(frag) {
			flush()
			reference = baseline
		}

		parts = append(parts, text)

		if frag.EndOfLine {
			flush()
			hasReference = false
		}
	}

	flush()
	return lines
}

// NormalizeLine converts non-breaking spaces to spaces, collapses runs of
// whitespace and trims the result
func NormalizeLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Helper functions
func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
