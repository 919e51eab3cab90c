package quote

import (
	"strings"
)

// ParsedRow is the result of segmenting one quantity line
type ParsedRow struct {
	Qty         float64
	Description string // empty when the line carries no inline description
	UnitPrice   float64
	Total       float64
	TaxRates    []string
	Unit        string
	Strategy    string
}

// RowParser recovers the fields of a quantity line
type RowParser interface {
	Name() string
	ParseRow(line string) (ParsedRow, bool)
}

// peelStep consumes zero or more trailing fields from c and calls next with
// every acceptable remainder until next succeeds
type peelStep func(c cursor, row *ParsedRow, next func(cursor) bool) bool

// peelParser is a RowParser made of peel steps applied right to left
type peelParser struct {
	name  string
	steps []peelStep
}

func (p *peelParser) Name() string {
	return p.name
}

// ParseRow applies the peel steps depth-first. The first complete parse wins.
func (p *peelParser) ParseRow(line string) (ParsedRow, bool) {
	var row ParsedRow

	var run func(i int, c cursor) bool
	run = func(i int, c cursor) bool {
		if i == len(p.steps) {
			row.Description = c.remainder()
			return true
		}
		return p.steps[i](c, &row, func(rest cursor) bool {
			return run(i+1, rest)
		})
	}

	if !run(0, newCursor(line)) {
		return ParsedRow{}, false
	}
	row.Strategy = p.name
	return row, true
}

// required peels exactly one field of the given kind
func required(kind tokenKind, set func(*ParsedRow, token)) peelStep {
	return func(c cursor, row *ParsedRow, next func(cursor) bool) bool {
		for _, tok := range c.tryConsumeTrailing(kind) {
			set(row, tok)
			if next(tok.rest) {
				return true
			}
		}
		return false
	}
}

// repeated peels up to max fields of the given kind and stops at the first
// token that is not of that kind. With longestFirst the most peeled reading is
// tried first, otherwise the least.
func repeated(kind tokenKind, max int, longestFirst bool, record func(*ParsedRow, []string)) peelStep {
	return func(c cursor, row *ParsedRow, next func(cursor) bool) bool {
		var walk func(c cursor, taken []string) bool
		walk = func(c cursor, taken []string) bool {
			stop := func() bool {
				record(row, taken)
				return next(c)
			}

			if !longestFirst && stop() {
				return true
			}
			if len(taken) < max {
				for _, tok := range c.tryConsumeTrailing(kind) {
					if walk(tok.rest, append(taken[:len(taken):len(taken)], tok.text)) {
						return true
					}
				}
			}
			return longestFirst && stop()
		}
		return walk(c, nil)
	}
}

// unitMarkers peels an optional unit label and an optional multiplication
// sign, at most one of each and in either order
func unitMarkers(c cursor, row *ParsedRow, next func(cursor) bool) bool {
	var walk func(c cursor, label, sign bool) bool
	walk = func(c cursor, label, sign bool) bool {
		if !label {
			for _, tok := range c.tryConsumeTrailing(kindUnitLabel) {
				row.Unit = tok.text
				if walk(tok.rest, true, sign) {
					return true
				}
				row.Unit = ""
			}
		}
		if !sign {
			for _, tok := range c.tryConsumeTrailing(kindMultiplier) {
				if walk(tok.rest, label, true) {
					return true
				}
			}
		}
		return next(c)
	}
	return walk(c, false, false)
}

func newPeelParser(name string, extraMoney bool) *peelParser {
	steps := []peelStep{
		required(kindMoney, func(r *ParsedRow, t token) { r.Total = t.value }),
	}
	if extraMoney {
		steps = append(steps, repeated(kindMoney, 2, true, func(*ParsedRow, []string) {}))
	}
	steps = append(steps,
		repeated(kindTaxRate, 2, false, func(r *ParsedRow, taken []string) {
			r.TaxRates = nil
			// peeled right to left, reported in line order
			for i := len(taken) - 1; i >= 0; i-- {
				r.TaxRates = append(r.TaxRates, taken[i])
			}
		}),
		required(kindMoney, func(r *ParsedRow, t token) { r.UnitPrice = t.value }),
		unitMarkers,
		required(kindQuantity, func(r *ParsedRow, t token) { r.Qty = t.value }),
	)
	return &peelParser{name: name, steps: steps}
}

var (
	// StrictStrategy also peels up to two extra amount columns after the
	// total, for layouts that repeat the total or print a discounted one
	StrictStrategy RowParser = newPeelParser("strict", true)

	// LenientStrategy expects the unit price right before the tax columns
	LenientStrategy RowParser = newPeelParser("lenient", false)
)

// DefaultStrategies returns the strategies tried by a default Segmenter
func DefaultStrategies() []RowParser {
	return []RowParser{StrictStrategy, LenientStrategy}
}

// Segmenter parses quantity lines with an ordered list of strategies
type Segmenter struct {
	strategies []RowParser
}

// NewSegmenter creates a segmenter. Without strategies the defaults are used.
func NewSegmenter(strategies ...RowParser) *Segmenter {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Segmenter{strategies: strategies}
}

// Strategies returns the names of the configured strategies in order
func (s *Segmenter) Strategies() []string {
	names := make([]string, len(s.strategies))
	for i, st := range s.strategies {
		names[i] = st.Name()
	}
	return names
}

// ParseQuantityLine returns the quantity and the inline description of a
// quantity row. The first strategy that succeeds wins.
func (s *Segmenter) ParseQuantityLine(line string) (ParsedRow, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParsedRow{}, false
	}
	for _, st := range s.strategies {
		if row, ok := st.ParseRow(line); ok {
			return row, true
		}
	}
	return ParsedRow{}, false
}

var defaultSegmenter = NewSegmenter()

// ParseQuantityLine parses line with the default strategies
func ParseQuantityLine(line string) (ParsedRow, bool) {
	return defaultSegmenter.ParseQuantityLine(line)
}
