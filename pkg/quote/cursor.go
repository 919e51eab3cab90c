package quote

import (
	"strings"
)

// tokenKind names the trailing field shapes the segmenter can peel
type tokenKind int

const (
	kindMoney tokenKind = iota
	kindTaxRate
	kindUnitLabel
	kindMultiplier
	kindQuantity
)

func (k tokenKind) String() string {
	switch k {
	case kindMoney:
		return "money"
	case kindTaxRate:
		return "tax-rate"
	case kindUnitLabel:
		return "unit-label"
	case kindMultiplier:
		return "multiplier"
	case kindQuantity:
		return "quantity"
	}
	return "unknown"
}

// exemptTaxKeywords are accepted in a tax-rate column instead of a percentage
var exemptTaxKeywords = map[string]bool{
	"-":               true,
	"np":              true,
	"nr":              true,
	"neant":           true,
	"autoliquidation": true,
	"exonere":         true,
}

// unitLabels may sit between the quantity and the unit price
var unitLabels = map[string]bool{
	"piece": true, "pieces": true, "pce": true, "pces": true, "pc": true, "pcs": true,
	"u": true, "un": true, "unite": true, "unites": true,
	"lot": true, "lots": true, "kit": true, "kits": true, "set": true, "sets": true,
	"ens": true, "ensemble": true, "forfait": true, "ff": true,
	"paire": true, "paires": true, "boite": true, "boites": true, "rouleau": true, "rouleaux": true,
	"m": true, "ml": true, "m2": true, "m3": true, "kg": true, "l": true,
	"h": true, "heure": true, "heures": true, "jour": true, "jours": true,
}

// cursor is a view of the tokens of a line that are not yet peeled; fields
// are consumed from the right end
type cursor struct {
	tokens []string
	end    int
}

// token is one way of consuming a trailing field
type token struct {
	text  string
	value float64
	rest  cursor
}

func newCursor(line string) cursor {
	tokens := strings.Fields(line)
	return cursor{tokens: tokens, end: len(tokens)}
}

func (c cursor) empty() bool {
	return c.end == 0
}

func (c cursor) last() string {
	return c.tokens[c.end-1]
}

func (c cursor) upTo(end int) cursor {
	return cursor{tokens: c.tokens, end: end}
}

// remainder joins the unconsumed tokens
func (c cursor) remainder() string {
	return strings.Join(c.tokens[:c.end], " ")
}

// tryConsumeTrailing lists the ways the right end of the cursor can be read as
// the given kind, preferred reading first. An empty result means the field is
// absent.
func (c cursor) tryConsumeTrailing(kind tokenKind) []token {
	if c.empty() {
		return nil
	}

	switch kind {
	case kindMoney:
		return c.trailingMoney()
	case kindTaxRate:
		return c.trailingTaxRate()
	case kindUnitLabel:
		label := strings.TrimSuffix(fold(c.last()), ".")
		if unitLabels[label] {
			return []token{{text: c.last(), rest: c.upTo(c.end - 1)}}
		}
	case kindMultiplier:
		switch c.last() {
		case "x", "X", "×":
			return []token{{text: c.last(), rest: c.upTo(c.end - 1)}}
		}
	case kindQuantity:
		return c.trailingQuantity()
	}
	return nil
}

// groupStarts returns the start indexes of space-grouped numbers ending at
// end-1, longest grouping first. "1 250 000,00" is split by the line
// normalization into three tokens that form one number.
func (c cursor) groupStarts(end int) []int {
	var starts []int
	for k := end - 1; k > 0; k-- {
		if k == end-1 {
			if integerDigits(c.tokens[k]) != 3 {
				break
			}
		} else if len(c.tokens[k]) != 3 || !digitGroup.MatchString(c.tokens[k]) {
			break
		}
		prev := c.tokens[k-1]
		if !digitGroup.MatchString(prev) {
			break
		}
		starts = append(starts, k-1)
	}

	// reverse so the longest grouping comes first
	for i, j := 0, len(starts)-1; i < j; i, j = i+1, j-1 {
		starts[i], starts[j] = starts[j], starts[i]
	}
	return starts
}

// trailingMoney reads an amount, with an optional standalone currency marker
// after it and optional space thousands separators
func (c cursor) trailingMoney() []token {
	end := c.end
	if isCurrency(c.tokens[end-1]) {
		end--
		if end == 0 {
			return nil
		}
	}

	var out []token
	for _, start := range append(c.groupStarts(end), end-1) {
		text := strings.Join(c.tokens[start:end], " ")
		if v, ok := parseMoney(text); ok {
			out = append(out, token{text: text, value: v, rest: c.upTo(start)})
		}
	}
	return out
}

// trailingTaxRate reads a percentage, an exemption keyword or a bare number
// no greater than 100
func (c cursor) trailingTaxRate() []token {
	last := c.last()

	if exemptTaxKeywords[fold(last)] {
		return []token{{text: last, rest: c.upTo(c.end - 1)}}
	}

	if last == "%" {
		if c.end < 2 {
			return nil
		}
		prev := c.tokens[c.end-2]
		if v, ok := ParseNumber(prev); ok {
			return []token{{text: prev + " %", value: v, rest: c.upTo(c.end - 2)}}
		}
		return nil
	}

	if strings.HasSuffix(last, "%") {
		if v, ok := ParseNumber(strings.TrimSuffix(last, "%")); ok {
			return []token{{text: last, value: v, rest: c.upTo(c.end - 1)}}
		}
		return nil
	}

	if v, ok := ParseNumber(last); ok && v >= 0 && v <= 100 {
		return []token{{text: last, value: v, rest: c.upTo(c.end - 1)}}
	}
	return nil
}

// trailingQuantity reads a positive number. The single-token reading comes
// first because a digit right before the quantity usually belongs to the
// description.
func (c cursor) trailingQuantity() []token {
	var out []token
	starts := c.groupStarts(c.end)
	candidates := append([]int{c.end - 1}, reversed(starts)...)
	for _, start := range candidates {
		text := strings.Join(c.tokens[start:c.end], " ")
		if v, ok := ParseNumber(text); ok && v > 0 {
			out = append(out, token{text: text, value: v, rest: c.upTo(start)})
		}
	}
	return out
}

func reversed(in []int) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
