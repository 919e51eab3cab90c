package quote

import (
	"reflect"
	"testing"
)

func TestParseQuantityLine(t *testing.T) {
	testCases := []struct {
		name        string
		line        string
		qty         float64
		description string
		unitPrice   float64
		total       float64
		taxRates    []string
	}{
		{
			name:        "inline description",
			line:        "Vis inox M6x20 10 2,50 20% 25,00",
			qty:         10,
			description: "Vis inox M6x20",
			unitPrice:   2.5,
			total:       25,
			taxRates:    []string{"20%"},
		},
		{
			name:      "detached quantity line",
			line:      "3 15,00 20% 45,00",
			qty:       3,
			unitPrice: 15,
			total:     45,
			taxRates:  []string{"20%"},
		},
		{
			name:        "space grouped thousands",
			line:        "Armoire électrique 2 1 250,00 20% 2 500,00",
			qty:         2,
			description: "Armoire électrique",
			unitPrice:   1250,
			total:       2500,
			taxRates:    []string{"20%"},
		},
		{
			name:        "description ending with a number",
			line:        "Câble 2 10 2,50 20% 25,00",
			qty:         10,
			description: "Câble 2",
			unitPrice:   2.5,
			total:       25,
			taxRates:    []string{"20%"},
		},
		{
			name:        "unit label",
			line:        "Câble RJ45 5 m 1,20 20% 6,00",
			qty:         5,
			description: "Câble RJ45",
			unitPrice:   1.2,
			total:       6,
			taxRates:    []string{"20%"},
		},
		{
			name:        "multiplication sign",
			line:        "Prise murale 4 x 3,50 20% 14,00",
			qty:         4,
			description: "Prise murale",
			unitPrice:   3.5,
			total:       14,
			taxRates:    []string{"20%"},
		},
		{
			name:        "exempt keyword",
			line:        "Formation sur site 1 450,00 exonéré 450,00",
			qty:         1,
			description: "Formation sur site",
			unitPrice:   450,
			total:       450,
			taxRates:    []string{"exonéré"},
		},
		{
			name:        "standalone currency and percent",
			line:        "Vis 10 2,50 € 20 % 25,00 €",
			qty:         10,
			description: "Vis",
			unitPrice:   2.5,
			total:       25,
			taxRates:    []string{"20 %"},
		},
		{
			name:        "two tax columns",
			line:        "Prestation 3 40,00 20% NP 120,00",
			qty:         3,
			description: "Prestation",
			unitPrice:   40,
			total:       120,
			taxRates:    []string{"20%", "NP"},
		},
		{
			name:        "no tax column",
			line:        "Vis 10 2,50 25,00",
			qty:         10,
			description: "Vis",
			unitPrice:   2.5,
			total:       25,
		},
		{
			name:        "duplicated total column",
			line:        "Vis 10 2,50 20% 25,00 25,00",
			qty:         10,
			description: "Vis",
			unitPrice:   2.5,
			total:       25,
			taxRates:    []string{"20%"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			row, ok := ParseQuantityLine(tc.line)
			if !ok {
				t.Fatalf("Expected %q to parse as a quantity row", tc.line)
			}
			if row.Qty != tc.qty {
				t.Errorf("Expected qty %v, got %v", tc.qty, row.Qty)
			}
			if row.Description != tc.description {
				t.Errorf("Expected description %q, got %q", tc.description, row.Description)
			}
			if row.UnitPrice != tc.unitPrice {
				t.Errorf("Expected unit price %v, got %v", tc.unitPrice, row.UnitPrice)
			}
			if row.Total != tc.total {
				t.Errorf("Expected total %v, got %v", tc.total, row.Total)
			}
			if !reflect.DeepEqual(row.TaxRates, tc.taxRates) {
				t.Errorf("Expected tax rates %q, got %q", tc.taxRates, row.TaxRates)
			}
		})
	}
}

func TestParseQuantityLineRejects(t *testing.T) {
	lines := []string{
		"",
		"Vis inox",
		"TOTAL HT 120,00",
		"25,00",
		"10 25,00",
		"0 2,50 20% 0,00",
		"Page 1 / 2",
		"Câble HDMI",
		"2 mètres",
	}

	for _, line := range lines {
		if row, ok := ParseQuantityLine(line); ok {
			t.Errorf("Expected %q to be rejected, got %+v", line, row)
		}
	}
}

// Readings where the line alone cannot tell which column a number belongs to.
// The chosen interpretation is kept stable here.
func TestParseQuantityLineAmbiguousReadings(t *testing.T) {
	testCases := []struct {
		name        string
		line        string
		qty         float64
		description string
		unitPrice   float64
		total       float64
	}{
		{
			name:        "point before fewer than three digits is a decimal point",
			line:        "Gaine 1.5 4,00 20% 6,00",
			qty:         1.5,
			description: "Gaine",
			unitPrice:   4,
			total:       6,
		},
		{
			name:        "point before three digits groups thousands",
			line:        "Vis 1.000 0,10 20% 100,00",
			qty:         1000,
			description: "Vis",
			unitPrice:   0.1,
			total:       100,
		},
		{
			name:        "unit price takes the longest space grouping",
			line:        "Tube PVC 40 12 250,00 20% 3 000,00",
			qty:         40,
			description: "Tube PVC",
			unitPrice:   12250,
			total:       3000,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			row, ok := ParseQuantityLine(tc.line)
			if !ok {
				t.Fatalf("Failed to parse %q", tc.line)
			}
			if row.Qty != tc.qty || row.Description != tc.description {
				t.Errorf("Expected %q x %v, got %q x %v", tc.description, tc.qty, row.Description, row.Qty)
			}
			if row.UnitPrice != tc.unitPrice || row.Total != tc.total {
				t.Errorf("Expected unit price %v and total %v, got %v and %v",
					tc.unitPrice, tc.total, row.UnitPrice, row.Total)
			}
		})
	}
}

func TestSegmenterStrategyOrder(t *testing.T) {
	line := "Vis 10 2,50 25,00 25,00"

	row, ok := NewSegmenter().ParseQuantityLine(line)
	if !ok {
		t.Fatalf("Failed to parse %q", line)
	}
	if row.Strategy != "strict" || row.Qty != 10 || row.Description != "Vis" {
		t.Errorf("Expected strict reading qty 10 of \"Vis\", got %+v", row)
	}

	row, ok = NewSegmenter(LenientStrategy, StrictStrategy).ParseQuantityLine(line)
	if !ok {
		t.Fatalf("Failed to parse %q", line)
	}
	if row.Strategy != "lenient" || row.Qty != 2.5 || row.Description != "Vis 10" {
		t.Errorf("Expected lenient reading qty 2.5 of \"Vis 10\", got %+v", row)
	}
}

type fixedParser struct {
	name string
	row  ParsedRow
	ok   bool
}

func (p fixedParser) Name() string { return p.name }

func (p fixedParser) ParseRow(string) (ParsedRow, bool) {
	row := p.row
	row.Strategy = p.name
	return row, p.ok
}

func TestSegmenterFirstSuccessWins(t *testing.T) {
	s := NewSegmenter(
		fixedParser{name: "never"},
		fixedParser{name: "second", row: ParsedRow{Qty: 2}, ok: true},
		fixedParser{name: "third", row: ParsedRow{Qty: 3}, ok: true},
	)

	if got := s.Strategies(); !reflect.DeepEqual(got, []string{"never", "second", "third"}) {
		t.Errorf("Unexpected strategies %v", got)
	}

	row, ok := s.ParseQuantityLine("anything")
	if !ok || row.Strategy != "second" || row.Qty != 2 {
		t.Errorf("Expected the second strategy to win, got %+v, %v", row, ok)
	}

	if _, ok := NewSegmenter(fixedParser{name: "never"}).ParseQuantityLine("anything"); ok {
		t.Error("Expected no result when every strategy fails")
	}
}

func TestCursorTryConsumeTrailing(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		kind     tokenKind
		expected []string
	}{
		{"money single", "Vis 25,00", kindMoney, []string{"25,00"}},
		{"money grouped first", "2 1 250,00", kindMoney, []string{"1 250,00", "250,00"}},
		{"money longest group", "Total 1 250 000,00", kindMoney, []string{"1 250 000,00", "250 000,00", "000,00"}},
		{"money with currency", "Vis 25,00 €", kindMoney, []string{"25,00"}},
		{"money rejects percent", "Vis 20%", kindMoney, nil},
		{"tax percent", "Vis 20%", kindTaxRate, []string{"20%"}},
		{"tax split percent", "Vis 5,5 %", kindTaxRate, []string{"5,5 %"}},
		{"tax keyword", "Vis néant", kindTaxRate, []string{"néant"}},
		{"tax bare number", "Vis 20", kindTaxRate, []string{"20"}},
		{"tax bare number too large", "Vis 120", kindTaxRate, nil},
		{"unit label", "Vis 10 pcs", kindUnitLabel, []string{"pcs"}},
		{"unit label accented", "Vis 10 Pièces", kindUnitLabel, []string{"Pièces"}},
		{"multiplier", "Vis 10 ×", kindMultiplier, []string{"×"}},
		{"quantity single first", "Lot 1 250", kindQuantity, []string{"250", "1 250"}},
		{"quantity not positive", "Vis 0", kindQuantity, nil},
		{"empty", "", kindMoney, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, tok := range newCursor(tc.line).tryConsumeTrailing(tc.kind) {
				got = append(got, tok.text)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("%s: expected %q, got %q", tc.kind, tc.expected, got)
			}
		})
	}
}

func TestCursorRemainder(t *testing.T) {
	c := newCursor("  Vis   inox 10 2,50  ")
	toks := c.tryConsumeTrailing(kindMoney)
	if len(toks) != 1 {
		t.Fatalf("Expected one money reading, got %d", len(toks))
	}
	if got := toks[0].rest.remainder(); got != "Vis inox 10" {
		t.Errorf("Expected remainder %q, got %q", "Vis inox 10", got)
	}
}
