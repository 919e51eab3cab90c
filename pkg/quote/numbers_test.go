package quote

import (
	"testing"
)

func TestParseNumber(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"10", 10, true},
		{"2,50", 2.5, true},
		{"1 250,00", 1250, true},
		{"1\u00a0250,5", 1250.5, true},
		{"1\u202f000", 1000, true},
		{"1.250,00", 1250, true},
		{"1,250.50", 1250.5, true},
		{"1.250", 1250, true},
		{"1.250.000", 1250000, true},
		{"2.5", 2.5, true},
		{"12.50", 12.5, true},
		{"1'250,00", 1250, true},
		{"-3,5", -3.5, true},
		{"+4", 4, true},
		{"", 0, false},
		{"-", 0, false},
		{"abc", 0, false},
		{"12a", 0, false},
		{"20%", 0, false},
		{"1e5", 0, false},
		{"M6x20", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseNumber(tc.input)
			if ok != tc.ok {
				t.Fatalf("ParseNumber(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			}
			if ok && got != tc.expected {
				t.Errorf("ParseNumber(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"25,00", 25, true},
		{"25,00€", 25, true},
		{"€25,00", 25, true},
		{"12EUR", 12, true},
		{"12euros", 12, true},
		{"$9.99", 9.99, true},
		{"20%", 0, false},
		{"€", 0, false},
		{"HT", 0, false},
	}

	for _, tc := range testCases {
		got, ok := parseMoney(tc.input)
		if ok != tc.ok || (ok && got != tc.expected) {
			t.Errorf("parseMoney(%q) = %v, %v; want %v, %v", tc.input, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestIntegerDigits(t *testing.T) {
	testCases := map[string]int{
		"250,00":  3,
		"2,50":    1,
		"500":     3,
		"500,00€": 3,
		"20%":     -1,
		"M6":      -1,
	}
	for in, want := range testCases {
		if got := integerDigits(in); got != want {
			t.Errorf("integerDigits(%q) = %d, want %d", in, got, want)
		}
	}
}
