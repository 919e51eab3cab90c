package quote

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	plainNumber     = regexp.MustCompile(`^\d+(\.\d+)?$`)
	pointThousands  = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
	digitGroup      = regexp.MustCompile(`^\d{1,3}$`)
	currencyMarkers = []string{"€", "eur", "euros", "euro", "$", "£"}
)

// ParseNumber parses a French-formatted number. Thousands separators (spaces,
// non-breaking spaces, grouping points, apostrophes) are stripped and a decimal
// comma becomes a point. When both a point and a comma appear, the last one is
// the decimal separator.
func ParseNumber(s string) (float64, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\u2009', '\'', '\u2019':
			return -1
		}
		return r
	}, s)

	negative := false
	switch {
	case strings.HasPrefix(s, "-"), strings.HasPrefix(s, "−"):
		negative = true
		s = strings.TrimLeft(s, "-−")
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}

	lastComma := strings.LastIndex(s, ",")
	lastPoint := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastPoint >= 0:
		if lastComma > lastPoint {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastPoint >= 0:
		if pointThousands.MatchString(s) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	if !plainNumber.MatchString(s) {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// stripCurrency removes a currency marker attached before or after an amount
func stripCurrency(s string) string {
	lower := strings.ToLower(s)
	for _, m := range currencyMarkers {
		if strings.HasSuffix(lower, m) {
			return s[:len(s)-len(m)]
		}
		if strings.HasPrefix(lower, m) {
			return s[len(m):]
		}
	}
	return s
}

// isCurrency reports whether a whole token is a currency marker
func isCurrency(token string) bool {
	lower := strings.ToLower(token)
	for _, m := range currencyMarkers {
		if lower == m {
			return true
		}
	}
	return false
}

// parseMoney parses an amount with an optional attached currency marker
func parseMoney(token string) (float64, bool) {
	if strings.ContainsRune(token, '%') {
		return 0, false
	}
	return ParseNumber(stripCurrency(token))
}

// integerDigits returns the number of digits before the decimal comma of an
// amount token, or -1 when the token is not a simple comma-decimal amount
func integerDigits(token string) int {
	token = stripCurrency(token)
	token = strings.TrimLeft(token, "-−")
	if i := strings.IndexByte(token, ','); i >= 0 {
		token = token[:i]
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return -1
		}
	}
	return len(token)
}
