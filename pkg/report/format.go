package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ExportPrefix starts every exported file name
const ExportPrefix = "pieces_devis_agregees"

// ExportFileName returns the date-stamped name of an export, using the UTC
// date of t
func ExportFileName(t time.Time, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s_%s.%s", ExportPrefix, t.UTC().Format("2006-01-02"), ext)
}

var frenchPrinter = message.NewPrinter(language.French)

// FormatQuantity renders q for display the French way, with grouped
// thousands and a decimal comma
func FormatQuantity(q float64) string {
	return frenchPrinter.Sprint(number.Decimal(q, number.MaxFractionDigits(3)))
}
