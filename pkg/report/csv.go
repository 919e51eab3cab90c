package report

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pyhub-apps/quotetally/pkg/quote"
)

// CSVHeader is the first line of every export
const CSVHeader = "designation,quantite_totale"

// Entry is one aggregated description with its total quantity
type Entry struct {
	Description string
	Qty         float64
}

// Sorted returns the entries of table by descending quantity. Equal
// quantities are ordered by French collation of the description.
func Sorted(table quote.Table) []Entry {
	entries := make([]Entry, 0, len(table))
	for desc, qty := range table {
		entries = append(entries, Entry{Description: desc, Qty: qty})
	}

	// a collator keeps internal buffers, one per call
	c := collate.New(language.French)
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Qty != b.Qty {
			return a.Qty > b.Qty
		}
		if cmp := c.CompareString(a.Description, b.Description); cmp != 0 {
			return cmp < 0
		}
		return a.Description < b.Description
	})
	return entries
}

// SerializeCSV renders table as CSV text. It returns false for an empty
// table, in which case nothing should be exported.
//
// Lines are separated by "\n" without a trailing newline. Descriptions are
// always quoted with inner quotes doubled and quantities use a decimal comma.
func SerializeCSV(table quote.Table) (string, bool) {
	if len(table) == 0 {
		return "", false
	}

	lines := make([]string, 0, len(table)+1)
	lines = append(lines, CSVHeader)
	for _, e := range Sorted(table) {
		lines = append(lines, quoteField(e.Description)+","+csvQuantity(e.Qty))
	}
	return strings.Join(lines, "\n"), true
}

// WriteCSV writes the CSV export of table to w
func WriteCSV(w io.Writer, table quote.Table) error {
	text, ok := SerializeCSV(table)
	if !ok {
		return ErrEmptyTable
	}
	_, err := io.WriteString(w, text)
	return err
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// csvQuantity uses the shortest representation with a decimal comma
func csvQuantity(q float64) string {
	return strings.Replace(strconv.FormatFloat(q, 'f', -1, 64), ".", ",", 1)
}
