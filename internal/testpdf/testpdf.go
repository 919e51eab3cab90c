// Package testpdf builds small uncompressed PDFs in memory for tests.
package testpdf

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Text is a string drawn at a baseline position with the Helvetica font
type Text struct {
	X, Y float64
	Size float64
	S    string
}

// Page is the ordered list of texts drawn on one page
type Page []Text

// Row lays out cells on one baseline starting at x=50, one column every 90pt
func Row(y float64, cells ...string) []Text {
	texts := make([]Text, 0, len(cells))
	for i, c := range cells {
		texts = append(texts, Text{X: 50 + float64(i)*90, Y: y, Size: 10, S: c})
	}
	return texts
}

// Lines lays out one text per line going down the page from y=780
func Lines(lines ...string) Page {
	page := make(Page, 0, len(lines))
	for i, l := range lines {
		page = append(page, Text{X: 50, Y: 780 - float64(i)*14, Size: 10, S: l})
	}
	return page
}

// Build returns a complete PDF with one page per argument. Text is encoded
// with WinAnsiEncoding so French accents survive the round trip.
func Build(pages ...Page) []byte {
	var buf bytes.Buffer
	var offsets []int

	object := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	// 1 catalog, 2 page tree, 3 font, then page/content pairs
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+i*2)
	}
	object("<< /Type /Catalog /Pages 2 0 R >>")
	object(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	object("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding " +
		"/FirstChar 32 /LastChar 255 /Widths [" + strings.TrimSpace(strings.Repeat("500 ", 224)) + "] >>")

	for i, page := range pages {
		object(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+i*2))

		stream := contentStream(page)
		object(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

func contentStream(page Page) string {
	var sb strings.Builder
	for _, t := range page {
		size := t.Size
		if size == 0 {
			size = 10
		}
		fmt.Fprintf(&sb, "BT /F1 %g Tf %g %g Td (%s) Tj ET\n", size, t.X, t.Y, escape(t.S))
	}
	return sb.String()
}

func escape(s string) string {
	encoded, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil {
		encoded = s
	}
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(encoded)
}

// Join concatenates rows into one page
func Join(rows ...[]Text) Page {
	var page Page
	for _, r := range rows {
		page = append(page, r...)
	}
	return page
}
