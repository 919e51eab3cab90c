package pdf

import (
	"bytes"
	"fmt"

	lpdf "github.com/ledongthuc/pdf"
)

// ledongthucEngine reads page content with the ledongthuc/pdf library, which
// gives the most accurate glyph positions
type ledongthucEngine struct {
	reader *lpdf.Reader
}

// openLedongthuc opens an in-memory PDF using the ledongthuc/pdf library
func openLedongthuc(data []byte, password string) (engine textEngine, err error) {
	defer func() {
		if r := recover(); r != nil {
			engine, err = nil, fmt.Errorf("ledongthuc: malformed document: %v", r)
		}
	}()

	var r *lpdf.Reader
	if password != "" {
		r, err = lpdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), oncePassword(password))
	} else {
		r, err = lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	return &ledongthucEngine{reader: r}, nil
}

func (e *ledongthucEngine) name() Engine {
	return EngineLedongthuc
}

func (e *ledongthucEngine) numPage() int {
	return e.reader.NumPage()
}

// glyphs returns the page's text runs in content-stream order
func (e *ledongthucEngine) glyphs(pageNumber int) (out []glyph, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("decoding content stream: %v", r)
		}
	}()

	page := e.reader.Page(pageNumber)
	if page.V.IsNull() {
		return nil, nil
	}

	content := page.Content()
	out = make([]glyph, 0, len(content.Text))
	for _, text := range content.Text {
		out = append(out, glyph{
			s:    text.S,
			x:    text.X,
			y:    text.Y,
			w:    text.W,
			size: text.FontSize,
			font: text.Font,
		})
	}

	return out, nil
}

// oncePassword returns the password on the first call and an empty string
// afterwards so the library stops retrying
func oncePassword(password string) func() string {
	used := false
	return func() string {
		if used {
			return ""
		}
		used = true
		return password
	}
}
