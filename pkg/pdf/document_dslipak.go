package pdf

import (
	"bytes"
	"fmt"

	gopdf "github.com/dslipak/pdf"
)

// dslipakEngine reads page content with the dslipak/pdf library. It is the
// fallback when ledongthuc cannot open a document.
type dslipakEngine struct {
	reader *gopdf.Reader
}

// openDslipak opens an in-memory PDF using the dslipak/pdf library
func openDslipak(data []byte, password string) (engine textEngine, err error) {
	defer func() {
		if r := recover(); r != nil {
			engine, err = nil, fmt.Errorf("dslipak: malformed document: %v", r)
		}
	}()

	var r *gopdf.Reader
	if password != "" {
		r, err = gopdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), oncePassword(password))
	} else {
		r, err = gopdf.NewReader(bytes.NewReader(data), int64(len(data)))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	return &dslipakEngine{reader: r}, nil
}

func (e *dslipakEngine) name() Engine {
	return EngineDslipak
}

func (e *dslipakEngine) numPage() int {
	return e.reader.NumPage()
}

func (e *dslipakEngine) glyphs(pageNumber int) (out []glyph, err error) {
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
