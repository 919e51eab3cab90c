package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// document implements the Document interface on top of a text engine, with
// pdfcpu supplying validation and metadata
type document struct {
	engine     textEngine
	metadata   Metadata
	xTolerance float64
	closed     bool
}

// OpenFile reads a PDF file from disk and opens it
func OpenFile(path string, opts ...OpenOption) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return OpenBytes(data, opts...)
}

// OpenBytes opens a PDF held in memory. The pdfcpu probe runs first; its
// failure is only fatal when no text engine can open the buffer either.
func OpenBytes(data []byte, opts ...OpenOption) (Document, error) {
	config := defaultOpenConfig()
	for _, opt := range opts {
		opt(config)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrInvalidDocument)
	}

	metadata, probeErr := probe(data, config)
	if probeErr != nil {
		config.Logger.Warn("pdf: probe failed, trying text engines", "error", probeErr)
	}

	engine, err := openEngine(data, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(probeErr, err))
	}

	config.Logger.Debug("pdf: document opened",
		"engine", engine.name(),
		"pages", engine.numPage(),
		"title", metadata.Title)

	return &document{
		engine:     engine,
		metadata:   metadata,
		xTolerance: config.XTolerance,
	}, nil
}

// probe reads the buffer with pdfcpu in relaxed mode and extracts metadata
func probe(data []byte, config *openConfig) (Metadata, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if config.Password != "" {
		conf.UserPW = config.Password
		conf.OwnerPW = config.Password
	}

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return Metadata{}, fmt.Errorf("failed to count pages: %w", err)
	}

	// Validation fills the info fields; a failure here is not fatal
	if err := api.ValidateContext(ctx); err != nil {
		config.Logger.Warn("pdf: validation reported issues", "error", err)
	}

	return Metadata{
		Title:    ctx.Title,
		Author:   ctx.Author,
		Subject:  ctx.Subject,
		Creator:  ctx.Creator,
		Producer: ctx.Producer,
	}, nil
}

// openEngine opens the requested backend, falling back from ledongthuc to
// dslipak in auto mode
func openEngine(data []byte, config *openConfig) (textEngine, error) {
	switch config.Engine {
	case EngineLedongthuc:
		return openLedongthuc(data, config.Password)
	case EngineDslipak:
		return openDslipak(data, config.Password)
	case EngineAuto, "":
		engine, err := openLedongthuc(data, config.Password)
		if err == nil {
			return engine, nil
		}
		config.Logger.Debug("pdf: ledongthuc failed, falling back to dslipak", "error", err)

		fallback, fallbackErr := openDslipak(data, config.Password)
		if fallbackErr != nil {
			return nil, errors.Join(err, fallbackErr)
		}
		return fallback, nil
	default:
		return nil, fmt.Errorf("unknown engine %q", config.Engine)
	}
}

// PageCount returns the total number of pages
func (d *document) PageCount() int {
	return d.engine.numPage()
}

// Fragments returns the ordered text fragments of a page
func (d *document) Fragments(ctx context.Context, pageNumber int) ([]TextFragment, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pageNumber < 1 || pageNumber > d.engine.numPage() {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, pageNumber, d.engine.numPage())
	}

	glyphs, err := d.engine.glyphs(pageNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %d with %s: %w", pageNumber, d.engine.name(), err)
	}

	return mergeGlyphs(glyphs, d.xTolerance), nil
}

// Metadata returns the PDF metadata
func (d *document) Metadata() Metadata {
	return d.metadata
}

// Engine reports the backend in use
func (d *document) Engine() Engine {
	return d.engine.name()
}

// Close releases resources associated with the document
func (d *document) Close() error {
	d.closed = true
	return nil
}
