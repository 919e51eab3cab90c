package pdf

import (
	"context"
)

// Document is an opened PDF whose pages can be read as text fragments
type Document interface {
	// PageCount returns the total number of pages
	PageCount() int

	// Fragments returns the ordered text fragments of a page (1-based)
	Fragments(ctx context.Context, pageNumber int) ([]TextFragment, error)

	// Metadata returns the document info dictionary, empty when unavailable
	Metadata() Metadata

	// Engine reports which backend produces the fragments
	Engine() Engine

	// Close releases resources associated with the document
	Close() error
}

// textEngine is implemented by each backend library adapter
type textEngine interface {
	name() Engine
	numPage() int
	glyphs(pageNumber int) ([]glyph, error)
}
