// Package quotetally extracts item quantities from vendor quote PDFs and
// aggregates them by description across every page of a document
package quotetally

import (
	"context"
	"fmt"

	"github.com/pyhub-apps/quotetally/pkg/pdf"
	"github.com/pyhub-apps/quotetally/pkg/quote"
	"github.com/pyhub-apps/quotetally/pkg/report"
)

// Re-export types from the sub-packages for the public API
type (
	Document     = pdf.Document
	TextFragment = pdf.TextFragment
	Metadata     = pdf.Metadata
	Engine       = pdf.Engine
	OpenOption   = pdf.OpenOption
	Result       = quote.Result
	Table        = quote.Table
	Option       = quote.Option
	RowParser    = quote.RowParser
	ParsedRow    = quote.ParsedRow
	Entry        = report.Entry
)

// Re-export engines and option functions
const (
	EngineAuto       = pdf.EngineAuto
	EngineLedongthuc = pdf.EngineLedongthuc
	EngineDslipak    = pdf.EngineDslipak
)

var (
	WithEngine     = pdf.WithEngine
	WithPassword   = pdf.WithPassword
	WithXTolerance = pdf.WithXTolerance

	WithLogger         = quote.WithLogger
	WithBufferCapacity = quote.WithBufferCapacity
	WithStrategies     = quote.WithStrategies
	WithLineBuilder    = quote.WithLineBuilder

	StrictStrategy  = quote.StrictStrategy
	LenientStrategy = quote.LenientStrategy
)

// Re-export sentinel errors
var (
	ErrInvalidDocument = pdf.ErrInvalidDocument
	ErrNoText          = quote.ErrNoText
	ErrNoRows          = quote.ErrNoRows
	ErrEmptyTable      = report.ErrEmptyTable
)

// Open opens a PDF file. The ledongthuc engine is tried first and dslipak is
// used when it cannot read the file.
func Open(path string, opts ...OpenOption) (Document, error) {
	return pdf.OpenFile(path, opts...)
}

// OpenBytes opens a PDF held in memory
func OpenBytes(data []byte, opts ...OpenOption) (Document, error) {
	return pdf.OpenBytes(data, opts...)
}

// AnalyzeDocument extracts and aggregates the item rows of an opened document
func AnalyzeDocument(ctx context.Context, doc Document, opts ...Option) (*Result, error) {
	return quote.NewAnalyzer(opts...).Analyze(ctx, doc)
}

// AnalyzeBytes opens data with the default engines and analyzes it
func AnalyzeBytes(ctx context.Context, data []byte, opts ...Option) (*Result, error) {
	doc, err := pdf.OpenBytes(data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	result, err := AnalyzeDocument(ctx, doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze document: %w", err)
	}
	return result, nil
}

// AnalyzeFile opens the PDF at path with the default engines and analyzes it
func AnalyzeFile(ctx context.Context, path string, opts ...Option) (*Result, error) {
	doc, err := pdf.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	result, err := AnalyzeDocument(ctx, doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", path, err)
	}
	return result, nil
}

// ParseQuantityLine parses one line with the default strategies
func ParseQuantityLine(line string) (ParsedRow, bool) {
	return quote.ParseQuantityLine(line)
}

// SerializeCSV renders the aggregation of a result as CSV text. It returns
// false when there is nothing to export.
func SerializeCSV(result *Result) (string, bool) {
	if result == nil {
		return "", false
	}
	return report.SerializeCSV(result.Aggregated)
}

// Sorted returns the entries of a result in export order
func Sorted(result *Result) []Entry {
	if result == nil {
		return nil
	}
	return report.Sorted(result.Aggregated)
}
