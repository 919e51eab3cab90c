package quote

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pyhub-apps/quotetally/pkg/extractors"
	"github.com/pyhub-apps/quotetally/pkg/pdf"
)

// PageSource supplies the text fragments of a document page by page
type PageSource interface {
	PageCount() int
	Fragments(ctx context.Context, pageNumber int) ([]pdf.TextFragment, error)
}

// Result is the outcome of one document analysis
type Result struct {
	PagesAnalyzed   int
	TotalRows       int
	Aggregated      Table
	HasReadableText bool
}

// UniqueCount returns the number of distinct descriptions
func (r *Result) UniqueCount() int {
	return len(r.Aggregated)
}

// Status returns ErrNoText when the document had no extractable text,
// ErrNoRows when no item row was recognized, and nil otherwise
func (r *Result) Status() error {
	switch {
	case !r.HasReadableText:
		return ErrNoText
	case len(r.Aggregated) == 0:
		return ErrNoRows
	}
	return nil
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger. Rows are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithBufferCapacity sets how many description lines are kept
func WithBufferCapacity(capacity int) Option {
	return func(a *Analyzer) {
		a.bufferCapacity = capacity
	}
}

// WithStrategies replaces the row parsing strategies, tried in order
func WithStrategies(strategies ...RowParser) Option {
	return func(a *Analyzer) {
		a.segmenter = NewSegmenter(strategies...)
	}
}

// WithLineBuilder sets the line reconstructor
func WithLineBuilder(lb *extractors.LineBuilder) Option {
	return func(a *Analyzer) {
		if lb != nil {
			a.lines = lb
		}
	}
}

// Analyzer extracts and aggregates item rows from documents. It owns one
// Session, reset at the start of every analysis, so an Analyzer must not run
// two analyses at the same time.
type Analyzer struct {
	logger         *slog.Logger
	segmenter      *Segmenter
	bufferCapacity int
	lines          *extractors.LineBuilder
	session        *Session
}

// NewAnalyzer creates an analyzer with the given options
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		logger:         slog.Default(),
		segmenter:      NewSegmenter(),
		bufferCapacity: DefaultBufferCapacity,
		lines:          extractors.NewLineBuilder(),
		session:        NewSession(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Session returns the session of the last analysis
func (a *Analyzer) Session() *Session {
	return a.session
}

// Analyze reads every page of src in order and aggregates the item rows.
// Any page error aborts the analysis and no partial result is returned.
func (a *Analyzer) Analyze(ctx context.Context, src PageSource) (*Result, error) {
	a.session.Reset()

	pageCount := src.PageCount()
	a.session.setPagesAnalyzed(pageCount)
	a.logger.Info("analysis started", "pages", pageCount)

	scanner := a.newScanner()
	readable := false

	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		if err := ctx.Err(); err != nil {
			a.session.Reset()
			return nil, err
		}

		fragments, err := src.Fragments(ctx, pageNum)
		if err != nil {
			a.session.Reset()
			return nil, fmt.Errorf("failed to read page %d: %w", pageNum, err)
		}

		for _, f := range fragments {
			if strings.TrimSpace(f.Text) != "" {
				readable = true
				break
			}
		}

		lines := a.lines.BuildLines(fragments)
		rows := a.scanPage(scanner, pageNum, lines)
		a.logger.Debug("page scanned", "page", pageNum, "fragments", len(fragments), "lines", len(lines), "rows", rows)
	}

	result := a.result(readable)
	a.logger.Info("analysis finished",
		"pages", result.PagesAnalyzed,
		"rows", result.TotalRows,
		"unique", result.UniqueCount())
	return result, nil
}

// AnalyzeLines runs the analysis over already reconstructed lines, one slice
// per page
func (a *Analyzer) AnalyzeLines(pages [][]string) *Result {
	a.session.Reset()
	a.session.setPagesAnalyzed(len(pages))

	scanner := a.newScanner()
	readable := false
	for i, lines := range pages {
		if len(lines) > 0 {
			readable = true
		}
		a.scanPage(scanner, i+1, lines)
	}
	return a.result(readable)
}

func (a *Analyzer) newScanner() *PageScanner {
	return NewPageScanner(a.segmenter, a.bufferCapacity, a.session.Commit)
}

// scanPage runs a freshly reset scanner over the lines of one page and
// returns the number of committed rows
func (a *Analyzer) scanPage(scanner *PageScanner, pageNum int, lines []string) int {
	scanner.Reset()
	rows := 0
	for _, line := range lines {
		ev := scanner.Scan(line)
		switch ev.Kind {
		case LineRow:
			rows++
			a.logger.Debug("row committed",
				"page", pageNum,
				"description", ev.Description,
				"qty", ev.Row.Qty,
				"strategy", ev.Row.Strategy)
		case LineRowRejected:
			a.logger.Debug("row skipped without description", "page", pageNum, "line", ev.Line)
		}
	}
	return rows
}

func (a *Analyzer) result(readable bool) *Result {
	return &Result{
		PagesAnalyzed:   a.session.PagesAnalyzed(),
		TotalRows:       a.session.TotalRows(),
		Aggregated:      a.session.Snapshot(),
		HasReadableText: readable,
	}
}
