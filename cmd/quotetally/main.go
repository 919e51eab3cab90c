package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/pyhub-apps/quotetally/pkg/pdf"
	"github.com/pyhub-apps/quotetally/pkg/quote"
	"github.com/pyhub-apps/quotetally/pkg/report"
	"github.com/pyhub-apps/quotetally/pkg/watch"
	"github.com/spf13/cobra"
)

type options struct {
	outDir   string
	xlsx     bool
	watchDir string
	password string
	engine   string
	verbose  bool
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "quotetally [flags] <quote.pdf>...",
	Short: "Aggregate item quantities from supplier quote PDFs",
	Long: `Read the item table of one or more quote PDFs and sum the quantities
per designation, across all pages.

Examples:
  quotetally devis.pdf
  quotetally -o exports --xlsx devis-*.pdf
  quotetally --watch ~/Devis -o exports`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&opts.outDir, "output", "o", "", "write the CSV export into this directory")
	rootCmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "also write an XLSX export (requires --output or --watch)")
	rootCmd.Flags().StringVarP(&opts.watchDir, "watch", "w", "", "analyze every PDF dropped into this directory")
	rootCmd.Flags().StringVar(&opts.password, "password", "", "user password for encrypted PDFs")
	rootCmd.Flags().StringVar(&opts.engine, "engine", string(pdf.EngineAuto), "text engine: auto, ledongthuc or dslipak")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every detected row")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := validate(opts); err != nil {
		return err
	}

	ctx := cmd.Context()
	if opts.watchDir != "" {
		return runWatch(ctx, opts, logger)
	}

	if len(args) == 0 {
		return errors.New("no input files provided")
	}

	var failed int
	for _, path := range args {
		if err := process(ctx, path, opts, logger); err != nil {
			logger.Error("analysis failed", "file", path, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

// validate rejects flag combinations that cannot be honoured
func validate(opts options) error {
	switch opts.engine {
	case string(pdf.EngineAuto), string(pdf.EngineLedongthuc), string(pdf.EngineDslipak):
	default:
		return fmt.Errorf("invalid engine: %s (must be one of: auto, ledongthuc, dslipak)", opts.engine)
	}
	if opts.xlsx && opts.outDir == "" && opts.watchDir == "" {
		return errors.New("--xlsx needs an export directory: set --output or --watch")
	}
	return nil
}

// process analyzes one file, prints its summary and exports it when asked
func process(ctx context.Context, path string, opts options, logger *slog.Logger) error {
	doc, err := pdf.OpenFile(path,
		pdf.WithEngine(pdf.Engine(opts.engine)),
		pdf.WithPassword(opts.password),
		pdf.WithLogger(logger))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidDocument) {
			return fmt.Errorf("cannot read this document: %w", err)
		}
		return err
	}
	defer doc.Close()

	analyzer := quote.NewAnalyzer(quote.WithLogger(logger))
	result, err := analyzer.Analyze(ctx, doc)
	if err != nil {
		return err
	}

	printSummary(path, result)

	outDir := opts.outDir
	if outDir == "" && opts.watchDir != "" {
		outDir = filepath.Dir(path)
	}
	if outDir == "" || result.Status() != nil {
		return nil
	}

	paths, err := report.ExportFiles(result.Aggregated, report.ExportOptions{
		Dir:  outDir,
		Now:  time.Now(),
		XLSX: opts.xlsx,
		Summary: report.Summary{
			Source:        filepath.Base(path),
			PagesAnalyzed: result.PagesAnalyzed,
			TotalRows:     result.TotalRows,
			UniqueCount:   result.UniqueCount(),
		},
	})
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("Exported %s\n", p)
	}
	return nil
}

func printSummary(path string, result *quote.Result) {
	fmt.Printf("=== %s ===\n", filepath.Base(path))
	fmt.Printf("Pages analyzed:  %d\n", result.PagesAnalyzed)
	fmt.Printf("Rows detected:   %d\n", result.TotalRows)
	fmt.Printf("Unique articles: %d\n", result.UniqueCount())

	switch {
	case errors.Is(result.Status(), quote.ErrNoText):
		fmt.Println("\nNo extractable text: the document is probably scanned or protected.")
		return
	case errors.Is(result.Status(), quote.ErrNoRows):
		fmt.Println("\nNo item rows detected. Check the quote layout.")
		return
	}

	entries := report.Sorted(result.Aggregated)
	width := len("designation")
	for _, e := range entries {
		width = max(width, len([]rune(e.Description)))
	}

	fmt.Println()
	fmt.Printf("%-*s  %s\n", width, "designation", "quantite_totale")
	fmt.Printf("%s  %s\n", strings.Repeat("-", width), strings.Repeat("-", 15))
	for _, e := range entries {
		pad := width - len([]rune(e.Description))
		fmt.Printf("%s%s  %15s\n", e.Description, strings.Repeat(" ", pad), report.FormatQuantity(e.Qty))
	}
	fmt.Println()
}

// runWatch analyzes each PDF created or modified in the watched directory
// until interrupted
func runWatch(ctx context.Context, opts options, logger *slog.Logger) error {
	w, err := watch.New(watch.WithLogger(logger))
	if err != nil {
		return err
	}
	defer w.Close()

	events, err := w.Watch(ctx, opts.watchDir)
	if err != nil {
		return err
	}
	logger.Info("watching for quotes", "dir", opts.watchDir)

	for ev := range events {
		logger.Info("quote received", "file", ev.Path, "operation", ev.Operation)
		if err := process(ctx, ev.Path, opts, logger); err != nil {
			logger.Error("analysis failed", "file", ev.Path, "error", err)
		}
	}
	logger.Info("watch finished", "dir", opts.watchDir)
	return nil
}
