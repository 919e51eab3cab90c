package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/pyhub-apps/quotetally/pkg/extractors"
	"github.com/pyhub-apps/quotetally/pkg/pdf"
	"github.com/pyhub-apps/quotetally/pkg/quote"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: benchmark <pdf-file>")
		os.Exit(1)
	}

	pdfPath := os.Args[1]
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		log.Fatalf("Failed to read PDF: %v", err)
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	fmt.Printf("=== QuoteTally Benchmark ===\n")
	fmt.Printf("File: %s (%d bytes)\n", pdfPath, len(data))

	for _, engine := range []pdf.Engine{pdf.EngineLedongthuc, pdf.EngineDslipak} {
		fmt.Printf("\n--- %s ---\n", engine)

		// Warm-up run
		if doc, err := pdf.OpenBytes(data, pdf.WithEngine(engine), pdf.WithLogger(quiet)); err == nil {
			doc.Close()
		}

		// Benchmark PDF opening
		start := time.Now()
		doc, err := pdf.OpenBytes(data, pdf.WithEngine(engine), pdf.WithLogger(quiet))
		if err != nil {
			fmt.Printf("Open failed: %v\n", err)
			continue
		}
		openTime := time.Since(start)
		fmt.Printf("Pages: %d\n", doc.PageCount())
		fmt.Printf("Open time: %v\n", openTime)

		// Benchmark fragment extraction and line reconstruction
		lb := extractors.NewLineBuilder()
		var totalFragments, totalLines int
		start = time.Now()
		for pageNum := 1; pageNum <= doc.PageCount(); pageNum++ {
			fragments, err := doc.Fragments(context.Background(), pageNum)
			if err != nil {
				continue
			}
			totalFragments += len(fragments)
			totalLines += len(lb.BuildLines(fragments))
		}
		textTime := time.Since(start)
		fmt.Printf("Text extraction time: %v\n", textTime)
		fmt.Printf("Fragments: %d, lines: %d\n", totalFragments, totalLines)

		// Benchmark the full analysis
		start = time.Now()
		result, err := quote.NewAnalyzer(quote.WithLogger(quiet)).Analyze(context.Background(), doc)
		analysisTime := time.Since(start)
		doc.Close()
		if err != nil {
			fmt.Printf("Analysis failed: %v\n", err)
			continue
		}
		fmt.Printf("Analysis time: %v\n", analysisTime)
		fmt.Printf("Rows: %d, unique articles: %d\n", result.TotalRows, result.UniqueCount())

		// Summary
		totalTime := openTime + analysisTime
		fmt.Printf("Pages/sec: %.2f\n", float64(result.PagesAnalyzed)/totalTime.Seconds())
	}
}
