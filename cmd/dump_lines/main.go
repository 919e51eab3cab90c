package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pyhub-apps/quotetally/pkg/extractors"
	"github.com/pyhub-apps/quotetally/pkg/pdf"
	"github.com/pyhub-apps/quotetally/pkg/quote"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: dump_lines <pdf_file> [engine]")
		os.Exit(1)
	}

	pdfPath := os.Args[1]
	engine := pdf.EngineAuto
	if len(os.Args) > 2 {
		engine = pdf.Engine(os.Args[2])
	}

	// Open the PDF file
	fmt.Printf("Opening PDF: %s\n", pdfPath)
	doc, err := pdf.OpenFile(pdfPath, pdf.WithEngine(engine))
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	meta := doc.Metadata()
	fmt.Printf("Engine: %s\n", doc.Engine())
	fmt.Printf("Title: %s\n", meta.Title)
	fmt.Printf("Producer: %s\n", meta.Producer)
	fmt.Printf("Document has %d pages\n\n", doc.PageCount())

	lb := extractors.NewLineBuilder()
	scanner := quote.NewPageScanner(nil, quote.DefaultBufferCapacity, nil)

	for pageNum := 1; pageNum <= doc.PageCount(); pageNum++ {
		fragments, err := doc.Fragments(context.Background(), pageNum)
		if err != nil {
			log.Printf("Failed to read page %d: %v", pageNum, err)
			continue
		}

		lines := lb.BuildLines(fragments)
		fmt.Printf("=== Page %d (%d fragments, %d lines) ===\n", pageNum, len(fragments), len(lines))

		// Each line with its classification and the table state after it
		for _, ev := range scanner.ScanLines(lines) {
			switch ev.Kind {
			case quote.LineRow:
				fmt.Printf("[%-8s %-7s] %s\n    -> %q x %g (%s)\n",
					ev.Kind, ev.State, ev.Line, ev.Description, ev.Row.Qty, ev.Row.Strategy)
			case quote.LineRowRejected:
				fmt.Printf("[%-8s %-7s] %s\n    -> qty %g without description\n",
					ev.Kind, ev.State, ev.Line, ev.Row.Qty)
			default:
				fmt.Printf("[%-8s %-7s] %s\n", ev.Kind, ev.State, ev.Line)
			}
		}
		fmt.Println()
	}
}
