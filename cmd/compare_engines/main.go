package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pyhub-apps/quotetally/pkg/extractors"
	"github.com/pyhub-apps/quotetally/pkg/pdf"
)

// pageLines reads every page of path with one engine and rebuilds its lines
func pageLines(path string, engine pdf.Engine) ([][]string, error) {
	doc, err := pdf.OpenFile(path, pdf.WithEngine(engine))
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	lb := extractors.NewLineBuilder()
	pages := make([][]string, 0, doc.PageCount())
	for pageNum := 1; pageNum <= doc.PageCount(); pageNum++ {
		fragments, err := doc.Fragments(context.Background(), pageNum)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}
		pages = append(pages, lb.BuildLines(fragments))
	}
	return pages, nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: compare_engines <pdf-file>")
		os.Exit(1)
	}

	pdfPath := os.Args[1]

	left, err := pageLines(pdfPath, pdf.EngineLedongthuc)
	if err != nil {
		log.Fatalf("ledongthuc: %v", err)
	}
	right, err := pageLines(pdfPath, pdf.EngineDslipak)
	if err != nil {
		log.Fatalf("dslipak: %v", err)
	}

	fmt.Printf("Pages: ledongthuc=%d dslipak=%d\n", len(left), len(right))

	differences := 0
	for i := 0; i < max(len(left), len(right)); i++ {
		var a, b []string
		if i < len(left) {
			a = left[i]
		}
		if i < len(right) {
			b = right[i]
		}

		for j := 0; j < max(len(a), len(b)); j++ {
			var la, lb string
			if j < len(a) {
				la = a[j]
			}
			if j < len(b) {
				lb = b[j]
			}
			if la == lb {
				continue
			}
			differences++
			fmt.Printf("page %d line %d:\n  ledongthuc: %q\n  dslipak:    %q\n", i+1, j+1, la, lb)
		}
	}

	if differences == 0 {
		fmt.Println("Both engines produce identical lines")
	} else {
		fmt.Printf("\n%d differing lines\n", differences)
	}
	fmt.Println(strings.Repeat("=", 40))
}
