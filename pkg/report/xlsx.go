package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pyhub-apps/quotetally/pkg/quote"
)

// Sheet names of the XLSX export
const (
	ArticlesSheet = "Articles"
	SummarySheet  = "Resume"
)

// Summary holds the analysis counters written next to the articles
type Summary struct {
	Source        string
	PagesAnalyzed int
	TotalRows     int
	UniqueCount   int
}

// WriteXLSX writes table as a workbook with an Articles sheet, in the same
// order as the CSV export, and a Resume sheet with the counters
func WriteXLSX(w io.Writer, table quote.Table, summary Summary) error {
	if len(table) == 0 {
		return ErrEmptyTable
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ArticlesSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := writeArticles(f, table); err != nil {
		return err
	}
	if err := writeSummary(f, summary); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeArticles(f *excelize.File, table quote.Table) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(ArticlesSheet, "A1", &[]interface{}{"designation", "quantite_totale"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetRowStyle(ArticlesSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, e := range Sorted(table) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ArticlesSheet, cell, &[]interface{}{e.Description, e.Qty}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(ArticlesSheet, "A", "A", 60); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	return f.SetColWidth(ArticlesSheet, "B", "B", 18)
}

func writeSummary(f *excelize.File, summary Summary) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"fichier", summary.Source},
		{"pages_analysees", summary.PagesAnalyzed},
		{"lignes_detectees", summary.TotalRows},
		{"articles_uniques", summary.UniqueCount},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return f.SetColWidth(SummarySheet, "A", "A", 20)
}
