package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pyhub-apps/quotetally/pkg/quote"
)

// ExportOptions controls which files ExportFiles writes
type ExportOptions struct {
	Dir     string
	Now     time.Time
	XLSX    bool
	Summary Summary
}

// ExportFiles writes the CSV export, and the XLSX one when requested, into
// opts.Dir and returns the written paths. An empty table writes nothing and
// returns ErrEmptyTable.
func ExportFiles(table quote.Table, opts ExportOptions) ([]string, error) {
	text, ok := SerializeCSV(table)
	if !ok {
		return nil, ErrEmptyTable
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	csvPath := filepath.Join(opts.Dir, ExportFileName(opts.Now, "csv"))
	if err := os.WriteFile(csvPath, []byte(text), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	paths := []string{csvPath}

	if opts.XLSX {
		xlsxPath := filepath.Join(opts.Dir, ExportFileName(opts.Now, "xlsx"))
		file, err := os.Create(xlsxPath)
		if err != nil {
			return paths, fmt.Errorf("failed to create XLSX: %w", err)
		}
		if err := WriteXLSX(file, table, opts.Summary); err != nil {
			file.Close()
			return paths, err
		}
		if err := file.Close(); err != nil {
			return paths, fmt.Errorf("failed to close XLSX: %w", err)
		}
		paths = append(paths, xlsxPath)
	}

	return paths, nil
}
