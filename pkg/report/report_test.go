package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pyhub-apps/quotetally/pkg/quote"
)

func TestSerializeCSV(t *testing.T) {
	table := quote.Table{
		"Vis inox M6x20":      10,
		"Ecrou M6":            8,
		"Câble HDMI 2 mètres": 3,
		"Rondelle":            0.5,
	}

	text, ok := SerializeCSV(table)
	if !ok {
		t.Fatal("Expected a CSV export")
	}

	expected := strings.Join([]string{
		"designation,quantite_totale",
		`"Vis inox M6x20",10`,
		`"Ecrou M6",8`,
		`"Câble HDMI 2 mètres",3`,
		`"Rondelle",0,5`,
	}, "\n")
	if text != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, text)
	}
	if strings.HasSuffix(text, "\n") {
		t.Error("Expected no trailing newline")
	}
}

func TestSerializeCSVEmpty(t *testing.T) {
	for _, table := range []quote.Table{nil, {}} {
		if text, ok := SerializeCSV(table); ok || text != "" {
			t.Errorf("Expected no export for an empty table, got %q", text)
		}
	}
}

func TestSerializeCSVQuoting(t *testing.T) {
	table := quote.Table{`Câble "HDMI", 2 m`: 1.25}

	text, _ := SerializeCSV(table)
	lines := strings.Split(text, "\n")
	if got := lines[1]; got != `"Câble ""HDMI"", 2 m",1,25` {
		t.Errorf("Unexpected line %q", got)
	}
}

func TestSerializeCSVIsDeterministic(t *testing.T) {
	table := quote.Table{}
	for _, d := range []string{"b", "a", "é", "e", "f", "B", "A", "ça", "ca", "z"} {
		table[d] = 2
	}
	table["top"] = 9

	first, _ := SerializeCSV(table)
	for i := 0; i < 10; i++ {
		again, _ := SerializeCSV(table)
		if again != first {
			t.Fatalf("Serialization changed between calls:\n%s\n---\n%s", first, again)
		}
	}
}

func TestSortedUsesFrenchCollation(t *testing.T) {
	table := quote.Table{
		"Écrou":    2,
		"Vis":      2,
		"etrier":   2,
		"Agrafe":   2,
		"Rondelle": 7,
	}

	var got []string
	for _, e := range Sorted(table) {
		got = append(got, e.Description)
	}

	// "Écrou" sorts with the e's, not after "Vis"
	expected := []string{"Rondelle", "Agrafe", "Écrou", "etrier", "Vis"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

	testCases := map[string]string{
		"csv":   "pieces_devis_agregees_2024-03-09.csv",
		".xlsx": "pieces_devis_agregees_2024-03-09.xlsx",
	}
	for ext, want := range testCases {
		if got := ExportFileName(now, ext); got != want {
			t.Errorf("ExportFileName(%q) = %q, want %q", ext, got, want)
		}
	}

	// the stamp is the UTC date
	paris := time.FixedZone("CET", 3600)
	late := time.Date(2024, 3, 10, 0, 30, 0, 0, paris)
	if got := ExportFileName(late, "csv"); got != "pieces_devis_agregees_2024-03-09.csv" {
		t.Errorf("Expected the UTC date, got %q", got)
	}
}

func TestFormatQuantity(t *testing.T) {
	spaces := strings.NewReplacer("\u00a0", " ", "\u202f", " ")

	testCases := map[float64]string{
		10:     "10",
		2.5:    "2,5",
		1250.5: "1 250,5",
		0.125:  "0,125",
	}
	for q, want := range testCases {
		if got := spaces.Replace(FormatQuantity(q)); got != want {
			t.Errorf("FormatQuantity(%v) = %q, want %q", q, got, want)
		}
	}
}

func TestWriteXLSX(t *testing.T) {
	table := quote.Table{"Vis inox M6x20": 10, "Ecrou M6": 8, "Rondelle": 2.5}
	summary := Summary{Source: "devis.pdf", PagesAnalyzed: 2, TotalRows: 4, UniqueCount: 3}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, table, summary); err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to read workbook back: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{ArticlesSheet, SummarySheet}) {
		t.Errorf("Unexpected sheets %v", got)
	}

	rows, err := f.GetRows(ArticlesSheet)
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}
	expected := [][]string{
		{"designation", "quantite_totale"},
		{"Vis inox M6x20", "10"},
		{"Ecrou M6", "8"},
		{"Rondelle", "2.5"},
	}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Expected %q, got %q", expected, rows)
	}

	pages, err := f.GetCellValue(SummarySheet, "B2")
	if err != nil || pages != "2" {
		t.Errorf("Expected 2 pages in the summary, got %q (%v)", pages, err)
	}
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, quote.Table{}, Summary{}); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("Expected ErrEmptyTable, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("Expected nothing written for an empty table")
	}
}

func TestExportFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	table := quote.Table{"Vis": 10}

	paths, err := ExportFiles(table, ExportOptions{Dir: dir, Now: now, XLSX: true})
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}

	expected := []string{
		filepath.Join(dir, "pieces_devis_agregees_2024-03-09.csv"),
		filepath.Join(dir, "pieces_devis_agregees_2024-03-09.xlsx"),
	}
	if !reflect.DeepEqual(paths, expected) {
		t.Errorf("Expected %v, got %v", expected, paths)
	}

	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if string(data) != "designation,quantite_totale\n\"Vis\",10" {
		t.Errorf("Unexpected CSV content %q", data)
	}
}

func TestExportFilesEmpty(t *testing.T) {
	dir := t.TempDir()
	paths, err := ExportFiles(quote.Table{}, ExportOptions{Dir: dir, XLSX: true})
	if !errors.Is(err, ErrEmptyTable) || len(paths) != 0 {
		t.Errorf("Expected ErrEmptyTable and no file, got %v, %v", paths, err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected an untouched directory, found %d entries", len(entries))
	}
}
