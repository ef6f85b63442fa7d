// Package catalog loads the brand medicine and subsidized generic
// catalogs from CSV files into structured entities. Files exported from
// spreadsheets are sometimes ISO-8859-1 encoded, so content is sniffed
// and decoded before parsing.
package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/Prakhar-Bhagat/MedXchange/catalog/entities"
	"github.com/Prakhar-Bhagat/MedXchange/interfaces"
	"github.com/Prakhar-Bhagat/MedXchange/logging"
)

// Compile-time check to ensure Loader implements CatalogLoader
var _ interfaces.CatalogLoader = (*Loader)(nil)

// Loader reads both catalog CSV files from a data directory.
type Loader struct {
	dataDir       string
	medicinesFile string
	genericsFile  string
}

// NewLoader creates a loader for the given directory and file names.
func NewLoader(dataDir, medicinesFile, genericsFile string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		medicinesFile: medicinesFile,
		genericsFile:  genericsFile,
	}
}

// LoadCatalog reads and parses both catalog files.
func (l *Loader) LoadCatalog() ([]entities.Medicine, []entities.Generic, error) {
	medicines, err := l.loadMedicines(filepath.Join(l.dataDir, l.medicinesFile))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load medicines catalog: %w", err)
	}

	generics, err := l.loadGenerics(filepath.Join(l.dataDir, l.genericsFile))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load generics catalog: %w", err)
	}

	return medicines, generics, nil
}

func (l *Loader) loadMedicines(path string) ([]entities.Medicine, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	cols := headerIndex(header)
	var medicines []entities.Medicine
	skippedFormatErrors := 0

	for i, row := range rows {
		brandName := field(row, cols, "brand_name", "name")
		if strings.TrimSpace(brandName) == "" {
			skippedFormatErrors++
			continue
		}

		price, err := parsePrice(field(row, cols, "mrp", "price"))
		if err != nil {
			skippedFormatErrors++
			continue
		}

		medicines = append(medicines, entities.Medicine{
			ID:              parseID(field(row, cols, "id"), i+1),
			BrandName:       strings.TrimSpace(brandName),
			SaltComposition: strings.TrimSpace(field(row, cols, "salt_composition", "composition")),
			Manufacturer:    strings.TrimSpace(field(row, cols, "manufacturer")),
			Price:           price,
		})
	}

	logging.Info("Medicines catalog parsed",
		"file", path,
		"rows", len(rows),
		"loaded", len(medicines),
		"skipped", skippedFormatErrors,
	)
	return medicines, nil
}

func (l *Loader) loadGenerics(path string) ([]entities.Generic, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	cols := headerIndex(header)
	var generics []entities.Generic
	skippedFormatErrors := 0

	for i, row := range rows {
		name := field(row, cols, "generic_name", "name")
		if strings.TrimSpace(name) == "" {
			skippedFormatErrors++
			continue
		}

		price, err := parsePrice(field(row, cols, "price", "mrp"))
		if err != nil {
			skippedFormatErrors++
			continue
		}

		generics = append(generics, entities.Generic{
			ID:          parseID(field(row, cols, "id"), i+1),
			GenericName: strings.TrimSpace(name),
			Price:       price,
			UnitLabel:   strings.TrimSpace(field(row, cols, "unit_size", "unit")),
		})
	}

	logging.Info("Generics catalog parsed",
		"file", path,
		"rows", len(rows),
		"loaded", len(generics),
		"skipped", skippedFormatErrors,
	)
	return generics, nil
}

// readCSV reads a whole catalog file, decoding ISO-8859-1 content when the
// bytes are not valid UTF-8, and returns the header row and data rows.
func readCSV(path string) ([]string, [][]string, error) {
	cleanPath := filepath.Clean(path)
	raw, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", cleanPath, err)
	}

	var reader io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		reader = charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(raw))
	}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", cleanPath, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty catalog file: %s", cleanPath)
	}

	return records[0], records[1:], nil
}

// headerIndex maps cleaned-up column names to their positions. Spreadsheet
// exports vary in casing and spacing, so headers are lowercased and spaces
// become underscores before matching.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		clean := strings.ToLower(strings.TrimSpace(name))
		clean = strings.ReplaceAll(clean, " ", "_")
		cols[clean] = i
	}
	return cols
}

// field returns the first present column among the given names, or "".
func field(row []string, cols map[string]int, names ...string) string {
	for _, name := range names {
		if i, ok := cols[name]; ok && i < len(row) {
			return row[i]
		}
	}
	return ""
}

// parsePrice parses a price cell, tolerating currency symbols and commas.
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseID parses an explicit ID column, falling back to the row number
// when the column is absent or malformed.
func parseID(s string, fallback int) int {
	if id, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && id > 0 {
		return id
	}
	return fallback
}
