package sample

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/model"
)

// LoadCSV reads records from a CSV file whose header row names field ids.
// Number columns are parsed; blank cells are left unset.
func LoadCSV(path string, cat *catalog.Catalog) ([]model.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only row file.
			_ = cerr
		}
	}()
	return ReadCSV(file, cat)
}

// ReadCSV reads records from r. See LoadCSV.
func ReadCSV(r io.Reader, cat *catalog.Catalog) ([]model.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("row file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []model.Record
	for line := 2; ; line++ {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		rec := make(model.Record, len(header))
		for i, cell := range cells {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			value, err := cellValue(cat, header[i], cell)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", line, err)
			}
			rec[header[i]] = value
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func cellValue(cat *catalog.Catalog, fieldID, cell string) (any, error) {
	field, err := cat.Resolve(fieldID)
	if err != nil || field.Type != model.TypeNumber {
		return cell, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("field %s: invalid number %q", fieldID, cell)
	}
	return f, nil
}
