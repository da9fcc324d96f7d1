package ingest

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"dataqc/domain/quality"
)

// DataReader reads CSV and Excel files into the row/header shape the engine
// consumes. File decoding stays out here: the engine only ever sees
// already-parsed rows.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// TableData is a parsed file ready for analysis
type TableData struct {
	Headers    []string
	Rows       []quality.Row
	SourcePath string
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xls" {
		fileType = "xlsx"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadData reads the file into structured form
func (r *DataReader) ReadData() (*TableData, error) {
	log.Printf("[DataReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readCSVData() (*TableData, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, missing cells become nulls

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return &TableData{SourcePath: r.filePath}, nil
	}

	return buildTable(r.filePath, records), nil
}

func (r *DataReader) readExcelData() (*TableData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	log.Printf("[DataReader] Excel sheet %q read in %.2fms", sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6)

	if len(records) == 0 {
		return &TableData{SourcePath: r.filePath}, nil
	}
	return buildTable(r.filePath, records), nil
}

// buildTable turns raw records into headers plus rows, first record is the
// header row. Blank and missing cells become nulls.
func buildTable(path string, records [][]string) *TableData {
	headers := make([]string, 0, len(records[0]))
	seen := make(map[string]struct{}, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		// Headers must be unique for column references to stay unambiguous
		if _, dup := seen[h]; dup {
			h = fmt.Sprintf("%s_%d", h, i+1)
		}
		seen[h] = struct{}{}
		headers = append(headers, h)
	}

	rows := make([]quality.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(quality.Row, len(headers))
		for i, header := range headers {
			if i >= len(record) || strings.TrimSpace(record[i]) == "" {
				row[header] = nil
				continue
			}
			row[header] = record[i]
		}
		rows = append(rows, row)
	}

	return &TableData{Headers: headers, Rows: rows, SourcePath: path}
}
