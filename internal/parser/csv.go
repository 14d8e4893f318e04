package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"docindex/internal/index"
)

// CSVParser handles CSV files. Rows are grouped into fixed-size batches,
// each an addressable section under the header row.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, docID, filename string) (*index.Index, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	if len(records) == 0 {
		return index.FromSections(docID, nil)
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	const batchSize = 20
	var sections []index.Section
	for i := 0; i < len(dataRows); i += batchSize {
		end := i + batchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var text strings.Builder
		text.WriteString("Headers: " + strings.Join(headers, ", ") + "\n\n")
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
				if j < len(row)-1 {
					text.WriteString(", ")
				}
			}
			text.WriteString("\n")
		}

		sections = append(sections, index.Section{
			Level: 1,
			Title: fmt.Sprintf("Rows %d-%d", i+2, end+1), // 1-indexed, skip header
			Body:  text.String(),
		})
	}

	return index.FromSections(docID, sections)
}
