package extractor

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// extractCSV reads the file as one record per row, keyed by the header.
// Rows describing a plan (any row with a plan_type column) are rendered
// as a labeled block with plan_type first, which retrieves better than a
// raw tabular dump; other rows become generic key: value lines. Records
// are separated by a blank line.
func extractCSV(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return "", err
	}
	if len(rows) < 2 {
		return "", nil
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	planCol := -1
	for i, name := range header {
		if name == "plan_type" {
			planCol = i
			break
		}
	}

	records := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, renderRow(header, row, planCol))
	}
	return strings.Join(records, "\n\n"), nil
}

func renderRow(header, row []string, planCol int) string {
	var sb strings.Builder
	if planCol >= 0 && planCol < len(row) {
		sb.WriteString("plan_type: " + row[planCol] + "\n")
		for i, name := range header {
			if i == planCol || i >= len(row) {
				continue
			}
			label := titleCaser.String(strings.ReplaceAll(name, "_", " "))
			fmt.Fprintf(&sb, "  - **%s**: %s\n", label, row[i])
		}
		return sb.String()
	}
	lines := make([]string, 0, len(row))
	for i, name := range header {
		if i >= len(row) {
			break
		}
		lines = append(lines, name+": "+row[i])
	}
	return strings.Join(lines, "\n")
}
