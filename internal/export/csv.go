package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/powderline/hakuba-dashboard/internal/resort"
)

// CSV encodes the table as UTF-8 delimited text with a snake_case header
// row. Output is deterministic for a given table.
func CSV(t resort.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.key
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	row := make([]string, len(columns))
	for _, r := range t {
		for i, c := range columns {
			row[i] = formatCell(c.value(r))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row for %s: %w", r.Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatCell(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
