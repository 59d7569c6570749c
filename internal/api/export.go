package api

import (
	"fmt"

	"github.com/powderline/hakuba-dashboard/internal/export"
	"github.com/powderline/hakuba-dashboard/internal/resort"
)

func encodeExport(t resort.Table, format string) ([]byte, string, error) {
	switch format {
	case "csv":
		data, err := export.CSV(t)
		return data, "text/csv; charset=utf-8", err
	case "xlsx":
		data, err := export.Excel(t)
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	default:
		return nil, "", fmt.Errorf("unknown export format %q", format)
	}
}
