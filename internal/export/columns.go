// Package export serializes the resort table into download formats. Both
// encoders emit the name column first, the numeric fields in table order,
// and the two URL fields last.
package export

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/powderline/hakuba-dashboard/internal/resort"
)

type column struct {
	key   string
	value func(r resort.Resort) any
}

var columns = []column{
	{"name", func(r resort.Resort) any { return r.Name }},
	{"length", func(r resort.Resort) any { return r.Length }},
	{"total_trails_length", func(r resort.Resort) any { return r.TotalTrailsLength }},
	{"area", func(r resort.Resort) any { return r.Area }},
	{"gondolas", func(r resort.Resort) any { return r.Gondolas }},
	{"chairs", func(r resort.Resort) any { return r.Chairs }},
	{"trails", func(r resort.Resort) any { return r.Trails }},
	{"max_elevation", func(r resort.Resort) any { return r.MaxElevation }},
	{"base_elevation", func(r resort.Resort) any { return r.BaseElevation }},
	{"vertical", func(r resort.Resort) any { return r.Vertical }},
	{"beginner_pct", func(r resort.Resort) any { return r.BeginnerPct }},
	{"intermediate_pct", func(r resort.Resort) any { return r.IntermediatePct }},
	{"advanced_pct", func(r resort.Resort) any { return r.AdvancedPct }},
	{"beginner_trails", func(r resort.Resort) any { return r.BeginnerTrails }},
	{"intermediate_trails", func(r resort.Resort) any { return r.IntermediateTrails }},
	{"advanced_trails", func(r resort.Resort) any { return r.AdvancedTrails }},
	{"website", func(r resort.Resort) any { return r.Website }},
	{"trail_map", func(r resort.Resort) any { return r.TrailMap }},
}

var titler = cases.Title(language.English)

// displayHeader turns a snake_case column key into a spreadsheet header,
// e.g. "total_trails_length" -> "Total Trails Length".
func displayHeader(key string) string {
	return titler.String(strings.ReplaceAll(key, "_", " "))
}
