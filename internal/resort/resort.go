package resort

import "sort"

// Resort is one row of the comparison table, keyed by display name.
// Lengths and elevations are meters, area is hectares.
type Resort struct {
	Name               string  `json:"name" csv:"name"`
	Length             int     `json:"length" csv:"length"`
	TotalTrailsLength  int     `json:"total_trails_length" csv:"total_trails_length"`
	Area               int     `json:"area" csv:"area"`
	Gondolas           int     `json:"gondolas" csv:"gondolas"`
	Chairs             int     `json:"chairs" csv:"chairs"`
	Trails             int     `json:"trails" csv:"trails"`
	MaxElevation       int     `json:"max_elevation" csv:"max_elevation"`
	BaseElevation      int     `json:"base_elevation" csv:"base_elevation"`
	Vertical           int     `json:"vertical" csv:"vertical"`
	BeginnerPct        float64 `json:"beginner_pct" csv:"beginner_pct"`
	IntermediatePct    float64 `json:"intermediate_pct" csv:"intermediate_pct"`
	AdvancedPct        float64 `json:"advanced_pct" csv:"advanced_pct"`
	BeginnerTrails     float64 `json:"beginner_trails" csv:"beginner_trails"`
	IntermediateTrails float64 `json:"intermediate_trails" csv:"intermediate_trails"`
	AdvancedTrails     float64 `json:"advanced_trails" csv:"advanced_trails"`
	Website            string  `json:"website,omitempty" csv:"website"`
	TrailMap           string  `json:"trail_map,omitempty" csv:"trail_map"`
}

// Table is an ordered collection of resorts, kept sorted descending by area.
type Table []Resort

// SortByArea orders the table descending by skiable area. The sort is stable
// so equal-area resorts keep their page order.
func (t Table) SortByArea() {
	sort.SliceStable(t, func(i, j int) bool {
		return t[i].Area > t[j].Area
	})
}

// Find returns the index of the resort with the given name, or -1.
func (t Table) Find(name string) int {
	for i := range t {
		if t[i].Name == name {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	copy(out, t)
	return out
}
