package resort

import "fmt"

// MergeOptions names the two physically-connected resorts to combine.
type MergeOptions struct {
	Primary    string
	Secondary  string
	MergedName string // defaults to "<primary> + <secondary>"
	KeepParts  bool   // keep the constituent rows alongside the merged one
}

// MissingResortError reports a merge constituent absent from the table.
type MissingResortError struct {
	Name string
}

func (e *MissingResortError) Error() string {
	return fmt.Sprintf("resort %q not found in table", e.Name)
}

// Merge combines two resorts into one aggregate record. Per-field policy:
// length and max elevation take the max, base elevation the min, everything
// countable sums, and vertical and the level percentages are recomputed from
// the merged totals rather than aggregated. The input table is not mutated;
// the result is re-sorted descending by area.
func Merge(t Table, opts MergeOptions) (Table, error) {
	pi := t.Find(opts.Primary)
	if pi < 0 {
		return nil, &MissingResortError{Name: opts.Primary}
	}
	si := t.Find(opts.Secondary)
	if si < 0 {
		return nil, &MissingResortError{Name: opts.Secondary}
	}

	name := opts.MergedName
	if name == "" {
		name = opts.Primary + " + " + opts.Secondary
	}

	a, b := t[pi], t[si]
	merged := Resort{
		Name:               name,
		Length:             maxInt(a.Length, b.Length),
		TotalTrailsLength:  a.TotalTrailsLength + b.TotalTrailsLength,
		Area:               a.Area + b.Area,
		Gondolas:           a.Gondolas + b.Gondolas,
		Chairs:             a.Chairs + b.Chairs,
		Trails:             a.Trails + b.Trails,
		MaxElevation:       maxInt(a.MaxElevation, b.MaxElevation),
		BaseElevation:      minInt(a.BaseElevation, b.BaseElevation),
		BeginnerTrails:     a.BeginnerTrails + b.BeginnerTrails,
		IntermediateTrails: a.IntermediateTrails + b.IntermediateTrails,
		AdvancedTrails:     a.AdvancedTrails + b.AdvancedTrails,
	}
	merged.Vertical = merged.MaxElevation - merged.BaseElevation
	if merged.Trails > 0 {
		trails := float64(merged.Trails)
		merged.BeginnerPct = merged.BeginnerTrails / trails
		merged.IntermediatePct = merged.IntermediateTrails / trails
		merged.AdvancedPct = merged.AdvancedTrails / trails
	}

	out := make(Table, 0, len(t)+1)
	for i := range t {
		if !opts.KeepParts && (i == pi || i == si) {
			continue
		}
		out = append(out, t[i])
	}
	out = append(out, merged)
	out.SortByArea()
	return out, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
