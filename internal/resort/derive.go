package resort

// DeriveTrailCounts fills the per-difficulty trail counts from the level
// percentages. Counts stay fractional on purpose: they feed the merger's
// sums, not a display widget.
func DeriveTrailCounts(r *Resort) {
	trails := float64(r.Trails)
	r.BeginnerTrails = r.BeginnerPct * trails
	r.IntermediateTrails = r.IntermediatePct * trails
	r.AdvancedTrails = r.AdvancedPct * trails
}
