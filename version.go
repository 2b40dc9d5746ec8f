package mwlmap

// narrowMin raises r.Min to at least v; versions only get more specific as
// scanning finds clues.
func (r *VersionRange) narrowMin(v Version) {
	if v > r.Min {
		r.Min = v
	}
}

// narrowMax lowers r.Max to at most v.
func (r *VersionRange) narrowMax(v Version) {
	if v < r.Max {
		r.Max = v
	}
}

// intersect narrows r to the overlap with other. Used to fold each portion's
// independently-narrowed range into the Map's overall range.
func (r *VersionRange) intersect(other VersionRange) {
	r.narrowMin(other.Min)
	r.narrowMax(other.Max)
}
