package mpvalue

// Timestamp is the semantic value rendered on the wire as reserved ext -1.
// It round-trips through three wire widths depending on magnitude (see
// spec.md §4.2/§4.3). Neither field is normalized or range-checked: a
// Nanoseconds of 1e9 or more is stored, encoded and decoded as given.
type Timestamp struct {
	Seconds     int64
	Nanoseconds uint32
}

// Compare returns -1, 0, or 1 as t is before, equal to, or after o.
func (t Timestamp) Compare(o Timestamp) int {
	switch {
	case t.Seconds < o.Seconds:
		return -1
	case t.Seconds > o.Seconds:
		return 1
	case t.Nanoseconds < o.Nanoseconds:
		return -1
	case t.Nanoseconds > o.Nanoseconds:
		return 1
	default:
		return 0
	}
}
