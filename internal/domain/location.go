package domain

// Immutable geographic point, optionally annotated with the address it was
// geocoded from. The address is metadata only: two locations refer to the
// same place exactly when their coordinates match.
type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

// SamePlace reports coordinate equality, ignoring the address annotation.
func (l Location) SamePlace(other Location) bool {
	return l.Lat == other.Lat && l.Lng == other.Lng
}
