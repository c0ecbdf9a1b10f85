package repix

// ColorTable is an ordered list of up to 256 packed opaque colors, a
// count of how many entries are defined and an optional index marking
// the entry that stands for transparency (-1 if none). It is populated
// once before a pipeline run and read-only afterward.
type ColorTable struct {
	Colors       [256]uint32
	Defined      int
	Transparency int
}

// NewColorTable returns an empty table with no transparency entry.
func NewColorTable() *ColorTable {
	return &ColorTable{Transparency: -1}
}

// Color returns the defined entry at index i, or 0 when i is out of
// range.
func (t *ColorTable) Color(i int) uint32 {
	if t == nil || i < 0 || i >= t.Defined {
		return 0
	}
	return t.Colors[i]
}

// Empty reports whether the table defines no colors. An empty table
// means "no palette mapping requested", never an error.
func (t *ColorTable) Empty() bool {
	return t == nil || t.Defined < 1
}
