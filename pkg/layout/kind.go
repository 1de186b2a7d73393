package layout

// Kind names a layout.
type Kind string

// Known layout kinds.
const (
	Table       Kind = "table"
	Sphere      Kind = "sphere"
	Helix       Kind = "helix"
	Grid        Kind = "grid"
	Tetrahedron Kind = "tetrahedron"
)

var kinds = []Kind{Table, Sphere, Helix, Grid, Tetrahedron}

// Kinds returns every known layout in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind returns the Kind named s. Matching is exact.
func ParseKind(s string) (Kind, bool) {
	for _, k := range kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// String returns the layout name.
func (k Kind) String() string { return string(k) }

// Valid reports whether k is one of the known layouts.
func (k Kind) Valid() bool {
	_, ok := ParseKind(string(k))
	return ok
}
