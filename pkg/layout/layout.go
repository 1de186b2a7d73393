package layout

import (
	"github.com/matzehuels/cardspace/pkg/errors"
)

// TargetSet is one transform per record, index-aligned with the records it
// was computed for.
type TargetSet []Transform

// Targets holds the target set of every layout for one record load.
type Targets map[Kind]TargetSet

// Options holds the geometric constants of every layout.
// The zero value is not useful; start from [DefaultOptions].
type Options struct {
	TableColumns  int
	TableRows     int
	TableSpacingX float64
	TableSpacingY float64

	SphereRadius float64

	HelixRadius    float64
	HelixStep      float64 // vertical distance between consecutive cards of one strand
	HelixAngleStep float64 // radians between consecutive cards of one strand
	HelixTop       float64

	GridColumns int
	GridRows    int
	GridDepth   int
	GridCell    float64

	TetraSpacing     float64
	TetraLayerHeight float64
	TetraTop         float64
	// TetraFaceCenter turns every tetrahedron card toward the centroid of
	// its layer. Off by default: cards stay flat.
	TetraFaceCenter bool
}

var defaultOpts = Options{
	TableColumns:  20,
	TableRows:     10,
	TableSpacingX: 160,
	TableSpacingY: 180,

	SphereRadius: 900,

	HelixRadius:    700,
	HelixStep:      30,
	HelixAngleStep: 0.15,
	HelixTop:       1250,

	GridColumns: 10,
	GridRows:    4,
	GridDepth:   5,
	GridCell:    200,

	TetraSpacing:     180,
	TetraLayerHeight: 160,
	TetraTop:         600,
}

// DefaultOptions returns the standard layout constants.
func DefaultOptions() Options { return defaultOpts }

// Compute returns the target set of layout kind for n records.
// A nil opts uses [DefaultOptions].
//
// Compute fails with UNKNOWN_LAYOUT for kinds outside [Kinds] and with
// DEGENERATE_INPUT for negative n. Zero records yield an empty set.
func Compute(kind Kind, n int, opts *Options) (TargetSet, error) {
	if opts == nil {
		opts = &defaultOpts
	}
	if err := errors.ValidateRecordCount(n); err != nil {
		return nil, err
	}

	switch kind {
	case Table:
		return table(n, opts), nil
	case Sphere:
		return sphere(n, opts), nil
	case Helix:
		return helix(n, opts), nil
	case Grid:
		return grid(n, opts), nil
	case Tetrahedron:
		return tetrahedron(n, opts), nil
	}
	return nil, errors.New(errors.ErrCodeUnknownLayout, "unknown layout %q", kind)
}

// ComputeFor is Compute over a record slice. Only its length is used.
func ComputeFor[R any](kind Kind, records []R, opts *Options) (TargetSet, error) {
	return Compute(kind, len(records), opts)
}

// ComputeAll computes every known layout for n records.
func ComputeAll(n int, opts *Options) (Targets, error) {
	out := make(Targets, len(kinds))
	for _, k := range kinds {
		set, err := Compute(k, n, opts)
		if err != nil {
			return nil, err
		}
		out[k] = set
	}
	return out, nil
}
