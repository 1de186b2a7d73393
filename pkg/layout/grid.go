package layout

import "github.com/go-gl/mathgl/mgl64"

// GridCell is the integer cell a record occupies in the grid layout.
type GridCell struct {
	X, Y, Z int
}

// GridCellOf returns the cell of record i. Columns fill first, then depth
// slices, then rows.
func GridCellOf(i int, opts *Options) GridCell {
	if opts == nil {
		opts = &defaultOpts
	}
	layer := i / opts.GridColumns
	return GridCell{
		X: i % opts.GridColumns,
		Y: layer / opts.GridDepth,
		Z: layer % opts.GridDepth,
	}
}

func grid(n int, opts *Options) TargetSet {
	out := make(TargetSet, n)
	for i := range n {
		c := GridCellOf(i, opts)
		out[i] = Transform{Position: mgl64.Vec3{
			centered(c.X, opts.GridColumns, opts.GridCell),
			centered(c.Y, opts.GridRows, opts.GridCell),
			centered(c.Z, opts.GridDepth, opts.GridCell),
		}}
	}
	return out
}

func centered(idx, count int, cell float64) float64 {
	return float64(idx)*cell - float64(count)*cell/2
}
