package layout

import "github.com/go-gl/mathgl/mgl64"

// table lays cards out row by row, TableColumns wide, centered for a full
// TableColumns×TableRows sheet. Records past the last row keep stacking
// downward below the centered block.
func table(n int, opts *Options) TargetSet {
	cols := opts.TableColumns
	halfW := float64(cols) * opts.TableSpacingX / 2
	halfH := float64(opts.TableRows) * opts.TableSpacingY / 2

	out := make(TargetSet, n)
	for i := range n {
		col, row := i%cols, i/cols
		out[i] = Transform{Position: mgl64.Vec3{
			float64(col)*opts.TableSpacingX - halfW,
			-float64(row)*opts.TableSpacingY + halfH,
			0,
		}}
	}
	return out
}
