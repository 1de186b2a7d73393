package layout

import "github.com/go-gl/mathgl/mgl64"

// TetraCursor is the running position of the tetrahedron fold.
// Layer k holds k rows; row r of a layer holds r+1 cards.
type TetraCursor struct {
	Layer int
	Row   int
	Col   int
}

// NewTetraCursor returns the cursor before the first record.
func NewTetraCursor() TetraCursor {
	return TetraCursor{Layer: 1}
}

// Next returns the slot the next record occupies and the cursor to use for
// the record after it.
func (c TetraCursor) Next() (slot, next TetraCursor) {
	if c.Col > c.Row {
		c.Col = 0
		c.Row++
	}
	if c.Row >= c.Layer {
		c.Row = 0
		c.Col = 0
		c.Layer++
	}
	slot = c
	c.Col++
	return slot, c
}

func tetrahedron(n int, opts *Options) TargetSet {
	out := make(TargetSet, 0, n)
	cur := NewTetraCursor()
	for range n {
		var slot TetraCursor
		slot, cur = cur.Next()
		out = append(out, tetraTransform(slot, opts))
	}
	return out
}

func tetraTransform(s TetraCursor, opts *Options) Transform {
	layer, row, col := float64(s.Layer), float64(s.Row), float64(s.Col)
	pos := mgl64.Vec3{
		(col - row/2) * opts.TetraSpacing,
		-(layer * opts.TetraLayerHeight) + opts.TetraTop,
		(row - layer/2) * opts.TetraSpacing,
	}
	t := Transform{Position: pos}
	if opts.TetraFaceCenter {
		target := mgl64.Vec3{0, pos.Y(), (layer - 4) / 6 * opts.TetraSpacing}
		t.LookAt = &target
	}
	return t
}
