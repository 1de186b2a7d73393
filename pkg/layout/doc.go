// Package layout computes where each card sits in 3D space.
//
// A layout maps a record's ordinal index and the total record count to a
// [Transform]: a position plus an optional orientation. Five layouts exist,
// identified by [Kind]:
//
//   - [Table]: a flat 20×10 grid centered on the origin
//   - [Sphere]: a spiral distribution on a sphere, cards facing outward
//   - [Helix]: two interleaved strands around the vertical axis
//   - [Grid]: a 10×4×5 block of cells
//   - [Tetrahedron]: triangular layers stacked downward (1, 3, 6, 10, ...)
//
// Layouts never look at record contents, only at how many records there
// are. Every function returns exactly n transforms in input order, so a
// [TargetSet] can be zipped with the record slice it was computed for.
//
// # Usage
//
//	targets, err := layout.ComputeAll(len(records), nil)
//	if err != nil {
//	    return err
//	}
//	helix := targets[layout.Helix]
//
// Four of the layouts are pure functions of (index, n). The tetrahedron is
// not: its shape depends on how many records came before, so it is computed
// as a fold over a [TetraCursor] in record order.
package layout
