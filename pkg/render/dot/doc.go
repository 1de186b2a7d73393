// Package dot renders flat snapshots of a card layout with Graphviz.
//
// # Overview
//
// Cards live in 3D. This package projects them orthographically onto one of
// three planes ([Front], [Top], [Side]) and emits Graphviz DOT in which
// every card is a box pinned at its projected position. Cards further from
// the viewer are written first so nearer cards are drawn over them.
//
//	nodes := dot.FromTargets(targets[layout.Helix], set.Records)
//	src := dot.ToDOT(nodes, dot.Options{View: dot.Front})
//	svg, err := dot.RenderSVG(ctx, src)
//
// The live state of a scene renders the same way via [FromSnapshot].
//
// # Dependencies
//
// SVG and PNG output use [github.com/goccy/go-graphviz], which runs Graphviz
// in-process with the neato engine so pinned positions are honoured.
package dot
