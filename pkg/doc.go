// Package pkg provides the core libraries of cardspace.
//
// # Overview
//
// cardspace lays one card per record out in 3D space and animates staggered
// transitions between layouts. The pkg directory is organized into three
// areas:
//
//  1. Geometry and animation: [layout], [tween], [transition], [selector]
//  2. Data and hosting: [records], [scene], [render/dot]
//  3. Infrastructure: [cache], [httputil], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The data flow of one load:
//
//	records.Provider (placeholder, sheet CSV, MongoDB)
//	         ↓
//	    [layout] five target sets, one transform per record
//	         ↓
//	    [selector] picks the active set
//	         ↓
//	    [transition] tweens every card toward its target
//	         ↓
//	    render callback each step
//
// [scene] wires these together and [scene.Loop] drives them from a single
// goroutine.
//
// [layout]: github.com/matzehuels/cardspace/pkg/layout
// [tween]: github.com/matzehuels/cardspace/pkg/tween
// [transition]: github.com/matzehuels/cardspace/pkg/transition
// [selector]: github.com/matzehuels/cardspace/pkg/selector
// [records]: github.com/matzehuels/cardspace/pkg/records
// [scene]: github.com/matzehuels/cardspace/pkg/scene
// [scene.Loop]: github.com/matzehuels/cardspace/pkg/scene#Loop
// [render/dot]: github.com/matzehuels/cardspace/pkg/render/dot
// [cache]: github.com/matzehuels/cardspace/pkg/cache
// [httputil]: github.com/matzehuels/cardspace/pkg/httputil
// [observability]: github.com/matzehuels/cardspace/pkg/observability
// [errors]: github.com/matzehuels/cardspace/pkg/errors
// [buildinfo]: github.com/matzehuels/cardspace/pkg/buildinfo
package pkg
