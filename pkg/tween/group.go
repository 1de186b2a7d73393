package tween

import (
	"maps"
	"slices"
	"time"
)

// Group is a registry of in-flight tweens keyed by the id of the object
// they animate. It is not safe for concurrent use; it belongs to one loop.
type Group struct {
	tweens map[string][]*Tween
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{tweens: make(map[string][]*Tween)}
}

// Add registers tw under id. An id may hold several tweens.
func (g *Group) Add(id string, tw *Tween) {
	g.tweens[id] = append(g.tweens[id], tw)
}

// Clear discards every tween. Objects keep whatever state the last update
// left them in.
func (g *Group) Clear() {
	clear(g.tweens)
}

// Len returns the number of pending tweens.
func (g *Group) Len() int {
	n := 0
	for _, ts := range g.tweens {
		n += len(ts)
	}
	return n
}

// Get returns the pending tweens under id.
func (g *Group) Get(id string) []*Tween {
	return slices.Clone(g.tweens[id])
}

// IDs returns the ids that have pending tweens, sorted.
func (g *Group) IDs() []string {
	return slices.Sorted(maps.Keys(g.tweens))
}

// Update advances every tween to now, drops the finished ones and reports
// whether any remain.
//
// Tweens are advanced in id order so that a frame is reproducible. Tweens
// under the empty id run last, after every object has moved, which is where
// a frame driver that redraws the scene belongs.
func (g *Group) Update(now time.Time) bool {
	ids := g.IDs()
	if len(ids) > 0 && ids[0] == "" {
		ids = append(ids[1:], "")
	}
	for _, id := range ids {
		ts, ok := g.tweens[id]
		if !ok {
			continue
		}
		live := ts[:0]
		for _, tw := range ts {
			if tw.Update(now) {
				live = append(live, tw)
			}
		}
		if len(live) == 0 {
			delete(g.tweens, id)
		} else {
			g.tweens[id] = live
		}
	}
	return len(g.tweens) > 0
}
