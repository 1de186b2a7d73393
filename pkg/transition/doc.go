// Package transition animates cards from where they are to where a layout
// wants them.
//
// A [Controller] owns the tween registry for one scene. [Controller.Transition]
// replaces whatever was in flight with a new set of tweens: for every object
// one position tween and one orientation tween, each with its own duration
// drawn uniformly from [base, 2*base), plus a frame driver lasting 2*base
// that calls the render callback on every step. The staggered durations make
// cards arrive one after another rather than in lockstep.
//
// The controller does not run a clock of its own. The owner calls
// [Controller.Step] once per frame; between frames nothing happens.
//
//	c := transition.New(transition.WithRender(redraw))
//	if err := c.Transition(cards, targets[layout.Helix], 2*time.Second); err != nil {
//	    return err
//	}
//	for c.Step(time.Now()) {
//	    waitForNextFrame()
//	}
package transition
