// Package scene hosts the cards of one record set and animates them between
// layouts.
//
// A [Scene] ties the pieces together: a record provider, the layout engine,
// a transition controller and a layout selector. [Scene.Load] fetches
// records, computes every layout, replaces all cards with new ones at
// random positions and starts a transition to the active layout. Each call
// to [Scene.Step] advances the running transition by one frame.
//
// A Scene is not safe for concurrent use. Programs that touch it from more
// than one goroutine run it inside a [Loop].
package scene

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/cardspace/pkg/errors"
	"github.com/matzehuels/cardspace/pkg/layout"
	"github.com/matzehuels/cardspace/pkg/observability"
	"github.com/matzehuels/cardspace/pkg/records"
	"github.com/matzehuels/cardspace/pkg/selector"
	"github.com/matzehuels/cardspace/pkg/transition"
)

// DefaultScatter is the half-extent of the cube new cards start in.
const DefaultScatter = 2000.0

// Options configures a Scene.
type Options struct {
	Provider records.Provider
	Layout   *layout.Options
	// Initial is the layout cards move to after the first load.
	Initial  layout.Kind
	Duration time.Duration
	// Scatter is the half-extent of the start cube. Defaults to [DefaultScatter].
	Scatter float64
	// Rand places new cards. Defaults to a time-seeded PCG.
	Rand transition.RandSource
	// Controller options, e.g. a render callback or a pinned clock.
	Controller []transition.Option
	Logger     *log.Logger
}

// Scene is one set of cards and their layouts.
type Scene struct {
	provider records.Provider
	layout   *layout.Options
	scatter  float64
	rng      transition.RandSource
	logger   *log.Logger

	ctrl *transition.Controller
	sel  *selector.Selector

	set     *records.Set
	cards   []*Card
	targets layout.Targets
}

// New returns an empty scene. Call [Scene.Load] to populate it.
func New(opts Options) *Scene {
	if opts.Provider == nil {
		opts.Provider = records.Placeholder{}
	}
	if opts.Scatter <= 0 {
		opts.Scatter = DefaultScatter
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}

	ctrlOpts := append([]transition.Option{transition.WithLogger(opts.Logger)}, opts.Controller...)
	ctrl := transition.New(ctrlOpts...)

	return &Scene{
		provider: opts.Provider,
		layout:   opts.Layout,
		scatter:  opts.Scatter,
		rng:      opts.Rand,
		logger:   opts.Logger,
		ctrl:     ctrl,
		sel: selector.New(ctrl, selector.Options{
			Initial:  opts.Initial,
			Duration: opts.Duration,
			Logger:   opts.Logger,
		}),
	}
}

// Load fetches records and rebuilds the scene from them. On error the
// scene keeps its previous contents.
//
// Load blocks for as long as the provider does. Inside a [Loop], use
// [Loop.Reload] so that frames keep ticking during the fetch.
func (s *Scene) Load(ctx context.Context) error {
	set, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	return s.LoadSet(ctx, set)
}

// fetch reads records from the provider. It touches no scene state and
// may run on any goroutine.
func (s *Scene) fetch(ctx context.Context) (*records.Set, error) {
	start := time.Now()
	set, err := s.provider.Records(ctx)
	observability.Layout().OnRecordsLoaded(ctx, sourceOf(set), set.Len(), time.Since(start), err)
	return set, err
}

// LoadSet rebuilds the scene from an already fetched record set. Every card
// is replaced and the running transition, if any, is superseded by one
// toward the active layout.
func (s *Scene) LoadSet(ctx context.Context, set *records.Set) error {
	if set == nil {
		set = &records.Set{}
	}
	start := time.Now()
	n := set.Len()
	targets := make(layout.Targets, len(layout.Kinds()))
	for _, kind := range layout.Kinds() {
		t0 := time.Now()
		ts, err := layout.Compute(kind, n, s.layout)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "compute %s", kind)
		}
		observability.Layout().OnLayoutComputed(ctx, kind.String(), n, time.Since(t0))
		targets[kind] = ts
	}

	cards := make([]*Card, n)
	objects := make([]transition.Object, n)
	for i, rec := range set.Records {
		cards[i] = NewCard(rec, s.scatterPoint())
		objects[i] = cards[i]
	}

	s.ctrl.Cancel()
	s.set, s.cards, s.targets = set, cards, targets
	s.sel.Bind(objects, targets)
	if err := s.sel.Replay(); err != nil {
		return err
	}

	s.logger.Info("scene loaded", "source", set.Source, "records", n, "layout", s.sel.Active(), "took", time.Since(start))
	return nil
}

// Provider returns the record provider used by [Scene.Load].
func (s *Scene) Provider() records.Provider { return s.provider }

// ChangeLayout switches to the named layout. Unknown names are ignored.
func (s *Scene) ChangeLayout(name string) error { return s.sel.ChangeLayout(name) }

// Active returns the active layout.
func (s *Scene) Active() layout.Kind { return s.sel.Active() }

// Step advances the running transition to now and reports whether it is
// still running.
func (s *Scene) Step(now time.Time) bool { return s.ctrl.Step(now) }

// Animating reports whether a transition is running.
func (s *Scene) Animating() bool { return s.ctrl.Active() }

// Records returns the loaded record set, or nil before the first load.
func (s *Scene) Records() *records.Set { return s.set }

// Targets returns the target sets of the loaded records.
func (s *Scene) Targets() layout.Targets { return s.targets }

// Cards returns the managed cards in record order.
func (s *Scene) Cards() []*Card { return s.cards }

// Snapshot copies the live transform of every card.
func (s *Scene) Snapshot() []CardState {
	out := make([]CardState, len(s.cards))
	for i, c := range s.cards {
		out[i] = c.State()
	}
	return out
}

// Controller exposes the transition controller, e.g. to inspect pending
// tweens.
func (s *Scene) Controller() *transition.Controller { return s.ctrl }

func (s *Scene) scatterPoint() mgl64.Vec3 {
	return mgl64.Vec3{s.spread(), s.spread(), s.spread()}
}

func (s *Scene) spread() float64 {
	return s.rng.Float64()*2*s.scatter - s.scatter
}

func sourceOf(set *records.Set) string {
	if set == nil {
		return ""
	}
	return set.Source
}
