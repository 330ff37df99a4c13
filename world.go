package reach

import (
	"errors"
	"log"
	"time"
)

var (
	// ErrInteractorDisabled is returned when a forced operation targets a
	// disabled interactor.
	ErrInteractorDisabled = errors.New("reach: interactor is disabled")
	// ErrNotRegistered is returned when an interactable is not in its
	// registry.
	ErrNotRegistered = errors.New("reach: interactable is not registered")
	// ErrCannotHover is returned when an interactable rejects an interactor.
	ErrCannotHover = errors.New("reach: interactable cannot be hovered by interactor")
	// ErrCannotSelect is returned when a forced selection is refused.
	ErrCannotSelect = errors.New("reach: interactable cannot be selected by interactor")
	// ErrDisposed is returned by operations on disposed objects.
	ErrDisposed = errors.New("reach: disposed")
	// ErrMovementBroken is reported by movements that lost their target.
	ErrMovementBroken = errors.New("reach: movement lost its target")
)

// World owns everything that takes part in interaction: one registry per
// interactable kind, every interactor in tick order, the spatial query
// service, and the frame clock. Worlds are independent of each other; there
// is no process-wide state.
//
// A World is single-threaded. All mutation happens inside Update or inside
// callbacks it invokes.
type World struct {
	cfg    Config
	query  SpatialQuery
	store  EventStore
	logger *log.Logger
	debug  bool

	registries  map[Kind]*Registry[*Interactable]
	interactors []*Interactor
	byID        map[Identifier]*Interactor

	nextInteractorID   Identifier
	nextInteractableID uint64

	now   time.Duration
	ticks uint64
}

// NewWorld creates an empty world. Zero config fields take their defaults.
func NewWorld(cfg Config) *World {
	cfg = cfg.withDefaults()
	return &World{
		cfg:        cfg,
		query:      ShapeQuery{},
		logger:     defaultLogger(),
		debug:      cfg.Debug,
		registries: make(map[Kind]*Registry[*Interactable]),
		byID:       make(map[Identifier]*Interactor),
	}
}

// Config returns the configuration the world was created with.
func (w *World) Config() Config { return w.cfg }

// SetSpatialQuery replaces the geometry service. Nil restores ShapeQuery.
func (w *World) SetSpatialQuery(q SpatialQuery) {
	if q == nil {
		q = ShapeQuery{}
	}
	w.query = q
}

// SpatialQuery returns the geometry service in use.
func (w *World) SpatialQuery() SpatialQuery { return w.query }

// SetLogger replaces the diagnostics logger. Nil silences all diagnostics.
func (w *World) SetLogger(l *log.Logger) { w.logger = l }

// SetDebug toggles verbose diagnostics.
func (w *World) SetDebug(enabled bool) { w.debug = enabled }

// SetEventStore sets the ECS bridge. Nil disables forwarding.
func (w *World) SetEventStore(store EventStore) { w.store = store }

// Now returns the frame clock: the sum of every dt passed to Update or
// Advance.
func (w *World) Now() time.Duration { return w.now }

// Ticks returns how many times Update has run.
func (w *World) Ticks() uint64 { return w.ticks }

// Registry returns the registry for kind, creating it on first use.
func (w *World) Registry(kind Kind) *Registry[*Interactable] {
	r, ok := w.registries[kind]
	if !ok {
		r = NewRegistry[*Interactable]()
		w.registries[kind] = r
	}
	return r
}

// Candidates lists the interactables iv may hover, in registration order.
func (w *World) Candidates(iv *Interactor) []*Interactable {
	return w.Registry(iv.kind).List(iv.canHover)
}

// Interactors returns the live interactors in creation (tick) order.
func (w *World) Interactors() []*Interactor {
	out := make([]*Interactor, len(w.interactors))
	copy(out, w.interactors)
	return out
}

// Advance moves the frame clock forward without ticking.
func (w *World) Advance(dt time.Duration) {
	if dt > 0 {
		w.now += dt
	}
}

// Update advances the clock by dt and ticks every enabled interactor once,
// in creation order. Each interactor finishes its evaluation and every event
// it causes before the next one runs.
func (w *World) Update(dt time.Duration) {
	w.Advance(dt)
	w.ticks++
	snap := w.Interactors()
	for _, iv := range snap {
		if iv.disposed || iv.state == StateDisabled {
			continue
		}
		iv.Tick(dt)
	}
}

func (w *World) interactorByID(id Identifier) *Interactor {
	return w.byID[id]
}

func (w *World) addInteractor(iv *Interactor) {
	w.interactors = append(w.interactors, iv)
	w.byID[iv.id] = iv
}

func (w *World) removeInteractor(iv *Interactor) {
	delete(w.byID, iv.id)
	for i, v := range w.interactors {
		if v == iv {
			copy(w.interactors[i:], w.interactors[i+1:])
			w.interactors[len(w.interactors)-1] = nil
			w.interactors = w.interactors[:len(w.interactors)-1]
			return
		}
	}
}

// FindInteractable returns the first registered interactable of kind with
// the given name, or nil.
func (w *World) FindInteractable(kind Kind, name string) *Interactable {
	var found *Interactable
	w.Registry(kind).Each(func(ia *Interactable) bool {
		if ia.Name == name {
			found = ia
			return false
		}
		return true
	})
	return found
}
