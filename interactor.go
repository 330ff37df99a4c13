package reach

import (
	"fmt"
	"time"
)

// InteractorOptions configures a new Interactor. Every field may be swapped
// later through the matching setter.
type InteractorOptions struct {
	Scorer Scorer
	Policy SelectPolicy
	Source PoseSource
}

// Interactor is the actor side of an interaction: a state machine that
// searches for a candidate every tick and walks Normal -> Hover -> Select and
// back, publishing one pointer event per edge.
//
// Behavior is composed, not inherited: the Scorer picks the candidate, the
// SelectPolicy decides when to select and unselect, and the selected
// interactable supplies the Movement run while selecting.
type Interactor struct {
	Name     string
	UserData any

	id    Identifier
	kind  Kind
	world *World

	scorer Scorer
	policy SelectPolicy
	source PoseSource

	state        InteractorState
	pose         Pose
	candidate    Candidate
	interactable *Interactable
	selected     *Interactable
	pinned       *Interactable
	movement     Movement
	disposed     bool

	stateHandlers handlerList[StateChange]
}

// NewInteractor creates a disabled interactor that searches interactables of
// the given kind.
func (w *World) NewInteractor(kind Kind, name string, opts InteractorOptions) *Interactor {
	w.nextInteractorID++
	iv := &Interactor{
		Name:   name,
		id:     w.nextInteractorID,
		kind:   kind,
		world:  w,
		scorer: opts.Scorer,
		policy: opts.Policy,
		source: opts.Source,
		state:  StateDisabled,
		pose:   PoseIdentity,
	}
	w.addInteractor(iv)
	return iv
}

// --- Accessors ---

// ID returns the interactor's identifier.
func (iv *Interactor) ID() Identifier { return iv.id }

// Kind returns the interactable kind this interactor searches.
func (iv *Interactor) Kind() Kind { return iv.kind }

// World returns the owning world.
func (iv *Interactor) World() *World { return iv.world }

// State returns the current state.
func (iv *Interactor) State() InteractorState { return iv.state }

// Candidate returns the candidate computed on the last tick.
func (iv *Interactor) Candidate() Candidate { return iv.candidate }

// Interactable returns the interactable currently hovered or selected, or nil.
func (iv *Interactor) Interactable() *Interactable { return iv.interactable }

// SelectedInteractable returns the interactable being selected, or nil.
func (iv *Interactor) SelectedInteractable() *Interactable { return iv.selected }

// Pose returns the actor pose read on the last tick.
func (iv *Interactor) Pose() Pose { return iv.pose }

// SetPose sets the actor pose directly. A configured PoseSource overwrites it
// on the next tick.
func (iv *Interactor) SetPose(p Pose) { iv.pose = p }

// MovementPose returns the pose computed by the active movement. ok is false
// when the interactor is not selecting.
func (iv *Interactor) MovementPose() (pose Pose, ok bool) {
	if iv.movement == nil {
		return Pose{}, false
	}
	return iv.movement.Pose(), true
}

// IsDisposed reports whether the interactor has been disposed.
func (iv *Interactor) IsDisposed() bool { return iv.disposed }

// SetScorer swaps the candidate scorer.
func (iv *Interactor) SetScorer(s Scorer) { iv.scorer = s }

// Scorer returns the candidate scorer.
func (iv *Interactor) Scorer() Scorer { return iv.scorer }

// SetPolicy swaps the select policy.
func (iv *Interactor) SetPolicy(p SelectPolicy) { iv.policy = p }

// Policy returns the select policy.
func (iv *Interactor) Policy() SelectPolicy { return iv.policy }

// SetSource swaps the actor pose source.
func (iv *Interactor) SetSource(src PoseSource) { iv.source = src }

// OnStateChanged registers a callback fired after every state transition.
func (iv *Interactor) OnStateChanged(fn func(StateChange)) CallbackHandle {
	return iv.stateHandlers.add(fn)
}

// --- Lifecycle ---

// Enable moves a disabled interactor to Normal.
func (iv *Interactor) Enable() error {
	if iv.disposed {
		return ErrDisposed
	}
	if iv.state == StateDisabled {
		iv.setState(StateNormal)
	}
	return nil
}

// Disable ends any engagement with the terminal events subscribers expect
// (Unselect, then Unhover) and moves to Disabled.
func (iv *Interactor) Disable() {
	if iv.state == StateDisabled {
		return
	}
	if iv.state == StateSelect {
		iv.unselect()
	}
	if iv.state == StateHover {
		iv.unhover()
	}
	iv.candidate = Candidate{}
	iv.pinned = nil
	iv.setState(StateDisabled)
}

// Dispose disables the interactor and removes it from its world.
func (iv *Interactor) Dispose() {
	if iv.disposed {
		return
	}
	iv.Disable()
	iv.disposed = true
	iv.world.removeInteractor(iv)
	iv.stateHandlers.clear()
	iv.UserData = nil
}

// --- Tick ---

// Tick runs one evaluation of the state machine. It reads the actor pose,
// recomputes the candidate, takes at most the transitions that candidate and
// the policy call for, and while selecting drives the movement and publishes
// a Move event. Tick never panics on scorer or geometry failures.
func (iv *Interactor) Tick(dt time.Duration) {
	if iv.disposed {
		iv.world.warnf("tick on disposed interactor %q (%d)", iv.Name, iv.id)
		return
	}
	if iv.state == StateDisabled {
		return
	}
	if iv.source != nil {
		iv.pose = iv.source.Pose()
	}
	if p, ok := iv.scorer.(Preprocessor); ok {
		p.Preprocess(iv)
	}

	switch iv.state {
	case StateNormal, StateHover:
		iv.updateCandidate()
		iv.rebind()
		if iv.state == StateHover {
			iv.trySelect()
		}
	case StateSelect:
		if iv.shouldUnselect() {
			iv.unselect()
			if iv.state == StateHover {
				iv.updateCandidate()
				iv.rebind()
			}
			return
		}
		iv.move(dt)
	}
}

// ForceSelect selects ia immediately, bypassing candidate search and the
// policy's ShouldSelect. It goes through the same Hover and Select edges as
// a tick would, so subscribers see the usual event sequence. ia stays pinned
// as the candidate until it is unselected.
func (iv *Interactor) ForceSelect(ia *Interactable) error {
	if iv.disposed {
		return ErrDisposed
	}
	if iv.state == StateDisabled {
		return ErrInteractorDisabled
	}
	if ia == nil || ia.world != iv.world || !iv.world.Registry(iv.kind).Contains(ia) {
		return ErrNotRegistered
	}
	if !ia.CanBeHoveredBy(iv) {
		return fmt.Errorf("force select %q: %w", ia.Name, ErrCannotHover)
	}

	if iv.state == StateSelect {
		if iv.selected == ia {
			iv.pinned = ia
			return nil
		}
		iv.unselect()
	}
	if iv.state == StateHover && iv.interactable != ia {
		iv.unhover()
	}
	if iv.state == StateNormal {
		iv.hover(ia)
	}
	if iv.state != StateHover || iv.interactable != ia {
		return fmt.Errorf("force select %q: %w", ia.Name, ErrCannotHover)
	}
	if !ia.CanBeSelectedBy(iv) {
		return fmt.Errorf("force select %q: %w", ia.Name, ErrCannotSelect)
	}

	iv.pinned = ia
	iv.candidate = Candidate{Interactable: ia, Score: MaxScore}
	iv.selectBound()
	if iv.state != StateSelect {
		iv.pinned = nil
		return fmt.Errorf("force select %q: %w", ia.Name, ErrCannotSelect)
	}
	return nil
}

// ForceRelease unselects a forced selection. Returns false if there was none.
func (iv *Interactor) ForceRelease() bool {
	if iv.state != StateSelect || iv.pinned == nil {
		return false
	}
	iv.unselect()
	return true
}

// --- Candidate search ---

func (iv *Interactor) canHover(ia *Interactable) bool {
	return ia.CanBeHoveredBy(iv)
}

func (iv *Interactor) validCandidate(ia *Interactable) bool {
	return ia.world == iv.world &&
		iv.world.Registry(iv.kind).Contains(ia) &&
		ia.CanBeHoveredBy(iv)
}

func (iv *Interactor) updateCandidate() {
	if iv.pinned != nil {
		if iv.validCandidate(iv.pinned) {
			iv.candidate = Candidate{Interactable: iv.pinned, Score: MaxScore}
			return
		}
		iv.pinned = nil
	}
	c := iv.computeCandidate()
	if c.Interactable != nil && !iv.validCandidate(c.Interactable) {
		iv.world.warnf("interactor %q: scorer returned unusable candidate %q", iv.Name, c.Interactable.Name)
		c = Candidate{}
	}
	iv.candidate = c
}

func (iv *Interactor) computeCandidate() (c Candidate) {
	if iv.scorer == nil {
		return Candidate{}
	}
	defer func() {
		if r := recover(); r != nil {
			iv.world.warnf("interactor %q: candidate computation panicked: %v", iv.Name, r)
			c = Candidate{}
		}
	}()
	return iv.scorer.ComputeCandidate(iv)
}

// rebind moves the hover binding to the current candidate.
func (iv *Interactor) rebind() {
	next := iv.candidate.Interactable
	if iv.state == StateHover && iv.interactable != next {
		iv.unhover()
	}
	if iv.state == StateNormal && next != nil {
		iv.hover(next)
	}
}

func (iv *Interactor) trySelect() {
	ia := iv.interactable
	if ia == nil || !ia.CanBeSelectedBy(iv) {
		return
	}
	if iv.policy != nil && iv.policy.ShouldSelect(iv, ia) {
		iv.selectBound()
	}
}

func (iv *Interactor) shouldUnselect() bool {
	ia := iv.selected
	if ia == nil || !ia.enabled || !iv.world.Registry(iv.kind).Contains(ia) {
		return true
	}
	if iv.movement != nil {
		if err := iv.movement.Err(); err != nil {
			iv.world.debugf("interactor %q: movement failed: %v", iv.Name, err)
			return true
		}
	}
	return iv.policy != nil && iv.policy.ShouldUnselect(iv, ia)
}

// --- Transitions ---

// setState is the single place state changes. Edges outside the state
// machine are refused and logged.
func (iv *Interactor) setState(to InteractorState) bool {
	from := iv.state
	if from == to {
		return true
	}
	if !legalTransition(from, to) {
		iv.world.warnf("interactor %q: illegal transition %s -> %s", iv.Name, from, to)
		return false
	}
	iv.state = to
	iv.world.debugf("interactor %q: %s -> %s", iv.Name, from, to)
	iv.stateHandlers.dispatch(StateChange{Previous: from, Next: to})
	return true
}

func (iv *Interactor) hover(ia *Interactable) {
	iv.interactable = ia
	iv.setState(StateHover)
	if !iv.world.Publish(ia, PointerEvent{Type: EventHover, Identifier: iv.id, Pose: iv.pose}) {
		if iv.interactable == ia {
			iv.interactable = nil
		}
		if iv.state == StateHover {
			iv.setState(StateNormal)
		}
	}
}

func (iv *Interactor) unhover() {
	ia := iv.interactable
	iv.interactable = nil
	iv.setState(StateNormal)
	if ia != nil {
		iv.world.Publish(ia, PointerEvent{Type: EventUnhover, Identifier: iv.id, Pose: iv.pose})
	}
}

func (iv *Interactor) selectBound() {
	ia := iv.interactable
	mv := ia.GenerateMovement(iv)
	mv.Initialize(iv.pose)
	mv.BeginTransform(ia.Pose())
	iv.movement = mv
	iv.selected = ia
	iv.setState(StateSelect)
	if !iv.world.Publish(ia, PointerEvent{Type: EventSelect, Identifier: iv.id, Pose: iv.pose}) {
		if iv.selected == ia {
			iv.endMovement()
			iv.selected = nil
		}
		if iv.state == StateSelect {
			iv.setState(StateHover)
		}
	}
}

func (iv *Interactor) unselect() {
	ia := iv.selected
	iv.endMovement()
	iv.selected = nil
	if iv.pinned == ia {
		iv.pinned = nil
	}
	iv.setState(StateHover)
	if ia != nil {
		iv.world.Publish(ia, PointerEvent{Type: EventUnselect, Identifier: iv.id, Pose: iv.pose})
	}
}

func (iv *Interactor) move(dt time.Duration) {
	ia := iv.selected
	if iv.movement == nil {
		return
	}
	iv.movement.UpdateTransform(ia.Pose(), dt)
	iv.world.Publish(ia, PointerEvent{Type: EventMove, Identifier: iv.id, Pose: iv.movement.Pose()})
}

func (iv *Interactor) endMovement() {
	if iv.movement != nil {
		iv.movement.EndTransform()
		iv.movement = nil
	}
}

// handleCancel folds a Cancel from ia into the state machine: the interactor
// drops everything it holds on ia and returns to Normal without consulting
// the policy and without emitting Unselect or Unhover.
func (iv *Interactor) handleCancel(ia *Interactable) {
	if iv.interactable != ia && iv.selected != ia {
		return
	}
	iv.endMovement()
	iv.selected = nil
	iv.interactable = nil
	if iv.pinned == ia {
		iv.pinned = nil
	}
	if iv.candidate.Interactable == ia {
		iv.candidate = Candidate{}
	}
	if iv.state == StateHover || iv.state == StateSelect {
		iv.setState(StateNormal)
	}
}
