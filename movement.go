package reach

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Movement computes the pose a selecting interactor should adopt each tick.
// Every implementation follows the same lifecycle: Initialize once with the
// pose the interactor had when selection began, BeginTransform with the first
// target, UpdateTransform once per tick, EndTransform when selection ends.
type Movement interface {
	Initialize(start Pose)
	BeginTransform(target Pose)
	UpdateTransform(target Pose, dt time.Duration)
	EndTransform()
	Pose() Pose
	// Err reports a movement failure. A non-nil Err makes the interactor
	// unselect on its next tick.
	Err() error
}

// MovementFactory creates a Movement for an interactor about to select.
type MovementFactory func(iv *Interactor) Movement

// --- Direct ---

// DirectMovement matches the target pose exactly every update.
type DirectMovement struct {
	pose Pose
}

func (m *DirectMovement) Initialize(start Pose)                        { m.pose = start }
func (m *DirectMovement) BeginTransform(target Pose)                   { m.pose = target }
func (m *DirectMovement) UpdateTransform(target Pose, _ time.Duration) { m.pose = target }
func (m *DirectMovement) EndTransform()                                {}
func (m *DirectMovement) Pose() Pose                                   { return m.pose }
func (m *DirectMovement) Err() error                                   { return nil }

// --- Eased ---

// EaseMovement interpolates from the start pose to the target over Duration
// using an easing function. The target may move during the tween; progress is
// applied against the latest target so the movement still lands on it.
type EaseMovement struct {
	Duration time.Duration
	Ease     ease.TweenFunc

	tween    *gween.Tween
	start    Pose
	pose     Pose
	progress float64
	done     bool
}

// NewEaseMovement returns an EaseMovement. A nil fn means ease.OutQuad.
func NewEaseMovement(d time.Duration, fn ease.TweenFunc) *EaseMovement {
	return &EaseMovement{Duration: d, Ease: fn}
}

// EaseTo returns a MovementFactory producing EaseMovements.
func EaseTo(d time.Duration, fn ease.TweenFunc) MovementFactory {
	return func(*Interactor) Movement { return NewEaseMovement(d, fn) }
}

func (m *EaseMovement) Initialize(start Pose) {
	m.start = start
	m.pose = start
}

func (m *EaseMovement) BeginTransform(target Pose) {
	fn := m.Ease
	if fn == nil {
		fn = ease.OutQuad
	}
	m.progress = 0
	m.done = m.Duration <= 0
	if m.done {
		m.progress = 1
		m.pose = target
		return
	}
	m.tween = gween.New(0, 1, float32(m.Duration.Seconds()), fn)
}

func (m *EaseMovement) UpdateTransform(target Pose, dt time.Duration) {
	if !m.done && m.tween != nil {
		val, finished := m.tween.Update(float32(dt.Seconds()))
		m.progress = float64(val)
		if finished {
			m.progress = 1
			m.done = true
		}
	}
	m.pose = m.start.Lerp(target, m.progress)
}

func (m *EaseMovement) EndTransform() { m.tween = nil }
func (m *EaseMovement) Pose() Pose    { return m.pose }
func (m *EaseMovement) Err() error    { return nil }

// Done reports whether the tween has reached the target.
func (m *EaseMovement) Done() bool { return m.done }

// Progress returns the eased progress in [0, 1].
func (m *EaseMovement) Progress() float64 { return m.progress }

// --- Velocity ---

// VelocityMovement chases the target at a bounded speed, the way a physics
// body matching velocity would. Rotation turns proportionally to the fraction
// of the remaining distance covered each tick.
type VelocityMovement struct {
	// Speed in world units per second. Zero or negative snaps instantly.
	Speed float64
	// BreakDistance > 0 fails the movement once the target is farther away.
	BreakDistance float64

	pose Pose
	err  error
}

func (m *VelocityMovement) Initialize(start Pose) {
	m.pose = start
	m.err = nil
}

func (m *VelocityMovement) BeginTransform(target Pose) {
	m.checkBreak(target)
}

func (m *VelocityMovement) UpdateTransform(target Pose, dt time.Duration) {
	if m.err != nil {
		return
	}
	if m.checkBreak(target) {
		return
	}
	delta := target.Position.Sub(m.pose.Position)
	dist := delta.Len()
	step := m.Speed * dt.Seconds()
	if m.Speed <= 0 || dist <= step || dist == 0 {
		m.pose = target
		return
	}
	t := step / dist
	m.pose = Pose{
		Position: m.pose.Position.Add(delta.Scale(t)),
		Rotation: m.pose.Rotation.Slerp(target.Rotation, t),
	}
}

func (m *VelocityMovement) checkBreak(target Pose) bool {
	if m.BreakDistance > 0 && m.pose.Position.Dist(target.Position) > m.BreakDistance {
		m.err = ErrMovementBroken
		return true
	}
	return false
}

func (m *VelocityMovement) EndTransform() {}
func (m *VelocityMovement) Pose() Pose    { return m.pose }
func (m *VelocityMovement) Err() error    { return m.err }

// --- Selector ---

// MovementCase pairs an activation predicate with a movement.
type MovementCase struct {
	When     func() bool
	Movement Movement
}

// SelectorMovement delegates to the first case whose predicate holds. When
// the winning case changes between updates, the old movement is ended and
// the new one is initialized from the current pose before it continues.
// A case with a nil When always matches.
type SelectorMovement struct {
	Cases []MovementCase

	active  int
	started bool
	pose    Pose
}

func (m *SelectorMovement) pick() int {
	for i, c := range m.Cases {
		if c.When == nil || c.When() {
			return i
		}
	}
	return -1
}

func (m *SelectorMovement) Initialize(start Pose) {
	m.pose = start
	m.active = m.pick()
	m.started = false
	if m.active >= 0 {
		m.Cases[m.active].Movement.Initialize(start)
	}
}

func (m *SelectorMovement) BeginTransform(target Pose) {
	if m.active < 0 {
		m.pose = target
		return
	}
	mv := m.Cases[m.active].Movement
	mv.BeginTransform(target)
	m.pose = mv.Pose()
	m.started = true
}

func (m *SelectorMovement) UpdateTransform(target Pose, dt time.Duration) {
	next := m.pick()
	if next != m.active {
		if m.active >= 0 && m.started {
			m.Cases[m.active].Movement.EndTransform()
		}
		m.active = next
		m.started = false
		if m.active >= 0 {
			mv := m.Cases[m.active].Movement
			mv.Initialize(m.pose)
			mv.BeginTransform(target)
			m.started = true
		}
	}
	if m.active < 0 {
		m.pose = target
		return
	}
	mv := m.Cases[m.active].Movement
	mv.UpdateTransform(target, dt)
	m.pose = mv.Pose()
}

func (m *SelectorMovement) EndTransform() {
	if m.active >= 0 && m.started {
		m.Cases[m.active].Movement.EndTransform()
	}
	m.started = false
}

func (m *SelectorMovement) Pose() Pose { return m.pose }

func (m *SelectorMovement) Err() error {
	if m.active < 0 {
		return nil
	}
	return m.Cases[m.active].Movement.Err()
}

// Active returns the index of the active case, or -1.
func (m *SelectorMovement) Active() int { return m.active }
