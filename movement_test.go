package reach

import (
	"errors"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestDirectMovement(t *testing.T) {
	var m DirectMovement
	m.Initialize(PoseAt(Vec3{1, 0, 0}))
	if m.Pose().Position != (Vec3{1, 0, 0}) {
		t.Errorf("after Initialize: %v", m.Pose())
	}
	m.BeginTransform(PoseAt(Vec3{2, 0, 0}))
	m.UpdateTransform(PoseAt(Vec3{3, 0, 0}), frame)
	if m.Pose().Position != (Vec3{3, 0, 0}) {
		t.Errorf("after Update: %v", m.Pose())
	}
	if m.Err() != nil {
		t.Error("direct movement should never fail")
	}
}

func TestEaseMovementLinear(t *testing.T) {
	m := NewEaseMovement(time.Second, ease.Linear)
	target := PoseAt(Vec3{10, 0, 0})
	m.Initialize(PoseAt(Vec3{}))
	m.BeginTransform(target)

	m.UpdateTransform(target, 500*time.Millisecond)
	if x := m.Pose().Position.X; x < 4.99 || x > 5.01 {
		t.Errorf("halfway x = %v, want 5", x)
	}
	if m.Done() {
		t.Error("done too early")
	}

	m.UpdateTransform(target, 600*time.Millisecond)
	if !m.Done() || m.Progress() != 1 {
		t.Errorf("done=%v progress=%v", m.Done(), m.Progress())
	}
	if !m.Pose().Equal(target, 1e-9) {
		t.Errorf("final pose = %+v", m.Pose())
	}
}

func TestEaseMovementFollowsMovingTarget(t *testing.T) {
	m := NewEaseMovement(100*time.Millisecond, nil)
	m.Initialize(PoseAt(Vec3{}))
	m.BeginTransform(PoseAt(Vec3{1, 0, 0}))
	m.UpdateTransform(PoseAt(Vec3{1, 0, 0}), time.Second)

	moved := PoseAt(Vec3{4, 4, 0})
	m.UpdateTransform(moved, frame)
	if !m.Pose().Equal(moved, 1e-9) {
		t.Errorf("pose = %+v, want the moved target", m.Pose())
	}
}

func TestEaseMovementZeroDuration(t *testing.T) {
	m := NewEaseMovement(0, ease.OutCubic)
	target := PoseAt(Vec3{0, 3, 0})
	m.Initialize(PoseAt(Vec3{}))
	m.BeginTransform(target)
	if !m.Done() || !m.Pose().Equal(target, 1e-9) {
		t.Errorf("done=%v pose=%+v", m.Done(), m.Pose())
	}
}

func TestEaseToFactory(t *testing.T) {
	f := EaseTo(time.Second, ease.InOutSine)
	m, ok := f(nil).(*EaseMovement)
	if !ok {
		t.Fatalf("factory returned %T", f(nil))
	}
	if m.Duration != time.Second {
		t.Errorf("Duration = %v", m.Duration)
	}
}

func TestVelocityMovement(t *testing.T) {
	m := &VelocityMovement{Speed: 2}
	target := PoseAt(Vec3{10, 0, 0})
	m.Initialize(PoseAt(Vec3{}))
	m.BeginTransform(target)

	m.UpdateTransform(target, time.Second)
	if !vecApprox(m.Pose().Position, Vec3{2, 0, 0}) {
		t.Errorf("after 1s: %v, want (2,0,0)", m.Pose().Position)
	}
	m.UpdateTransform(target, 10*time.Second)
	if m.Pose().Position != target.Position {
		t.Errorf("did not arrive: %v", m.Pose().Position)
	}
}

func TestVelocityMovementInstantWhenNoSpeed(t *testing.T) {
	m := &VelocityMovement{}
	target := PoseAt(Vec3{1, 2, 3})
	m.Initialize(PoseAt(Vec3{}))
	m.UpdateTransform(target, frame)
	if m.Pose() != target {
		t.Errorf("pose = %+v", m.Pose())
	}
}

func TestVelocityMovementBreaks(t *testing.T) {
	m := &VelocityMovement{Speed: 1, BreakDistance: 2}
	m.Initialize(PoseAt(Vec3{}))
	m.BeginTransform(PoseAt(Vec3{1, 0, 0}))
	if m.Err() != nil {
		t.Fatalf("broke within range: %v", m.Err())
	}
	m.UpdateTransform(PoseAt(Vec3{5, 0, 0}), frame)
	if !errors.Is(m.Err(), ErrMovementBroken) {
		t.Errorf("Err = %v, want ErrMovementBroken", m.Err())
	}

	m.Initialize(PoseAt(Vec3{}))
	if m.Err() != nil {
		t.Error("Initialize should clear the failure")
	}
}

func TestSelectorMovementSwitches(t *testing.T) {
	useVelocity := false
	vel := &VelocityMovement{Speed: 1}
	direct := &DirectMovement{}
	m := &SelectorMovement{Cases: []MovementCase{
		{When: func() bool { return useVelocity }, Movement: vel},
		{Movement: direct},
	}}

	target := PoseAt(Vec3{10, 0, 0})
	m.Initialize(PoseAt(Vec3{}))
	m.BeginTransform(target)
	if m.Active() != 1 {
		t.Fatalf("Active = %d, want 1", m.Active())
	}
	m.UpdateTransform(PoseAt(Vec3{4, 0, 0}), frame)
	if m.Pose().Position != (Vec3{4, 0, 0}) {
		t.Fatalf("direct pose = %v", m.Pose().Position)
	}

	// The velocity case takes over from the current pose, not from the start.
	useVelocity = true
	m.UpdateTransform(target, time.Second)
	if m.Active() != 0 {
		t.Fatalf("Active = %d, want 0", m.Active())
	}
	if !vecApprox(m.Pose().Position, Vec3{5, 0, 0}) {
		t.Errorf("velocity pose = %v, want (5,0,0)", m.Pose().Position)
	}
}

func TestSelectorMovementNoMatch(t *testing.T) {
	m := &SelectorMovement{Cases: []MovementCase{
		{When: func() bool { return false }, Movement: &DirectMovement{}},
	}}
	target := PoseAt(Vec3{1, 1, 1})
	m.Initialize(PoseAt(Vec3{}))
	m.BeginTransform(target)
	m.UpdateTransform(target, frame)
	if m.Active() != -1 || m.Pose() != target || m.Err() != nil {
		t.Errorf("active=%d pose=%+v err=%v", m.Active(), m.Pose(), m.Err())
	}
}

func TestInteractableGenerateMovementDefault(t *testing.T) {
	w, _ := newTestWorld(t)
	ia := w.NewInteractable("k", "a")
	if _, ok := ia.GenerateMovement(nil).(*DirectMovement); !ok {
		t.Error("default movement should be DirectMovement")
	}
	ia.Movement = func(*Interactor) Movement { return nil }
	if _, ok := ia.GenerateMovement(nil).(*DirectMovement); !ok {
		t.Error("nil factory result should fall back to DirectMovement")
	}
	ia.Movement = EaseTo(time.Second, nil)
	if _, ok := ia.GenerateMovement(nil).(*EaseMovement); !ok {
		t.Error("factory ignored")
	}
}
