package reach

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6
}

func vecApprox(a, b Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

// --- Vec3 ---

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := (Vec3{1, 0, 0}).Cross(Vec3{0, 1, 0}); got != (Vec3{0, 0, 1}) {
		t.Errorf("Cross = %v, want +Z", got)
	}
}

func TestVec3Length(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{}, 0},
		{"unit x", Vec3{1, 0, 0}, 1},
		{"3-4-0", Vec3{3, 4, 0}, 5},
		{"negative", Vec3{0, -2, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Len(); !approx(got, tt.want) {
				t.Errorf("Len(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
	if got := (Vec3{0, 0, 7}).Normalize(); !vecApprox(got, Vec3{0, 0, 1}) {
		t.Errorf("Normalize = %v", got)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec3{math.NaN(), 0, 0}).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if (Vec3{0, math.Inf(1), 0}).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}

// --- Quat ---

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/2)
	got := q.Rotate(Vec3{1, 0, 0})
	if !vecApprox(got, Vec3{0, 1, 0}) {
		t.Errorf("90deg about Z of +X = %v, want +Y", got)
	}

	if got := QuatIdentity.Rotate(Vec3{1, 2, 3}); !vecApprox(got, Vec3{1, 2, 3}) {
		t.Errorf("identity rotate = %v", got)
	}
}

func TestQuatMulComposes(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/4)
	got := q.Mul(q).Rotate(Vec3{1, 0, 0})
	if !vecApprox(got, Vec3{0, 1, 0}) {
		t.Errorf("two 45deg turns of +X = %v, want +Y", got)
	}
}

func TestQuatSlerp(t *testing.T) {
	to := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)

	if got := QuatIdentity.Slerp(to, 0); got != QuatIdentity {
		t.Errorf("Slerp(0) = %v", got)
	}
	if got := QuatIdentity.Slerp(to, 1); got != to {
		t.Errorf("Slerp(1) = %v", got)
	}
	mid := QuatIdentity.Slerp(to, 0.5)
	if a := QuatIdentity.Angle(mid); !approx(a, math.Pi/4) {
		t.Errorf("halfway angle = %v, want pi/4", a)
	}
	// Clamped outside [0, 1].
	if got := QuatIdentity.Slerp(to, 2); got != to {
		t.Errorf("Slerp(2) = %v, want target", got)
	}
}

func TestQuatSlerpNearlyParallel(t *testing.T) {
	to := QuatFromAxisAngle(Vec3{1, 0, 0}, 1e-4)
	got := QuatIdentity.Slerp(to, 0.5)
	if l := math.Sqrt(got.dot(got)); !approx(l, 1) {
		t.Errorf("nlerp result not unit: %v", l)
	}
}

func TestQuatAngleIgnoresSign(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, 0.3)
	neg := Quat{-q.X, -q.Y, -q.Z, -q.W}
	if a := q.Angle(neg); a > 1e-6 {
		t.Errorf("Angle(q, -q) = %v, want 0", a)
	}
}

// --- Pose ---

func TestPoseLerp(t *testing.T) {
	a := PoseAt(Vec3{0, 0, 0})
	b := Pose{Position: Vec3{2, 0, 0}, Rotation: QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/2)}
	mid := a.Lerp(b, 0.5)
	if !vecApprox(mid.Position, Vec3{1, 0, 0}) {
		t.Errorf("mid position = %v", mid.Position)
	}
	if ang := a.Rotation.Angle(mid.Rotation); !approx(ang, math.Pi/4) {
		t.Errorf("mid rotation angle = %v", ang)
	}
}

func TestPoseEqual(t *testing.T) {
	a := PoseAt(Vec3{1, 1, 1})
	if !a.Equal(PoseAt(Vec3{1, 1, 1 + 1e-12}), eps) {
		t.Error("poses within eps should be equal")
	}
	if a.Equal(PoseAt(Vec3{1, 1, 1.1}), eps) {
		t.Error("poses 0.1 apart should differ")
	}
	turned := Pose{Position: a.Position, Rotation: QuatFromAxisAngle(Vec3{0, 1, 0}, 0.5)}
	if a.Equal(turned, eps) {
		t.Error("rotated pose should differ")
	}
}
