package reach

import (
	"bytes"
	"log"
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

// --- Helpers ---

func newTestWorld(t *testing.T) (*World, *bytes.Buffer) {
	t.Helper()
	w := NewWorld(Config{})
	var buf bytes.Buffer
	w.SetLogger(log.New(&buf, "", 0))
	return w, &buf
}

func addSphere(t *testing.T, w *World, kind Kind, name string, center Vec3, radius float64) *Interactable {
	t.Helper()
	ia := w.NewInteractable(kind, name)
	ia.Volumes = []Volume{Sphere{Origin: center, Radius: radius}}
	ia.SetPose(PoseAt(center))
	if err := ia.Enable(); err != nil {
		t.Fatalf("Enable(%q): %v", name, err)
	}
	return ia
}

func newHand(t *testing.T, w *World, kind Kind, name string, policy SelectPolicy) *Interactor {
	t.Helper()
	iv := w.NewInteractor(kind, name, InteractorOptions{
		Scorer: NearestScorer{MaxDistance: 1},
		Policy: policy,
	})
	if err := iv.Enable(); err != nil {
		t.Fatalf("Enable(%q): %v", name, err)
	}
	return iv
}

type recorder struct {
	events []PointerEvent
}

func record(ia *Interactable) *recorder {
	r := &recorder{}
	ia.Subscribe(func(e PointerEvent) { r.events = append(r.events, e) })
	return r
}

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *recorder) count(typ EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func (r *recorder) reset() { r.events = nil }

func equalTypes(a, b []EventType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- World ---

func TestNewWorldDefaults(t *testing.T) {
	w := NewWorld(Config{})
	cfg := w.Config()
	if cfg.SnapTimeout != defaultSnapTimeout {
		t.Errorf("SnapTimeout = %v, want %v", cfg.SnapTimeout, defaultSnapTimeout)
	}
	if _, ok := w.SpatialQuery().(ShapeQuery); !ok {
		t.Errorf("default query = %T, want ShapeQuery", w.SpatialQuery())
	}
	if w.Now() != 0 || w.Ticks() != 0 {
		t.Error("new world clock should be zero")
	}
}

func TestWorldClock(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Update(frame)
	w.Update(frame)
	w.Advance(time.Second)
	w.Advance(-time.Second)

	if w.Ticks() != 2 {
		t.Errorf("Ticks = %d, want 2", w.Ticks())
	}
	if want := 2*frame + time.Second; w.Now() != want {
		t.Errorf("Now = %v, want %v", w.Now(), want)
	}
}

func TestWorldSetSpatialQueryNilRestoresDefault(t *testing.T) {
	w, _ := newTestWorld(t)
	w.SetSpatialQuery(panicQuery{})
	w.SetSpatialQuery(nil)
	if _, ok := w.SpatialQuery().(ShapeQuery); !ok {
		t.Errorf("query = %T, want ShapeQuery", w.SpatialQuery())
	}
}

func TestWorldRegistryPerKind(t *testing.T) {
	w, _ := newTestWorld(t)
	a := addSphere(t, w, "grab", "a", Vec3{}, 1)
	b := addSphere(t, w, "slot", "b", Vec3{}, 1)

	if !w.Registry("grab").Contains(a) || w.Registry("grab").Contains(b) {
		t.Error("grab registry mismatch")
	}
	if w.Registry("slot").Len() != 1 {
		t.Errorf("slot registry Len = %d", w.Registry("slot").Len())
	}
	if got := w.FindInteractable("slot", "b"); got != b {
		t.Errorf("FindInteractable = %v", got)
	}
	if got := w.FindInteractable("grab", "b"); got != nil {
		t.Error("FindInteractable crossed kinds")
	}
}

func TestWorldCandidatesFiltersByHoverability(t *testing.T) {
	w, _ := newTestWorld(t)
	a := addSphere(t, w, "k", "a", Vec3{}, 1)
	b := addSphere(t, w, "k", "b", Vec3{}, 1)
	b.MaxInteractors = 0
	iv := newHand(t, w, "k", "hand", nil)

	got := w.Candidates(iv)
	if len(got) != 1 || got[0] != a {
		t.Errorf("Candidates = %v, want [a]", got)
	}
}

func TestWorldUpdateTickOrder(t *testing.T) {
	w, _ := newTestWorld(t)
	var order []string
	mk := func(name string) *Interactor {
		return w.NewInteractor("k", name, InteractorOptions{
			Scorer: ScorerFunc(func(iv *Interactor) Candidate {
				order = append(order, iv.Name)
				return Candidate{}
			}),
		})
	}
	a, b, c := mk("a"), mk("b"), mk("c")
	_ = a.Enable()
	_ = c.Enable()
	_ = b.Enable()

	w.Update(frame)
	if want := []string{"a", "b", "c"}; len(order) != 3 || order[0] != want[0] || order[1] != want[1] || order[2] != want[2] {
		t.Errorf("tick order = %v, want %v", order, want)
	}

	order = nil
	b.Disable()
	w.Update(frame)
	if len(order) != 2 {
		t.Errorf("disabled interactor ticked: %v", order)
	}

	order = nil
	c.Dispose()
	w.Update(frame)
	if len(order) != 1 || order[0] != "a" {
		t.Errorf("disposed interactor ticked: %v", order)
	}
	if len(w.Interactors()) != 2 {
		t.Errorf("Interactors = %d, want 2", len(w.Interactors()))
	}
}

func TestWorldsAreIndependent(t *testing.T) {
	w1, _ := newTestWorld(t)
	w2, _ := newTestWorld(t)
	ia := addSphere(t, w1, "k", "a", Vec3{}, 1)
	iv := newHand(t, w2, "k", "hand", nil)

	if ia.CanBeHoveredBy(iv) {
		t.Error("interactor from another world should not hover")
	}
	if err := iv.ForceSelect(ia); err != ErrNotRegistered {
		t.Errorf("ForceSelect across worlds = %v, want ErrNotRegistered", err)
	}
	if w2.Publish(ia, PointerEvent{Type: EventHover, Identifier: iv.ID()}) {
		t.Error("publish across worlds should be rejected")
	}
}
