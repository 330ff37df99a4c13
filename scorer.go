package reach

import (
	"math"
	"time"
)

// MaxScore is the base score of a contained probe. It is finite so that
// MaxScore minus a distance still ranks by that distance.
const MaxScore = 1e9

// Candidate is the interactable a scorer judged best on this tick.
type Candidate struct {
	Interactable *Interactable
	Score        float64
	// Fallback is set when the candidate came from a timeout fallback rather
	// than geometry.
	Fallback bool
}

// Scorer picks the best candidate for an interactor. ComputeCandidate must
// be deterministic for a given registry snapshot and actor pose; state that
// evolves over time belongs in Preprocess.
type Scorer interface {
	ComputeCandidate(iv *Interactor) Candidate
}

// Preprocessor is implemented by scorers that update per-tick state. It is
// called once per tick before ComputeCandidate.
type Preprocessor interface {
	Preprocess(iv *Interactor)
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(iv *Interactor) Candidate

// ComputeCandidate calls f.
func (f ScorerFunc) ComputeCandidate(iv *Interactor) Candidate { return f(iv) }

// --- Snap scoring ---

// SnapScorer ranks interactables by containment first and proximity second.
// A probe inside a volume scores MaxScore minus its distance to the volume
// center; a probe outside scores minus its distance to the closest surface
// point, so any containment outranks any proximity. Ties keep the first
// interactable in registry order.
//
// When Element has been idle for Timeout and geometry yields nothing, the
// Fallback interactable is returned instead, letting an abandoned element
// return home.
type SnapScorer struct {
	// MaxDistance > 0 ignores non-contained volumes farther than this.
	MaxDistance float64

	// Element is the engagement signal: while it has hovering or selecting
	// points the idle timer is reset. With a nil Element the interactor's own
	// Select state is the signal.
	Element  PointCounter
	Timeout  time.Duration
	Fallback *Interactable

	idle      bool
	idleSince time.Duration
}

// NewSnapScorer creates a SnapScorer using the world's configured snap
// timeout.
func (w *World) NewSnapScorer(element PointCounter, fallback *Interactable) *SnapScorer {
	return &SnapScorer{
		Element:  element,
		Timeout:  w.cfg.SnapTimeout,
		Fallback: fallback,
	}
}

// Preprocess advances the idle timer.
func (s *SnapScorer) Preprocess(iv *Interactor) {
	if s.engaged(iv) {
		s.idle = false
		return
	}
	if !s.idle {
		s.idle = true
		s.idleSince = iv.world.Now()
	}
}

func (s *SnapScorer) engaged(iv *Interactor) bool {
	if s.Element == nil {
		return iv.state == StateSelect
	}
	return s.Element.PointsCount() > 0 || s.Element.SelectingPointsCount() > 0
}

// ResetIdle clears the idle timer as if the element had just been engaged.
func (s *SnapScorer) ResetIdle() { s.idle = false }

// IdleFor returns how long the element has been idle as of now, or zero when
// it is engaged.
func (s *SnapScorer) IdleFor(now time.Duration) time.Duration {
	if !s.idle {
		return 0
	}
	return now - s.idleSince
}

func (s *SnapScorer) timedOut(now time.Duration) bool {
	return s.Timeout > 0 && s.idle && now-s.idleSince >= s.Timeout
}

// ComputeCandidate implements Scorer.
func (s *SnapScorer) ComputeCandidate(iv *Interactor) Candidate {
	var best Candidate
	found := false
	for _, ia := range iv.world.Candidates(iv) {
		sc, ok := s.score(iv, ia)
		if !ok {
			continue
		}
		if !found || sc > best.Score {
			best = Candidate{Interactable: ia, Score: sc}
			found = true
		}
	}
	if found {
		return best
	}
	if s.Fallback != nil && s.timedOut(iv.world.Now()) && iv.validCandidate(s.Fallback) {
		return Candidate{Interactable: s.Fallback, Fallback: true}
	}
	return Candidate{}
}

// score returns the best score over ia's volumes. Volumes whose query panics
// or yields a non-finite value are skipped.
func (s *SnapScorer) score(iv *Interactor, ia *Interactable) (float64, bool) {
	q := iv.world.query
	p := iv.pose.Position
	best := math.Inf(-1)
	found := false
	for _, v := range ia.Volumes {
		var sc float64
		var skip bool
		ok := iv.world.recoverQuery(ia.Name, func() {
			if q.Contains(p, v) {
				sc = MaxScore - p.Dist(v.Center())
				return
			}
			d := p.Dist(q.ClosestPoint(p, v))
			if s.MaxDistance > 0 && d > s.MaxDistance {
				skip = true
				return
			}
			sc = -d
		})
		if !ok || skip {
			continue
		}
		if !isFinite(sc) {
			iv.world.debugf("interactable %q: degenerate volume score %v", ia.Name, sc)
			continue
		}
		if !found || sc > best {
			best = sc
			found = true
		}
	}
	return best, found
}

// --- Nearest scoring ---

// NearestScorer picks the interactable whose closest point is nearest to the
// actor. Interactables without volumes are measured to their pose. Ties keep
// the first interactable in registry order.
type NearestScorer struct {
	// MaxDistance > 0 ignores interactables farther than this.
	MaxDistance float64
}

// ComputeCandidate implements Scorer.
func (s NearestScorer) ComputeCandidate(iv *Interactor) Candidate {
	var best Candidate
	bestDist := math.Inf(1)
	for _, ia := range iv.world.Candidates(iv) {
		d, ok := nearestDistance(iv, ia)
		if !ok {
			continue
		}
		if s.MaxDistance > 0 && d > s.MaxDistance {
			continue
		}
		if d < bestDist {
			bestDist = d
			best = Candidate{Interactable: ia, Score: -d}
		}
	}
	return best
}

func nearestDistance(iv *Interactor, ia *Interactable) (float64, bool) {
	p := iv.pose.Position
	if len(ia.Volumes) == 0 {
		return p.Dist(ia.pose.Position), true
	}
	q := iv.world.query
	best := math.Inf(1)
	for _, v := range ia.Volumes {
		var d float64
		ok := iv.world.recoverQuery(ia.Name, func() {
			if q.Contains(p, v) {
				d = 0
				return
			}
			d = p.Dist(q.ClosestPoint(p, v))
		})
		if ok && isFinite(d) && d < best {
			best = d
		}
	}
	return best, !math.IsInf(best, 1)
}
