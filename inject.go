package reach

// PoseQueue is a PoseSource fed with synthetic poses, one per tick. It
// stands in for a tracked hand or controller in tests and automation. When
// the queue is empty it keeps returning the last pose it produced.
type PoseQueue struct {
	queue []Pose
	last  Pose
}

// NewPoseQueue creates a queue that rests at start until poses are pushed.
func NewPoseQueue(start Pose) *PoseQueue {
	return &PoseQueue{last: start}
}

// Push queues poses for the next ticks, one per tick.
func (q *PoseQueue) Push(poses ...Pose) {
	q.queue = append(q.queue, poses...)
}

// PushPosition queues a pose at p that keeps the current rotation.
func (q *PoseQueue) PushPosition(p Vec3) {
	rot := q.last.Rotation
	if n := len(q.queue); n > 0 {
		rot = q.queue[n-1].Rotation
	}
	q.Push(Pose{Position: p, Rotation: rot})
}

// PushPath queues a path from `from` to `to`, interpolated over frames-2
// intermediate frames. The total sequence consumes `frames` ticks. Minimum
// frames is 2 (start + end).
func (q *PoseQueue) PushPath(from, to Pose, frames int) {
	if frames < 2 {
		frames = 2
	}
	q.Push(from)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		q.Push(from.Lerp(to, t))
	}
	q.Push(to)
}

// Pending returns how many poses are still queued.
func (q *PoseQueue) Pending() int { return len(q.queue) }

// Last returns the most recently produced pose.
func (q *PoseQueue) Last() Pose { return q.last }

// Pose pops the next queued pose, or repeats the last one.
func (q *PoseQueue) Pose() Pose {
	if len(q.queue) == 0 {
		return q.last
	}
	p := q.queue[0]
	copy(q.queue, q.queue[1:])
	q.queue = q.queue[:len(q.queue)-1]
	q.last = p
	return p
}
