package reach

// Unlimited disables an interactable's hover or select cap.
const Unlimited = -1

// Interactable is the target side of an interaction. It tracks which
// interactors hover and select it and exposes an ordered event stream.
//
// Interactables are created through World.NewInteractable and start disabled;
// call Enable to make them visible to candidate search.
type Interactable struct {
	// Identity
	ID   uint64
	Name string
	Kind Kind

	// Geometry scored by candidate search.
	Volumes []Volume

	// Caps; Unlimited by default.
	MaxInteractors          int
	MaxSelectingInteractors int

	// Filters reject interactors that may not hover this interactable.
	Filters []func(*Interactor) bool

	// Movement creates the movement an interactor runs while selecting.
	// Nil means DirectMovement.
	Movement MovementFactory

	// Metadata
	UserData any

	pose     Pose
	world    *World
	enabled  bool
	disposed bool

	hovering  []Identifier
	selecting []Identifier
	engaged   map[Identifier]*Interactor
	handlers  handlerList[PointerEvent]
}

// NewInteractable creates a disabled interactable of the given kind.
func (w *World) NewInteractable(kind Kind, name string) *Interactable {
	w.nextInteractableID++
	return &Interactable{
		ID:                      w.nextInteractableID,
		Name:                    name,
		Kind:                    kind,
		MaxInteractors:          Unlimited,
		MaxSelectingInteractors: Unlimited,
		pose:                    PoseIdentity,
		world:                   w,
		engaged:                 make(map[Identifier]*Interactor),
	}
}

// World returns the owning world.
func (ia *Interactable) World() *World { return ia.world }

// Pose returns the target pose offered to selecting interactors.
func (ia *Interactable) Pose() Pose { return ia.pose }

// SetPose moves the target pose. Selecting interactors pick it up on their
// next tick.
func (ia *Interactable) SetPose(p Pose) { ia.pose = p }

// Enabled reports whether ia is registered for candidate search.
func (ia *Interactable) Enabled() bool { return ia.enabled }

// IsDisposed reports whether ia has been disposed.
func (ia *Interactable) IsDisposed() bool { return ia.disposed }

// Enable registers ia with its kind's registry.
func (ia *Interactable) Enable() error {
	if ia.disposed {
		return ErrDisposed
	}
	if ia.enabled {
		return nil
	}
	ia.enabled = true
	ia.world.Registry(ia.Kind).Register(ia)
	ia.world.debugf("interactable %q enabled", ia.Name)
	return nil
}

// Disable cancels every engaged interactor, one Cancel each, and then
// deregisters ia. When Disable returns no interactor hovers or selects ia.
func (ia *Interactable) Disable() {
	if !ia.enabled {
		return
	}
	ia.cancelAll()
	ia.enabled = false
	ia.world.Registry(ia.Kind).Deregister(ia)
	ia.world.debugf("interactable %q disabled", ia.Name)
}

// Dispose disables ia, drops its subscribers, and makes it unusable.
func (ia *Interactable) Dispose() {
	if ia.disposed {
		return
	}
	ia.Disable()
	ia.disposed = true
	ia.handlers.clear()
	ia.Filters = nil
	ia.Movement = nil
	ia.UserData = nil
}

// Cancel drops a single engaged interactor with a Cancel event.
func (ia *Interactable) Cancel(iv *Interactor) bool {
	if iv == nil || !ia.isHovering(iv.id) {
		return false
	}
	return ia.world.Publish(ia, PointerEvent{Type: EventCancel, Identifier: iv.id, Pose: iv.pose})
}

func (ia *Interactable) cancelAll() {
	ids := make([]Identifier, len(ia.hovering))
	copy(ids, ia.hovering)
	for _, id := range ids {
		if !ia.isHovering(id) {
			continue
		}
		var pose Pose
		if iv := ia.engaged[id]; iv != nil {
			pose = iv.pose
		}
		ia.world.Publish(ia, PointerEvent{Type: EventCancel, Identifier: id, Pose: pose})
	}
}

// --- Subscription ---

// Subscribe registers fn to receive every pointer event published on ia.
func (ia *Interactable) Subscribe(fn func(PointerEvent)) CallbackHandle {
	return ia.handlers.add(fn)
}

// Unsubscribe removes a handler returned by Subscribe.
func (ia *Interactable) Unsubscribe(h CallbackHandle) bool {
	if h.reg != &ia.handlers {
		return false
	}
	return h.Remove()
}

// SubscriberCount returns the number of registered handlers.
func (ia *Interactable) SubscriberCount() int { return ia.handlers.len() }

// --- Engagement sets ---

// Hovering returns the identifiers currently hovering ia, in hover order.
func (ia *Interactable) Hovering() []Identifier {
	out := make([]Identifier, len(ia.hovering))
	copy(out, ia.hovering)
	return out
}

// Selecting returns the identifiers currently selecting ia, in select order.
func (ia *Interactable) Selecting() []Identifier {
	out := make([]Identifier, len(ia.selecting))
	copy(out, ia.selecting)
	return out
}

// HoverCount returns the number of hovering interactors.
func (ia *Interactable) HoverCount() int { return len(ia.hovering) }

// SelectingCount returns the number of selecting interactors.
func (ia *Interactable) SelectingCount() int { return len(ia.selecting) }

// PointsCount implements PointCounter.
func (ia *Interactable) PointsCount() int { return len(ia.hovering) }

// SelectingPointsCount implements PointCounter.
func (ia *Interactable) SelectingPointsCount() int { return len(ia.selecting) }

// ObserverCount returns how many interactors are auto-subscribed to ia for
// Cancel delivery.
func (ia *Interactable) ObserverCount() int { return len(ia.engaged) }

// CanBeHoveredBy reports whether iv may hover ia.
func (ia *Interactable) CanBeHoveredBy(iv *Interactor) bool {
	if iv == nil || !ia.enabled || ia.disposed || iv.world != ia.world || iv.kind != ia.Kind {
		return false
	}
	if ia.isHovering(iv.id) {
		return true
	}
	if ia.MaxInteractors >= 0 && len(ia.hovering) >= ia.MaxInteractors {
		return false
	}
	for _, f := range ia.Filters {
		if !f(iv) {
			return false
		}
	}
	return true
}

// CanBeSelectedBy reports whether iv, already hovering ia, may select it.
func (ia *Interactable) CanBeSelectedBy(iv *Interactor) bool {
	if iv == nil || !ia.isHovering(iv.id) {
		return false
	}
	if ia.isSelecting(iv.id) {
		return true
	}
	return ia.MaxSelectingInteractors < 0 || len(ia.selecting) < ia.MaxSelectingInteractors
}

// GenerateMovement creates the movement iv runs while selecting ia.
func (ia *Interactable) GenerateMovement(iv *Interactor) Movement {
	if ia.Movement != nil {
		if m := ia.Movement(iv); m != nil {
			return m
		}
	}
	return &DirectMovement{}
}

func (ia *Interactable) isHovering(id Identifier) bool {
	return indexOf(ia.hovering, id) >= 0
}

func (ia *Interactable) isSelecting(id Identifier) bool {
	return indexOf(ia.selecting, id) >= 0
}

// addHover records id as hovering and auto-subscribes iv for Cancel delivery.
func (ia *Interactable) addHover(id Identifier, iv *Interactor) bool {
	if ia.isHovering(id) {
		return false
	}
	ia.hovering = append(ia.hovering, id)
	if iv != nil {
		ia.engaged[id] = iv
	}
	return true
}

func (ia *Interactable) removeHover(id Identifier) bool {
	var ok bool
	ia.hovering, ok = removeID(ia.hovering, id)
	delete(ia.engaged, id)
	return ok
}

func (ia *Interactable) addSelect(id Identifier) bool {
	if ia.isSelecting(id) {
		return false
	}
	ia.selecting = append(ia.selecting, id)
	return true
}

func (ia *Interactable) removeSelect(id Identifier) bool {
	var ok bool
	ia.selecting, ok = removeID(ia.selecting, id)
	return ok
}

func (ia *Interactable) drop(id Identifier) {
	ia.selecting, _ = removeID(ia.selecting, id)
	ia.hovering, _ = removeID(ia.hovering, id)
	delete(ia.engaged, id)
}

func indexOf(s []Identifier, id Identifier) int {
	for i, v := range s {
		if v == id {
			return i
		}
	}
	return -1
}

func removeID(s []Identifier, id Identifier) ([]Identifier, bool) {
	i := indexOf(s, id)
	if i < 0 {
		return s, false
	}
	copy(s[i:], s[i+1:])
	return s[:len(s)-1], true
}
