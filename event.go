package reach

// --- Handler registry ---

type handler[T any] struct {
	id      uint32
	fn      func(T)
	removed bool
}

// handlerList is an ordered observer list. Dispatch iterates a snapshot, so
// handlers added mid-dispatch wait for the next event, and handlers removed
// mid-dispatch are skipped from the moment of removal.
type handlerList[T any] struct {
	entries []*handler[T]
	nextID  uint32
}

func (l *handlerList[T]) add(fn func(T)) CallbackHandle {
	l.nextID++
	l.entries = append(l.entries, &handler[T]{id: l.nextID, fn: fn})
	return CallbackHandle{id: l.nextID, reg: l}
}

func (l *handlerList[T]) removeHandler(id uint32) bool {
	for i, h := range l.entries {
		if h.id == id {
			h.removed = true
			copy(l.entries[i:], l.entries[i+1:])
			l.entries[len(l.entries)-1] = nil
			l.entries = l.entries[:len(l.entries)-1]
			return true
		}
	}
	return false
}

func (l *handlerList[T]) dispatch(v T) {
	if len(l.entries) == 0 {
		return
	}
	snap := make([]*handler[T], len(l.entries))
	copy(snap, l.entries)
	for _, h := range snap {
		if h.removed {
			continue
		}
		h.fn(v)
	}
}

func (l *handlerList[T]) len() int {
	return len(l.entries)
}

func (l *handlerList[T]) clear() {
	for _, h := range l.entries {
		h.removed = true
	}
	l.entries = nil
}

type handlerRemover interface {
	removeHandler(id uint32) bool
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg handlerRemover
}

// Remove unregisters this callback so it no longer fires. Removing during a
// dispatch takes effect immediately for the rest of that dispatch. Returns
// false if the callback was already removed.
func (h CallbackHandle) Remove() bool {
	if h.reg == nil {
		return false
	}
	return h.reg.removeHandler(h.id)
}

// --- ECS bridge ---

// EventStore is the interface for optional ECS integration. When set on a
// World, every delivered pointer event is forwarded to it after the
// interactable's own subscribers have run.
type EventStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries a pointer event plus the identity of the
// interactable it was published on.
type InteractionEvent struct {
	PointerEvent
	InteractableID   uint64
	InteractableName string
	Kind             Kind
}

// --- Dispatch ---

// Subscribe registers fn on ia's event stream.
func (w *World) Subscribe(ia *Interactable, fn func(PointerEvent)) CallbackHandle {
	return ia.Subscribe(fn)
}

// Unsubscribe removes a handler previously returned by Subscribe.
func (w *World) Unsubscribe(ia *Interactable, h CallbackHandle) bool {
	return ia.Unsubscribe(h)
}

// Publish delivers evt to ia synchronously. The interactable's hover and
// select sets are updated first, then every subscriber registered at the time
// of the call runs in subscription order, then the EventStore sees the event.
//
// Events that would break the selecting-implies-hovering invariant, or that
// refer to an engagement ia does not have, are rejected and logged; Publish
// returns false for them and nothing is delivered.
func (w *World) Publish(ia *Interactable, evt PointerEvent) bool {
	if ia == nil {
		return false
	}
	if ia.world != w {
		w.warnf("publish %s on interactable %q from another world", evt.Type, ia.Name)
		return false
	}

	var cancelled *Interactor
	switch evt.Type {
	case EventHover:
		iv := w.interactorByID(evt.Identifier)
		if !ia.addHover(evt.Identifier, iv) {
			w.warnf("hover by %d on %q rejected: already hovering", evt.Identifier, ia.Name)
			return false
		}
	case EventUnhover:
		if ia.isSelecting(evt.Identifier) {
			w.warnf("unhover by %d on %q while still selecting", evt.Identifier, ia.Name)
			return false
		}
		if !ia.removeHover(evt.Identifier) {
			w.warnf("unhover by %d on %q rejected: not hovering", evt.Identifier, ia.Name)
			return false
		}
	case EventSelect:
		if !ia.isHovering(evt.Identifier) {
			w.warnf("select by %d on %q rejected: never hovered", evt.Identifier, ia.Name)
			w.correctStraySelect(ia, evt.Identifier)
			return false
		}
		if !ia.addSelect(evt.Identifier) {
			w.warnf("select by %d on %q rejected: already selecting", evt.Identifier, ia.Name)
			return false
		}
	case EventUnselect:
		if !ia.removeSelect(evt.Identifier) {
			w.warnf("unselect by %d on %q rejected: not selecting", evt.Identifier, ia.Name)
			return false
		}
	case EventMove:
		if !ia.isSelecting(evt.Identifier) {
			w.debugf("move by %d on %q dropped: not selecting", evt.Identifier, ia.Name)
			return false
		}
	case EventCancel:
		cancelled = ia.engaged[evt.Identifier]
		if cancelled == nil && !ia.isHovering(evt.Identifier) {
			w.debugf("cancel by %d on %q dropped: not engaged", evt.Identifier, ia.Name)
			return false
		}
		ia.drop(evt.Identifier)
	default:
		w.warnf("publish: unknown event type %d", evt.Type)
		return false
	}

	ia.handlers.dispatch(evt)

	if cancelled != nil {
		cancelled.handleCancel(ia)
	}

	if w.store != nil {
		w.store.EmitEvent(InteractionEvent{
			PointerEvent:     evt,
			InteractableID:   ia.ID,
			InteractableName: ia.Name,
			Kind:             ia.Kind,
		})
	}
	return true
}

// correctStraySelect cancels a live interactor that believes it is selecting
// ia without ever having hovered it.
func (w *World) correctStraySelect(ia *Interactable, id Identifier) {
	iv := w.interactorByID(id)
	if iv == nil || iv.selected != ia {
		return
	}
	iv.handleCancel(ia)
}
