package reach

// Identifier names one Interactor for its whole lifetime. Identifiers are
// allocated by the owning World and never reused inside it.
type Identifier uint64

// Kind names a family of interactables. Every kind has its own Registry, and
// an interactor only searches the registry of its own kind.
type Kind string

// InteractorState is the lifecycle state of an Interactor.
type InteractorState uint8

const (
	StateDisabled InteractorState = iota // not ticking; no candidate search
	StateNormal                          // enabled, not engaged with anything
	StateHover                           // bound to a candidate interactable
	StateSelect                          // selecting the bound interactable
)

// String returns the state name.
func (s InteractorState) String() string {
	switch s {
	case StateDisabled:
		return "Disabled"
	case StateNormal:
		return "Normal"
	case StateHover:
		return "Hover"
	case StateSelect:
		return "Select"
	default:
		return "Unknown"
	}
}

// legalTransition reports whether from -> to is an edge of the interactor
// state machine. Any state may be disabled; nothing skips Hover on the way
// into Select.
func legalTransition(from, to InteractorState) bool {
	if to == StateDisabled {
		return from != StateDisabled
	}
	switch from {
	case StateDisabled:
		return to == StateNormal
	case StateNormal:
		return to == StateHover
	case StateHover:
		return to == StateNormal || to == StateSelect
	case StateSelect:
		return to == StateHover || to == StateNormal
	}
	return false
}

// EventType identifies a kind of pointer event.
type EventType uint8

const (
	EventHover    EventType = iota // interactor started hovering an interactable
	EventUnhover                   // interactor stopped hovering
	EventSelect                    // interactor started selecting
	EventUnselect                  // interactor stopped selecting
	EventMove                      // fires every tick while selecting
	EventCancel                    // interactable dropped the interactor unprompted
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventHover:
		return "Hover"
	case EventUnhover:
		return "Unhover"
	case EventSelect:
		return "Select"
	case EventUnselect:
		return "Unselect"
	case EventMove:
		return "Move"
	case EventCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// PointerEvent is a transient message describing one interactor/interactable
// state change. Events are values; handlers must not retain Data beyond the
// call unless they own it.
type PointerEvent struct {
	Type       EventType
	Identifier Identifier
	Pose       Pose
	Data       any
}

// StateChange is passed to interactor state callbacks.
type StateChange struct {
	Previous InteractorState
	Next     InteractorState
}

// PoseSource supplies the actor pose once per tick (a tracked hand, a
// controller, a mouse cursor projected into the world).
type PoseSource interface {
	Pose() Pose
}

// PoseSourceFunc adapts a plain function to PoseSource.
type PoseSourceFunc func() Pose

// Pose calls f.
func (f PoseSourceFunc) Pose() Pose { return f() }

// PointCounter exposes how many pointers are engaged with something. An
// Interactable implements it; scorers and policies use it as the engagement
// signal of the element an interactor carries.
type PointCounter interface {
	PointsCount() int
	SelectingPointsCount() int
}
