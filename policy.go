package reach

// SelectPolicy decides when a hovering interactor selects and when a
// selecting one lets go.
type SelectPolicy interface {
	ShouldSelect(iv *Interactor, ia *Interactable) bool
	ShouldUnselect(iv *Interactor, ia *Interactable) bool
}

// ButtonPolicy selects while a button is held. The button is pressed when
// Press was called (and not yet Release) or when Input reports true.
type ButtonPolicy struct {
	Input func() bool

	pressed bool
}

// Press holds the button down.
func (p *ButtonPolicy) Press() { p.pressed = true }

// Release lets the button go.
func (p *ButtonPolicy) Release() { p.pressed = false }

// Pressed reports whether the button is held.
func (p *ButtonPolicy) Pressed() bool {
	return p.pressed || (p.Input != nil && p.Input())
}

func (p *ButtonPolicy) ShouldSelect(*Interactor, *Interactable) bool   { return p.Pressed() }
func (p *ButtonPolicy) ShouldUnselect(*Interactor, *Interactable) bool { return !p.Pressed() }

// ExclusivePolicy allows a selection only while nobody else selects the
// target, and lets go if a second selector slipped in anyway (for example
// through ForceSelect). Inner, if set, must also agree.
type ExclusivePolicy struct {
	Inner SelectPolicy
}

func (p ExclusivePolicy) ShouldSelect(iv *Interactor, ia *Interactable) bool {
	if ia.SelectingCount() != 0 {
		return false
	}
	return p.Inner == nil || p.Inner.ShouldSelect(iv, ia)
}

func (p ExclusivePolicy) ShouldUnselect(iv *Interactor, ia *Interactable) bool {
	if ia.SelectingCount() > 1 {
		return true
	}
	return p.Inner != nil && p.Inner.ShouldUnselect(iv, ia)
}

// SnapPolicy drives a snap interactor attached to a carried element: it
// snaps into an unclaimed target as soon as nobody holds the element, and
// releases when the element is grabbed again.
type SnapPolicy struct {
	Element PointCounter
}

func (p SnapPolicy) held() bool {
	return p.Element != nil && p.Element.SelectingPointsCount() > 0
}

func (p SnapPolicy) ShouldSelect(_ *Interactor, ia *Interactable) bool {
	return !p.held() && ia.SelectingCount() == 0
}

func (p SnapPolicy) ShouldUnselect(_ *Interactor, ia *Interactable) bool {
	return p.held() || ia.SelectingCount() > 1
}

// PolicyFuncs adapts two functions to SelectPolicy. Nil funcs return false.
type PolicyFuncs struct {
	Select   func(iv *Interactor, ia *Interactable) bool
	Unselect func(iv *Interactor, ia *Interactable) bool
}

func (p PolicyFuncs) ShouldSelect(iv *Interactor, ia *Interactable) bool {
	return p.Select != nil && p.Select(iv, ia)
}

func (p PolicyFuncs) ShouldUnselect(iv *Interactor, ia *Interactable) bool {
	return p.Unselect != nil && p.Unselect(iv, ia)
}
