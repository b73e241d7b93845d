package face

// Suspender is gated by host visibility.
type Suspender interface {
	SetSuspend(suspend bool)
}

// Reason is one cause for a face not being seen.
type Reason uint8

const (
	// ReasonHidden means the main window is hidden or iconified.
	ReasonHidden Reason = 1 << iota
	// ReasonUnselected means another tab is in front.
	ReasonUnselected
	// ReasonAway means the user has been idle.
	ReasonAway
)

// Visibility combines suspension reasons for one face. The face is suspended
// while any reason holds.
type Visibility struct {
	target  Suspender
	reasons Reason
}

// NewVisibility tracks reasons for target.
func NewVisibility(target Suspender) *Visibility {
	return &Visibility{target: target}
}

// Set marks a reason as holding or cleared.
func (visibility *Visibility) Set(reason Reason, holds bool) {
	before := visibility.Suspended()
	if holds {
		visibility.reasons |= reason
	} else {
		visibility.reasons &^= reason
	}
	if after := visibility.Suspended(); after != before && visibility.target != nil {
		visibility.target.SetSuspend(after)
	}
}

// Retarget moves the tracked reasons onto a rebuilt face. A fresh attach is
// never suspended, so the current reasons are applied again.
func (visibility *Visibility) Retarget(target Suspender) {
	visibility.target = target
	if target != nil && visibility.Suspended() {
		target.SetSuspend(true)
	}
}

// Suspended reports whether any reason holds.
func (visibility *Visibility) Suspended() bool {
	return visibility.reasons != 0
}

// Holds reports whether reason is set.
func (visibility *Visibility) Holds(reason Reason) bool {
	return visibility.reasons&reason != 0
}
