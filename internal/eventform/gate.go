package eventform

import "photobooth/internal/domain"

// GateInput is everything the submission gate looks at.
type GateInput struct {
	Draft       domain.EventDraft
	FieldErrors FieldErrors
	Dirty       bool
	Probe       ProbeState
}

// CanSubmit reports whether the create control may be enabled: the draft is
// complete, has no field errors, was edited at least once, and a finished
// probe for the current title found no existing event.
func CanSubmit(in GateInput) bool {
	if !Complete(in.Draft) || len(in.FieldErrors) > 0 || !in.Dirty {
		return false
	}
	p := in.Probe
	if p.Title != in.Draft.Title {
		return false
	}
	return p.Determined && !p.Exists && !p.Pending && !p.Checking
}
