package eventform

import (
	"context"
	"fmt"
	"log/slog"
)

// DeleteState is a step of the cascading event deletion.
type DeleteState int

const (
	DeleteIdle DeleteState = iota
	DeletingDependents
	DeletingParent
	DeleteDone
	DeleteFailed
)

func (s DeleteState) String() string {
	switch s {
	case DeleteIdle:
		return "idle"
	case DeletingDependents:
		return "deleting_dependents"
	case DeletingParent:
		return "deleting_parent"
	case DeleteDone:
		return "done"
	case DeleteFailed:
		return "failed"
	default:
		return fmt.Sprintf("DeleteState(%d)", int(s))
	}
}

// DependentsDeleter removes the photos owned by an event.
type DependentsDeleter interface {
	DeleteByEventID(ctx context.Context, eventID int64) error
}

// ParentDeleter removes an event row.
type ParentDeleter interface {
	DeleteByID(ctx context.Context, id int64) error
}

// DeletionError reports which step of a deletion failed. Partial is set when
// the photos are already gone but the event row is still there; that state
// is reported, never retried automatically.
type DeletionError struct {
	EventID int64
	Stage   DeleteState
	Partial bool
	Err     error
}

func (e *DeletionError) Error() string {
	if e.Partial {
		return fmt.Sprintf("photos of event %d deleted but the event was not: %v", e.EventID, e.Err)
	}
	return fmt.Sprintf("delete event %d: %s: %v", e.EventID, e.Stage, e.Err)
}

func (e *DeletionError) Unwrap() error { return e.Err }

// Deleter removes an event together with its photos, photos first.
type Deleter struct {
	photos   DependentsDeleter
	events   ParentDeleter
	logger   *slog.Logger
	listing  *Listing
	observer func(eventID int64, s DeleteState)
}

// DeleterOption configures a Deleter.
type DeleterOption func(*Deleter)

// WithListing removes deleted events from l.
func WithListing(l *Listing) DeleterOption {
	return func(d *Deleter) { d.listing = l }
}

// WithTransitions registers a callback for every state change.
func WithTransitions(f func(eventID int64, s DeleteState)) DeleterOption {
	return func(d *Deleter) { d.observer = f }
}

func NewDeleter(photos DependentsDeleter, events ParentDeleter, logger *slog.Logger, opts ...DeleterOption) *Deleter {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Deleter{photos: photos, events: events, logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delete runs idle -> deleting_dependents -> deleting_parent -> done. If the
// photos cannot be deleted the event row is left untouched. Failures are
// returned as *DeletionError.
func (d *Deleter) Delete(ctx context.Context, eventID int64) error {
	d.transition(eventID, DeleteIdle)

	d.transition(eventID, DeletingDependents)
	if err := d.photos.DeleteByEventID(ctx, eventID); err != nil {
		d.transition(eventID, DeleteFailed)
		d.logger.ErrorContext(ctx, "delete event photos failed", "event_id", eventID, "err", err)
		return &DeletionError{EventID: eventID, Stage: DeletingDependents, Err: err}
	}

	d.transition(eventID, DeletingParent)
	if err := d.events.DeleteByID(ctx, eventID); err != nil {
		d.transition(eventID, DeleteFailed)
		d.logger.ErrorContext(ctx, "delete event failed after its photos were removed", "event_id", eventID, "err", err)
		return &DeletionError{EventID: eventID, Stage: DeletingParent, Partial: true, Err: err}
	}

	if d.listing != nil {
		d.listing.Remove(eventID)
	}
	d.transition(eventID, DeleteDone)
	d.logger.InfoContext(ctx, "event deleted", "event_id", eventID)
	return nil
}

func (d *Deleter) transition(eventID int64, s DeleteState) {
	if d.observer != nil {
		d.observer(eventID, s)
	}
}
