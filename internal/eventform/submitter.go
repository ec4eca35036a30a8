package eventform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"photobooth/internal/domain"
)

// User-facing messages for failed submissions.
const (
	MsgTitleTaken   = "Event title already taken, please enter a new event title."
	MsgSlugTaken    = "Event slug already taken, please enter a new event slug."
	MsgSaveFailed   = "There was an error saving your event, please reload the page and try again!"
	MsgInvalidDraft = "Please correct the highlighted fields."
	MsgNotReady     = "The event cannot be created yet, please complete the form."
)

// ErrorKind classifies a SubmitError.
type ErrorKind int

const (
	// KindValidation is a field-level problem fixed by re-entering input.
	KindValidation ErrorKind = iota + 1
	// KindConflict is a duplicate title or slug detected by the store.
	KindConflict
	// KindTransient is any other store failure; resubmitting may succeed.
	KindTransient
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// SubmitError is the translated outcome of a failed submission.
type SubmitError struct {
	Kind    ErrorKind
	Fields  FieldErrors
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// EventInserter is the store operation the submitter depends on.
type EventInserter interface {
	Insert(ctx context.Context, e *domain.Event) error
}

// Submitter turns a draft into a stored event.
type Submitter struct {
	events EventInserter
	logger *slog.Logger
}

func NewSubmitter(events EventInserter, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{events: events, logger: logger}
}

// Submit validates d again, composes its timestamp and inserts the event
// in a single call. Every failure comes back as a *SubmitError; d is never
// modified.
func (s *Submitter) Submit(ctx context.Context, adminID int64, d domain.EventDraft) (*domain.Event, error) {
	if fe := Validate(d); len(fe) > 0 {
		return nil, &SubmitError{Kind: KindValidation, Fields: fe, Message: MsgInvalidDraft}
	}

	stamp, err := ComposeTimestamp(d.Date, d.Hour, d.Minute, Meridiem(d.Meridiem), d.Timezone)
	if err != nil {
		return nil, &SubmitError{Kind: KindValidation, Message: MsgInvalidDraft, Err: err}
	}
	at, err := ParseTimestamp(stamp)
	if err != nil {
		return nil, &SubmitError{Kind: KindValidation, Message: MsgInvalidDraft, Err: err}
	}

	event := domain.NewEvent(NormalizeTitle(d.Title), NormalizeSlug(d.Slug), adminID, stamp, at)
	if err := s.events.Insert(ctx, event); err != nil {
		return nil, s.translate(ctx, err)
	}
	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "slug", event.Slug, "admin_id", adminID)
	return event, nil
}

func (s *Submitter) translate(ctx context.Context, err error) *SubmitError {
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		s.logger.ErrorContext(ctx, "event insert failed", "err", err)
		return &SubmitError{Kind: KindTransient, Message: MsgSaveFailed, Err: err}
	}

	se := &SubmitError{Kind: KindConflict, Fields: FieldErrors{}, Err: err}
	if conflict.Has(domain.ConflictTitle) {
		se.Fields[FieldTitle] = MsgTitleTaken
		se.Message = MsgTitleTaken
	}
	if conflict.Has(domain.ConflictSlug) {
		se.Fields[FieldSlug] = MsgSlugTaken
		if se.Message == "" {
			se.Message = MsgSlugTaken
		}
	}
	if se.Message == "" {
		se.Message = MsgSaveFailed
	}
	s.logger.WarnContext(ctx, "event insert conflict", "err", err)
	return se
}
