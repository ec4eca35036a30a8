package eventform

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"photobooth/internal/domain"
)

// FormState is a snapshot of a creation form for rendering.
type FormState struct {
	Draft       domain.EventDraft
	Dirty       bool
	FieldErrors FieldErrors
	Probe       ProbeState
	CanSubmit   bool
	Submitting  bool
	// Message is the form-level error shown above the fields.
	Message string
}

// Form is one admin's event creation session. It owns the draft, the
// uniqueness checker for its title and the submission gate, and it
// re-evaluates the gate on every field change and checker transition.
type Form struct {
	adminID   int64
	submitter *Submitter
	checker   *UniquenessChecker
	logger    *slog.Logger
	onChange  func(FormState)

	mu          sync.Mutex
	initial     domain.EventDraft
	draft       domain.EventDraft
	touched     map[string]bool
	storeErrors FieldErrors
	message     string
	submitting  bool
}

// FormOption configures a Form.
type FormOption func(*formConfig)

type formConfig struct {
	checkerOpts []CheckerOption
	onChange    func(FormState)
	logger      *slog.Logger
	now         func() time.Time
}

// WithCheckerOptions passes options through to the form's UniquenessChecker.
func WithCheckerOptions(opts ...CheckerOption) FormOption {
	return func(c *formConfig) { c.checkerOpts = append(c.checkerOpts, opts...) }
}

// WithOnChange registers a callback that receives a fresh FormState after
// every change.
func WithOnChange(f func(FormState)) FormOption {
	return func(c *formConfig) { c.onChange = f }
}

func WithFormLogger(l *slog.Logger) FormOption {
	return func(c *formConfig) { c.logger = l }
}

// WithClock sets the clock used for the default time fields.
func WithClock(now func() time.Time) FormOption {
	return func(c *formConfig) { c.now = now }
}

// NewForm starts a creation session for adminID. Probes use ctx, so
// cancelling it stops in-flight checks from reaching the store.
func NewForm(ctx context.Context, adminID int64, prober TitleProber, inserter EventInserter, opts ...FormOption) *Form {
	cfg := formConfig{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	initial := DefaultDraft(cfg.now())
	f := &Form{
		adminID:     adminID,
		submitter:   NewSubmitter(inserter, cfg.logger),
		logger:      cfg.logger,
		onChange:    cfg.onChange,
		initial:     initial,
		draft:       initial,
		touched:     map[string]bool{},
		storeErrors: FieldErrors{},
	}
	checkerOpts := append([]CheckerOption{WithCheckerLogger(cfg.logger)}, cfg.checkerOpts...)
	checkerOpts = append(checkerOpts, WithObserver(f.emit))
	f.checker = NewUniquenessChecker(ctx, prober, checkerOpts...)
	return f
}

// SetTitle updates the title, derives the slug from it and schedules a
// uniqueness probe.
func (f *Form) SetTitle(title string) {
	f.mu.Lock()
	f.draft.Title = title
	f.draft.Slug = DeriveSlug(title)
	f.touch(FieldTitle, FieldSlug)
	f.message = ""
	f.mu.Unlock()

	// The checker notifies on Update, which emits the new state.
	f.checker.Update(title)
}

// SetSlug overrides the derived slug.
func (f *Form) SetSlug(slug string) {
	f.change(func(d *domain.EventDraft) { d.Slug = slug }, FieldSlug)
}

func (f *Form) SetDate(date time.Time) {
	f.change(func(d *domain.EventDraft) { d.Date = date }, FieldDate)
}

func (f *Form) SetTime(hour, minute string, meridiem Meridiem) {
	f.change(func(d *domain.EventDraft) {
		d.Hour = hour
		d.Minute = minute
		d.Meridiem = string(meridiem)
	}, FieldHour, FieldMinute, FieldMeridiem)
}

func (f *Form) SetTimezone(offset string) {
	f.change(func(d *domain.EventDraft) { d.Timezone = offset }, FieldTimezone)
}

// State returns the current snapshot.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

// Submit creates the event if the gate allows it. A conflict reported by
// the store marks the offending fields, which keeps the gate closed until
// they are edited.
func (f *Form) Submit(ctx context.Context) (*domain.Event, error) {
	f.mu.Lock()
	st := f.snapshot()
	if !st.CanSubmit {
		f.mu.Unlock()
		return nil, &SubmitError{Kind: KindValidation, Fields: st.FieldErrors, Message: MsgNotReady}
	}
	f.submitting = true
	draft := f.draft
	f.mu.Unlock()
	f.emit()

	event, err := f.submitter.Submit(ctx, f.adminID, draft)

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		var se *SubmitError
		if errors.As(err, &se) {
			f.message = se.Message
			for field, msg := range se.Fields {
				f.storeErrors[field] = msg
			}
		}
	}
	f.mu.Unlock()
	f.emit()
	return event, err
}

// Close stops the uniqueness checker.
func (f *Form) Close() {
	f.checker.Stop()
}

func (f *Form) change(apply func(d *domain.EventDraft), fields ...string) {
	f.mu.Lock()
	apply(&f.draft)
	f.touch(fields...)
	f.mu.Unlock()
	f.emit()
}

// touch must be called with f.mu held.
func (f *Form) touch(fields ...string) {
	for _, field := range fields {
		f.touched[field] = true
		delete(f.storeErrors, field)
	}
}

// snapshot must be called with f.mu held.
func (f *Form) snapshot() FormState {
	fe := FieldErrors{}
	for field, msg := range Validate(f.draft) {
		if f.touched[field] {
			fe[field] = msg
		}
	}
	for field, msg := range f.storeErrors {
		fe[field] = msg
	}
	probe := f.checker.State()
	dirty := f.draft != f.initial
	st := FormState{
		Draft:       f.draft,
		Dirty:       dirty,
		FieldErrors: fe,
		Probe:       probe,
		Submitting:  f.submitting,
		Message:     f.message,
	}
	st.CanSubmit = !f.submitting && CanSubmit(GateInput{
		Draft:       f.draft,
		FieldErrors: fe,
		Dirty:       dirty,
		Probe:       probe,
	})
	return st
}

func (f *Form) emit() {
	if f.onChange == nil {
		return
	}
	f.onChange(f.State())
}
