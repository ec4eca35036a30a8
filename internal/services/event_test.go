package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"photobooth/internal/domain"
	"photobooth/internal/eventform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventRepo is an in-memory EventRepository for tests. It enforces
// title and slug uniqueness like the real table.
type fakeEventRepo struct {
	byID      map[int64]*domain.Event
	nextID    int64
	existsErr error
	insertErr error // if set, Insert returns this error
	deleteErr error
	calls     []string
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[int64]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) ExistsByTitle(ctx context.Context, normalizedTitle string) (bool, error) {
	f.calls = append(f.calls, "exists:"+normalizedTitle)
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, e := range f.byID {
		if e.Title == normalizedTitle {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEventRepo) Insert(ctx context.Context, e *domain.Event) error {
	f.calls = append(f.calls, "insert")
	if f.insertErr != nil {
		return f.insertErr
	}
	conflict := &domain.ConflictError{}
	for _, existing := range f.byID {
		if existing.Title == e.Title {
			conflict.Columns = append(conflict.Columns, domain.ConflictTitle)
		}
		if existing.Slug == e.Slug {
			conflict.Columns = append(conflict.Columns, domain.ConflictSlug)
		}
	}
	if len(conflict.Columns) > 0 {
		return conflict
	}
	e.ID = f.nextID
	f.nextID++
	e.CreatedAt = time.Now()
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, e := range f.byID {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	// Sort by EventAt DESC to match repo
	sort.Slice(out, func(i, j int) bool { return out[i].EventAt.After(out[j].EventAt) })
	return out, nil
}

func (f *fakeEventRepo) DeleteByID(ctx context.Context, id int64) error {
	f.calls = append(f.calls, "delete-event")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakePhotoRepo is an in-memory PhotoRepository sharing the event repo's call log.
type fakePhotoRepo struct {
	events    *fakeEventRepo
	byEvent   map[int64][]*domain.Photo
	deleteErr error
}

func (f *fakePhotoRepo) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Photo, error) {
	return f.byEvent[eventID], nil
}

func (f *fakePhotoRepo) DeleteByEventID(ctx context.Context, eventID int64) error {
	f.events.calls = append(f.events.calls, "delete-photos")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byEvent, eventID)
	return nil
}

type fakeAdminRepo struct {
	ids map[string]int64
	err error
}

func (f *fakeAdminRepo) GetIDByEmail(ctx context.Context, email string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if id, ok := f.ids[email]; ok {
		return id, nil
	}
	return 0, domain.ErrNotFound
}

type serviceFixture struct {
	events *fakeEventRepo
	photos *fakePhotoRepo
	admins *fakeAdminRepo
	svc    domain.EventService
}

func newServiceFixture() *serviceFixture {
	events := newFakeEventRepo()
	photos := &fakePhotoRepo{events: events, byEvent: map[int64][]*domain.Photo{}}
	admins := &fakeAdminRepo{ids: map[string]int64{"organizer@example.com": 3}}
	return &serviceFixture{
		events: events,
		photos: photos,
		admins: admins,
		svc:    NewEventService(events, photos, admins, testLogger, 5*time.Second),
	}
}

func validDraft(title string) domain.EventDraft {
	return domain.EventDraft{
		Title:    title,
		Slug:     eventform.DeriveSlug(title),
		Date:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Hour:     "7",
		Minute:   "05",
		Meridiem: "PM",
		Timezone: "-05:00",
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newServiceFixture()
		event, err := f.svc.CreateEvent(ctx, 3, validDraft("Happy Birthday"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), event.ID)
		assert.Equal(t, "happy birthday", event.Title)
		assert.Equal(t, "happy-birthday", event.Slug)
		assert.Equal(t, "Fri Mar 1 2024 19:05:00 -05:00", event.EventDate)
		assert.Equal(t, int64(3), event.AdminID)
	})

	t.Run("no admin", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.svc.CreateEvent(ctx, 0, validDraft("Happy Birthday"))
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, f.events.calls)
	})

	t.Run("duplicate title from a concurrent creator", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.svc.CreateEvent(ctx, 3, validDraft("Happy Birthday"))
		require.NoError(t, err)

		d := validDraft("happy birthday ")
		d.Slug = "another-slug"
		_, err = f.svc.CreateEvent(ctx, 3, d)
		var se *eventform.SubmitError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, eventform.KindConflict, se.Kind)
		assert.Equal(t, eventform.FieldErrors{eventform.FieldTitle: eventform.MsgTitleTaken}, se.Fields)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		f := newServiceFixture()
		_, err := f.svc.CreateEvent(ctx, 3, validDraft("Happy Birthday"))
		require.NoError(t, err)

		d := validDraft("Happy Birthday Party")
		d.Slug = "happy-birthday"
		_, err = f.svc.CreateEvent(ctx, 3, d)
		var se *eventform.SubmitError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, eventform.FieldErrors{eventform.FieldSlug: eventform.MsgSlugTaken}, se.Fields)
		assert.Equal(t, eventform.MsgSlugTaken, se.Message)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newServiceFixture()
		f.events.insertErr = errors.New("db down")
		_, err := f.svc.CreateEvent(ctx, 3, validDraft("Happy Birthday"))
		var se *eventform.SubmitError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, eventform.KindTransient, se.Kind)
		assert.Equal(t, eventform.MsgSaveFailed, se.Message)
	})
}

func TestEventService_ListEvents(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	early := validDraft("Spring")
	late := validDraft("Summer")
	late.Date = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	late.Hour = "1"
	late.Meridiem = "AM"
	_, err := f.svc.CreateEvent(ctx, 3, early)
	require.NoError(t, err)
	_, err = f.svc.CreateEvent(ctx, 3, late)
	require.NoError(t, err)

	events, total, err := f.svc.ListEvents(ctx, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, events, 2)
	assert.Equal(t, "summer", events[0].Title)
	assert.Equal(t, "spring", events[1].Title)

	events, total, err = f.svc.ListEvents(ctx, domain.PaginationParams{Page: 2, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, events, 1)
	assert.Equal(t, "spring", events[0].Title)

	events, _, err = f.svc.ListEvents(ctx, domain.PaginationParams{Page: 3, PageSize: 1})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventService_GetEventBySlug(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	event, err := f.svc.CreateEvent(ctx, 3, validDraft("Gala"))
	require.NoError(t, err)
	f.photos.byEvent[event.ID] = []*domain.Photo{{ID: 1, EventID: event.ID, BlobID: "b1"}}

	got, photos, err := f.svc.GetEventBySlug(ctx, "gala")
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)
	assert.Len(t, photos, 1)

	_, _, err = f.svc.GetEventBySlug(ctx, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_CheckTitle(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	_, err := f.svc.CreateEvent(ctx, 3, validDraft("Happy Birthday"))
	require.NoError(t, err)

	check, err := f.svc.CheckTitle(ctx, "  HAPPY Birthday")
	require.NoError(t, err)
	assert.True(t, check.Exists)
	assert.Equal(t, "happy-birthday", check.Slug)

	check, err = f.svc.CheckTitle(ctx, "Happy Birthday Sui")
	require.NoError(t, err)
	assert.False(t, check.Exists)
	assert.Equal(t, "happy-birthday-sui", check.Slug)

	_, err = f.svc.CheckTitle(ctx, "   ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	f.events.existsErr = errors.New("timeout")
	_, err = f.svc.CheckTitle(ctx, "anything")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("photos first, then event", func(t *testing.T) {
		f := newServiceFixture()
		event, err := f.svc.CreateEvent(ctx, 3, validDraft("Gala"))
		require.NoError(t, err)
		f.events.calls = nil

		require.NoError(t, f.svc.DeleteEvent(ctx, event.ID, 3))
		assert.Equal(t, []string{"delete-photos", "delete-event"}, f.events.calls)
		_, err = f.events.GetByID(ctx, event.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("photo failure keeps event", func(t *testing.T) {
		f := newServiceFixture()
		event, err := f.svc.CreateEvent(ctx, 3, validDraft("Gala"))
		require.NoError(t, err)
		f.events.calls = nil
		f.photos.deleteErr = errors.New("locked")

		err = f.svc.DeleteEvent(ctx, event.ID, 3)
		var de *eventform.DeletionError
		require.ErrorAs(t, err, &de)
		assert.False(t, de.Partial)
		assert.Equal(t, []string{"delete-photos"}, f.events.calls)
		_, err = f.events.GetByID(ctx, event.ID)
		require.NoError(t, err)
	})

	t.Run("event failure after photos is partial", func(t *testing.T) {
		f := newServiceFixture()
		event, err := f.svc.CreateEvent(ctx, 3, validDraft("Gala"))
		require.NoError(t, err)
		f.events.deleteErr = errors.New("timeout")

		err = f.svc.DeleteEvent(ctx, event.ID, 3)
		var de *eventform.DeletionError
		require.ErrorAs(t, err, &de)
		assert.True(t, de.Partial)
	})

	t.Run("not owner", func(t *testing.T) {
		f := newServiceFixture()
		event, err := f.svc.CreateEvent(ctx, 3, validDraft("Gala"))
		require.NoError(t, err)
		f.events.calls = nil

		require.ErrorIs(t, f.svc.DeleteEvent(ctx, event.ID, 4), domain.ErrForbidden)
		assert.Empty(t, f.events.calls)
	})

	t.Run("missing event", func(t *testing.T) {
		f := newServiceFixture()
		require.ErrorIs(t, f.svc.DeleteEvent(ctx, 77, 3), domain.ErrNotFound)
	})
}

func TestEventService_ResolveAdmin(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	id, err := f.svc.ResolveAdmin(ctx, "organizer@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	_, err = f.svc.ResolveAdmin(ctx, "visitor@example.com")
	require.ErrorIs(t, err, domain.ErrForbidden)

	f.admins.err = errors.New("db down")
	_, err = f.svc.ResolveAdmin(ctx, "organizer@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrForbidden)
}
