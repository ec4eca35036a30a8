package domain

import (
	"context"
	"time"
)

// Event is a dated photo booth event created by an admin.
// EventDate holds the canonical "Ddd Mon D YYYY H:MM:00 ±HH:MM" string;
// EventAt is the same instant as a time, used for chronological ordering.
// swagger:model Event
type Event struct {
	ID        int64     `json:"id"`
	Title     string    `json:"event_title"`
	Slug      string    `json:"event_slug"`
	AdminID   int64     `json:"admin_id"`
	EventDate string    `json:"event_date"`
	EventAt   time.Time `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent returns a new Event. ID and CreatedAt are assigned by the store on insert.
func NewEvent(title, slug string, adminID int64, eventDate string, eventAt time.Time) *Event {
	return &Event{
		Title:     title,
		Slug:      slug,
		AdminID:   adminID,
		EventDate: eventDate,
		EventAt:   eventAt,
	}
}

// EventRepository defines the record store operations on events.
type EventRepository interface {
	// ExistsByTitle reports whether an event with exactly this (already normalized) title exists.
	ExistsByTitle(ctx context.Context, normalizedTitle string) (bool, error)
	// Insert stores e and sets its ID and CreatedAt. A unique violation is reported as *ConflictError.
	Insert(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// ListAll returns every event, latest event time first.
	ListAll(ctx context.Context) ([]*Event, error)
	DeleteByID(ctx context.Context, id int64) error
}

// EventService is the application boundary used by the HTTP layer.
type EventService interface {
	CreateEvent(ctx context.Context, adminID int64, draft EventDraft) (*Event, error)
	// ListEvents returns one page of events, latest first, and the total count.
	ListEvents(ctx context.Context, page PaginationParams) ([]*Event, int, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, []*Photo, error)
	CheckTitle(ctx context.Context, title string) (TitleCheck, error)
	DeleteEvent(ctx context.Context, eventID, adminID int64) error
	ResolveAdmin(ctx context.Context, email string) (int64, error)
}

// EventDraft carries the raw creation form fields.
type EventDraft struct {
	Title    string    `json:"event_title"`
	Slug     string    `json:"event_slug"`
	Date     time.Time `json:"event_date"`
	Hour     string    `json:"event_time_hour"`
	Minute   string    `json:"event_time_min"`
	Meridiem string    `json:"event_time_ampm"`
	Timezone string    `json:"event_timezone"`
}

// TitleCheck is the result of probing a candidate title.
type TitleCheck struct {
	Title  string `json:"event_title"`
	Slug   string `json:"event_slug"`
	Exists bool   `json:"exists"`
}
