package domain

import (
	"context"
	"time"
)

// Photo is an image uploaded to an event. It is owned by its event and
// must be deleted before the event row.
// swagger:model Photo
type Photo struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	BlobID    string    `json:"blob_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PhotoRepository defines the record store operations on photos.
type PhotoRepository interface {
	ListByEventID(ctx context.Context, eventID int64) ([]*Photo, error)
	// DeleteByEventID removes every photo of the event. Deleting zero rows is not an error.
	DeleteByEventID(ctx context.Context, eventID int64) error
}
