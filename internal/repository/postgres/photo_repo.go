package postgres

import (
	"context"
	"database/sql"

	"photobooth/internal/domain"
)

type photoRepository struct {
	DB *sql.DB
}

func NewPhotoRepository(db *sql.DB) domain.PhotoRepository {
	return &photoRepository{DB: db}
}

func (r *photoRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Photo, error) {
	query := `
		SELECT id, event_id, blob_id, created_at
		FROM photos
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	photos := make([]*domain.Photo, 0)
	for rows.Next() {
		p := &domain.Photo{}
		if err := rows.Scan(&p.ID, &p.EventID, &p.BlobID, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *photoRepository) DeleteByEventID(ctx context.Context, eventID int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM photos WHERE event_id = $1`, eventID)
	return err
}
