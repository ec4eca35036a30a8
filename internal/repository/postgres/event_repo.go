package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"photobooth/internal/domain"
)

const uniqueViolation = "23505"

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) ExistsByTitle(ctx context.Context, normalizedTitle string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM events WHERE event_title = $1 LIMIT 1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, normalizedTitle).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *eventRepository) Insert(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (event_title, event_slug, admin_id, event_date, event_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query, e.Title, e.Slug, e.AdminID, e.EventDate, e.EventAt).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return conflictFromPQ(err)
	}
	return nil
}

// conflictFromPQ turns a unique violation into *domain.ConflictError naming
// the offending column(s); other errors are returned unchanged.
func conflictFromPQ(err error) error {
	var perr *pq.Error
	if !errors.As(err, &perr) || perr.Code != uniqueViolation {
		return err
	}
	where := perr.Constraint + " " + perr.Detail
	conflict := &domain.ConflictError{}
	if strings.Contains(where, "event_title") {
		conflict.Columns = append(conflict.Columns, domain.ConflictTitle)
	}
	if strings.Contains(where, "event_slug") {
		conflict.Columns = append(conflict.Columns, domain.ConflictSlug)
	}
	return conflict
}

const eventColumns = `id, event_title, event_slug, admin_id, event_date, event_at, created_at`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	if err := row.Scan(&e.ID, &e.Title, &e.Slug, &e.AdminID, &e.EventDate, &e.EventAt, &e.CreatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE event_slug = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(slug))))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY event_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
