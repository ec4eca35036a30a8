package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"photobooth/internal/domain"
	"photobooth/internal/eventform"
)

type eventService struct {
	eventRepo      domain.EventRepository
	photoRepo      domain.PhotoRepository
	adminRepo      domain.AdminRepository
	submitter      *eventform.Submitter
	deleter        *eventform.Deleter
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	photoRepo domain.PhotoRepository,
	adminRepo domain.AdminRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		eventRepo:      eventRepo,
		photoRepo:      photoRepo,
		adminRepo:      adminRepo,
		submitter:      eventform.NewSubmitter(eventRepo, logger),
		deleter:        eventform.NewDeleter(photoRepo, eventRepo, logger),
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateEvent validates and stores a draft for adminID. Failures are
// *eventform.SubmitError; a missing admin is domain.ErrForbidden.
func (s *eventService) CreateEvent(ctx context.Context, adminID int64, draft domain.EventDraft) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if adminID <= 0 {
		return nil, domain.ErrForbidden
	}
	return s.submitter.Submit(ctx, adminID, draft)
}

func (s *eventService) ListEvents(ctx context.Context, page domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	lo, hi := page.Window(len(events))
	return events[lo:hi], len(events), nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, []*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	photos, err := s.photoRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list photos: %w", err)
	}
	if photos == nil {
		photos = []*domain.Photo{}
	}
	return event, photos, nil
}

// CheckTitle reports the slug a title derives to and whether an event
// already uses the title. Blank titles are not looked up.
func (s *eventService) CheckTitle(ctx context.Context, title string) (domain.TitleCheck, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	check := domain.TitleCheck{Title: title, Slug: eventform.DeriveSlug(title)}
	normalized := eventform.NormalizeTitle(title)
	if normalized == "" {
		return check, domain.ErrInvalidInput
	}
	exists, err := s.eventRepo.ExistsByTitle(ctx, normalized)
	if err != nil {
		s.logger.ErrorContext(ctx, "title check failed", "title", normalized, "err", err)
		return check, fmt.Errorf("check title: %w", err)
	}
	check.Exists = exists
	return check, nil
}

// DeleteEvent removes an event owned by adminID together with its photos.
// Store failures are *eventform.DeletionError.
func (s *eventService) DeleteEvent(ctx context.Context, eventID, adminID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.AdminID != adminID {
		return domain.ErrForbidden
	}
	return s.deleter.Delete(ctx, eventID)
}

// ResolveAdmin maps an authenticated email to an admin id. Emails without
// an admin row are domain.ErrForbidden.
func (s *eventService) ResolveAdmin(ctx context.Context, email string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	id, err := s.adminRepo.GetIDByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrForbidden
		}
		return 0, fmt.Errorf("get admin: %w", err)
	}
	return id, nil
}
