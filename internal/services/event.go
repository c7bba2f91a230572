package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventsmanager/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.EventAttendeeRepository
	userRepo       domain.UserRepository
	invitationRepo domain.EventInvitationRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repositories.
// emailService may be nil; invitation emails are then skipped.
func NewEventService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.EventAttendeeRepository,
	userRepo domain.UserRepository,
	invitationRepo domain.EventInvitationRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, input domain.CreateEventInput, actorID string) (*domain.Event, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actorID == "" {
		return nil, nil, fmt.Errorf("%w: event organizer is required", domain.ErrInvalidInput)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, nil, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	event := domain.NewEvent(title, input.Description, input.Location, actorID, input.Date, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, nil, fmt.Errorf("create event: %w", err)
	}

	unresolved := s.resolveInvitees(ctx, event, input.Invitees)
	return event, unresolved, nil
}

// resolveInvitees adds every invitee email that matches an existing user to
// the event's attendee set. Unknown emails never fail the creation; they are
// collected and reported back to the caller. Each email is also recorded as
// an invitation and a notification is sent best-effort.
func (s *eventService) resolveInvitees(ctx context.Context, event *domain.Event, invitees []string) []string {
	var unresolved []string
	seen := make(map[string]struct{})
	for _, raw := range invitees {
		email := strings.TrimSpace(strings.ToLower(raw))
		if email == "" {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}

		user, err := s.userRepo.GetByEmail(ctx, email)
		resolved := err == nil && user != nil
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.WarnContext(ctx, "invitee lookup failed", "event_id", event.ID, "email", email, "err", err)
		}

		if resolved {
			if err := s.attendeeRepo.Add(ctx, event.ID, user.ID); err != nil {
				s.logger.WarnContext(ctx, "add invitee as attendee failed", "event_id", event.ID, "user_id", user.ID, "err", err)
				unresolved = append(unresolved, email)
				continue
			}
			event.Attendees = append(event.Attendees, user.ID)
		} else {
			unresolved = append(unresolved, email)
		}

		inv := &domain.EventInvitation{
			EventID:  event.ID,
			Email:    email,
			Resolved: resolved,
			SentAt:   time.Now(),
		}
		if err := s.invitationRepo.Create(ctx, inv); err != nil {
			s.logger.WarnContext(ctx, "record invitation failed", "event_id", event.ID, "email", email, "err", err)
		}

		if resolved && s.emailService != nil {
			data := &domain.EventInvitationEmailData{
				Email:         email,
				EventTitle:    event.Title,
				EventDate:     event.Date.Format(time.RFC1123),
				EventLocation: event.Location,
			}
			if err := s.emailService.SendEventInvitation(ctx, data); err != nil {
				s.logger.WarnContext(ctx, "send invitation email failed", "event_id", event.ID, "email", email, "err", err)
			}
		}
	}
	return unresolved
}

func (s *eventService) List(ctx context.Context, filters domain.EventFilters, actorID string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	filters.UserID = actorID
	events, total, err := s.eventRepo.List(ctx, filters, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) GetByID(ctx context.Context, eventID, actorID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !domain.Allowed(actorID, event, domain.OpRead) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, eventID, actorID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !domain.Allowed(actorID, event, domain.OpUpdate) {
		return nil, domain.ErrForbidden
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
	}
	if upd.Date != nil && upd.Date.IsZero() {
		return nil, fmt.Errorf("%w: date must be a valid timestamp", domain.ErrInvalidInput)
	}
	updated, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, eventID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !domain.Allowed(actorID, event, domain.OpDelete) {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) Register(ctx context.Context, eventID, actorID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get event: %w", err)
	}
	if !domain.Allowed(actorID, event, domain.OpRegister) {
		return false, domain.ErrForbidden
	}

	// Idempotent: registering twice is a successful no-op.
	exists, err := s.attendeeRepo.Exists(ctx, eventID, actorID)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	if exists {
		return false, nil
	}
	if err := s.attendeeRepo.Add(ctx, eventID, actorID); err != nil {
		return false, fmt.Errorf("register attendee: %w", err)
	}
	return true, nil
}

func (s *eventService) ListInvitations(ctx context.Context, eventID, actorID string, params domain.PaginationParams) ([]*domain.EventInvitation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	if !domain.Allowed(actorID, event, domain.OpUpdate) {
		return nil, 0, domain.ErrForbidden
	}
	invs, total, err := s.invitationRepo.ListByEventID(ctx, eventID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list event invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.EventInvitation{}
	}
	return invs, total, nil
}
