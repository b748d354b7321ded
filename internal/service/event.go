package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/repository"
)

var (
	ErrEventNotFound          = repository.ErrEventNotFound
	ErrNotOrganizer           = errors.New("user is not the event organizer")
	ErrNotAdmin               = errors.New("user is not an admin")
	ErrIllegalEventTransition = errors.New("illegal event status transition")
	ErrEventEnded             = errors.New("event has already ended")
	ErrEventNotDraft          = errors.New("event is not in draft")
	ErrEventNotLive           = errors.New("event is not live")
	ErrInvalidEventDates      = errors.New("event end date must be after start date")
	ErrSlotOutsideEvent       = errors.New("role slot window must fit inside the event window")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	UpdateStatus(ctx context.Context, id uint, status domain.EventStatus) error
	SetQREnabled(ctx context.Context, id uint, enabled bool) error
	CreateRoleSlot(ctx context.Context, slot domain.RoleSlot) (domain.RoleSlot, error)
	FindRoleSlotByID(ctx context.Context, id uint) (domain.RoleSlot, error)
	FindRoleSlotsByEvent(ctx context.Context, eventID uint) ([]domain.RoleSlot, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event, actor domain.User) (domain.Event, error) {
	if !actor.IsAdmin() {
		return domain.Event{}, ErrNotAdmin
	}
	if !event.EndDate.After(event.EventDate) {
		return domain.Event{}, ErrInvalidEventDates
	}

	event.OrganizerID = actor.ID
	event.Status = domain.EventStatusDraft

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

// Transition moves the event along draft -> live -> completed. Only the
// owning admin may do this, and a finished event cannot go live.
func (s *EventService) Transition(ctx context.Context, id uint, to domain.EventStatus, actor domain.User) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !actor.IsAdmin() {
		return domain.Event{}, ErrNotAdmin
	}
	if !event.IsOrganizer(actor.ID) {
		return domain.Event{}, ErrNotOrganizer
	}
	if !event.CanTransition(to) {
		return domain.Event{}, fmt.Errorf("%w: %s -> %s", ErrIllegalEventTransition, event.Status, to)
	}
	if to == domain.EventStatusLive && event.HasEnded(time.Now()) {
		return domain.Event{}, ErrEventEnded
	}

	if err = s.repo.UpdateStatus(ctx, id, to); err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	event.Status = to

	return event, nil
}

// SetQREnabled toggles scan-based attendance. The flag only means anything
// while the event is live, so that is the only phase it can be flipped in.
func (s *EventService) SetQREnabled(ctx context.Context, id uint, enabled bool, actor domain.User) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !event.IsOrganizer(actor.ID) {
		return domain.Event{}, ErrNotOrganizer
	}
	if event.Status != domain.EventStatusLive {
		return domain.Event{}, ErrEventNotLive
	}

	if err = s.repo.SetQREnabled(ctx, id, enabled); err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.SetQREnabled -> %w", err)
	}

	event.QREnabled = enabled

	return event, nil
}

// CreateRoleSlot defines a role opportunity for the event. Slots can only be
// added while the event is still in draft.
func (s *EventService) CreateRoleSlot(ctx context.Context, slot domain.RoleSlot, actor domain.User) (domain.RoleSlot, error) {
	event, err := s.repo.FindByID(ctx, slot.EventID)
	if err != nil {
		return domain.RoleSlot{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !event.IsOrganizer(actor.ID) {
		return domain.RoleSlot{}, ErrNotOrganizer
	}
	if event.Status != domain.EventStatusDraft {
		return domain.RoleSlot{}, ErrEventNotDraft
	}
	if !slot.WithinEvent(event) {
		return domain.RoleSlot{}, ErrSlotOutsideEvent
	}

	created, err := s.repo.CreateRoleSlot(ctx, slot)
	if err != nil {
		return domain.RoleSlot{}, fmt.Errorf("s.repo.CreateRoleSlot -> %w", err)
	}

	return created, nil
}

func (s *EventService) ListRoleSlots(ctx context.Context, eventID uint) ([]domain.RoleSlot, error) {
	if _, err := s.repo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	slots, err := s.repo.FindRoleSlotsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindRoleSlotsByEvent -> %w", err)
	}

	return slots, nil
}
