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
	ErrRoleSlotNotFound   = repository.ErrRoleSlotNotFound
	ErrAssignmentNotFound = repository.ErrAssignmentNotFound
	ErrAssignmentExists   = repository.ErrAssignmentExists
	ErrAssignmentDecided  = repository.ErrAssignmentDecided
	ErrSlotFull           = repository.ErrSlotFull
	ErrJudgeExclusive     = errors.New("judge role is exclusive with other roles")
)

type RoleEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindRoleSlotByID(ctx context.Context, id uint) (domain.RoleSlot, error)
	CreateAssignment(ctx context.Context, assignment domain.RoleAssignment) (domain.RoleAssignment, error)
	FindAssignmentByID(ctx context.Context, id uint) (domain.RoleAssignment, error)
	FindAssignments(ctx context.Context, eventID, studentID uint) ([]domain.RoleAssignment, error)
	FindAssignmentsByEvent(ctx context.Context, eventID uint) ([]domain.RoleAssignment, error)
	CountApprovedForSlot(ctx context.Context, slotID uint) (int64, error)
	ApproveAssignment(ctx context.Context, id, slotID uint, maxSeats int) error
	RejectAssignment(ctx context.Context, id uint) error
}

type RoleService struct {
	repo RoleEventRepository
}

func NewRoleService(repo RoleEventRepository) *RoleService {
	return &RoleService{
		repo: repo,
	}
}

// Apply registers a student for a role slot. Participants are approved on
// the spot; every other role waits for the organizer.
func (s *RoleService) Apply(ctx context.Context, studentID, roleSlotID uint) (domain.RoleAssignment, error) {
	slot, err := s.repo.FindRoleSlotByID(ctx, roleSlotID)
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("s.repo.FindRoleSlotByID -> %w", err)
	}

	event, err := s.repo.FindByID(ctx, slot.EventID)
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if event.Status != domain.EventStatusLive {
		return domain.RoleAssignment{}, ErrEventNotLive
	}
	if event.HasEnded(time.Now()) {
		return domain.RoleAssignment{}, ErrEventEnded
	}

	existing, err := s.repo.FindAssignments(ctx, event.ID, studentID)
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("s.repo.FindAssignments -> %w", err)
	}
	for _, a := range existing {
		if a.RoleSlotID == roleSlotID {
			return domain.RoleAssignment{}, ErrAssignmentExists
		}
		if a.Status == domain.AssignmentRejected {
			continue
		}
		// Judge is mutually exclusive with every other role, both ways.
		if a.Role == domain.EventRoleJudge || slot.Role == domain.EventRoleJudge {
			return domain.RoleAssignment{}, ErrJudgeExclusive
		}
	}

	if slot.MaxSeats > 0 {
		approved, err := s.repo.CountApprovedForSlot(ctx, roleSlotID)
		if err != nil {
			return domain.RoleAssignment{}, fmt.Errorf("s.repo.CountApprovedForSlot -> %w", err)
		}
		if approved >= int64(slot.MaxSeats) {
			return domain.RoleAssignment{}, ErrSlotFull
		}
	}

	status := domain.AssignmentPending
	if slot.Role == domain.EventRoleParticipant {
		status = domain.AssignmentApproved
	}

	created, err := s.repo.CreateAssignment(ctx, domain.RoleAssignment{
		EventID:    event.ID,
		StudentID:  studentID,
		RoleSlotID: roleSlotID,
		Role:       slot.Role,
		Status:     status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentExists) {
			return domain.RoleAssignment{}, ErrAssignmentExists
		}

		return domain.RoleAssignment{}, fmt.Errorf("s.repo.CreateAssignment -> %w", err)
	}

	return created, nil
}

// Approve flips a pending assignment to approved. The seat-capacity guard is
// re-checked at write time, so the second of two racing approvals loses.
func (s *RoleService) Approve(ctx context.Context, assignmentID uint, actor domain.User) (domain.RoleAssignment, error) {
	assignment, err := s.repo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("s.repo.FindAssignmentByID -> %w", err)
	}

	event, err := s.repo.FindByID(ctx, assignment.EventID)
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !event.IsOrganizer(actor.ID) {
		return domain.RoleAssignment{}, ErrNotOrganizer
	}

	slot, err := s.repo.FindRoleSlotByID(ctx, assignment.RoleSlotID)
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("s.repo.FindRoleSlotByID -> %w", err)
	}

	if err = s.repo.ApproveAssignment(ctx, assignmentID, slot.ID, slot.MaxSeats); err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("s.repo.ApproveAssignment -> %w", err)
	}

	assignment.Status = domain.AssignmentApproved

	return assignment, nil
}

func (s *RoleService) Reject(ctx context.Context, assignmentID uint, actor domain.User) (domain.RoleAssignment, error) {
	assignment, err := s.repo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("s.repo.FindAssignmentByID -> %w", err)
	}

	event, err := s.repo.FindByID(ctx, assignment.EventID)
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !event.IsOrganizer(actor.ID) {
		return domain.RoleAssignment{}, ErrNotOrganizer
	}

	if err = s.repo.RejectAssignment(ctx, assignmentID); err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("s.repo.RejectAssignment -> %w", err)
	}

	assignment.Status = domain.AssignmentRejected

	return assignment, nil
}

func (s *RoleService) ListForStudent(ctx context.Context, eventID, studentID uint) ([]domain.RoleAssignment, error) {
	assignments, err := s.repo.FindAssignments(ctx, eventID, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAssignments -> %w", err)
	}

	return assignments, nil
}

func (s *RoleService) ListForEvent(ctx context.Context, eventID uint, actor domain.User) ([]domain.RoleAssignment, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !event.IsOrganizer(actor.ID) {
		return nil, ErrNotOrganizer
	}

	assignments, err := s.repo.FindAssignmentsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAssignmentsByEvent -> %w", err)
	}

	return assignments, nil
}
