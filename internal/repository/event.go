package repository

import (
	"context"
	"fmt"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/repository/dao"
)

var (
	ErrEventNotFound      = dao.ErrEventNotFound
	ErrRoleSlotNotFound   = dao.ErrRoleSlotNotFound
	ErrAssignmentNotFound = dao.ErrAssignmentNotFound
	ErrAssignmentExists   = dao.ErrAssignmentExists
	ErrAssignmentDecided  = dao.ErrAssignmentDecided
	ErrSlotFull           = dao.ErrSlotFull
	ErrAttendanceExists   = dao.ErrAttendanceExists
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	SetQREnabled(ctx context.Context, id uint, enabled bool) error
	InsertRoleSlot(ctx context.Context, slot dao.RoleSlot) (dao.RoleSlot, error)
	FindRoleSlotByID(ctx context.Context, id uint) (dao.RoleSlot, error)
	FindRoleSlotsByEvent(ctx context.Context, eventID uint) ([]dao.RoleSlot, error)
	InsertAssignment(ctx context.Context, assignment dao.RoleAssignment) (dao.RoleAssignment, error)
	FindAssignmentByID(ctx context.Context, id uint) (dao.RoleAssignment, error)
	FindAssignments(ctx context.Context, eventID, studentID uint) ([]dao.RoleAssignment, error)
	FindAssignmentsByEvent(ctx context.Context, eventID uint) ([]dao.RoleAssignment, error)
	CountApprovedForSlot(ctx context.Context, slotID uint) (int64, error)
	ApproveAssignment(ctx context.Context, id, slotID uint, maxSeats int) error
	RejectAssignment(ctx context.Context, id uint) error
	InsertAttendance(ctx context.Context, attendance dao.Attendance) (dao.Attendance, error)
	FindAttendances(ctx context.Context, eventID, studentID uint) ([]dao.Attendance, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Title:       event.Title,
		Description: event.Description,
		EventDate:   event.EventDate,
		EndDate:     event.EndDate,
		Status:      string(domain.EventStatusDraft),
		OrganizerID: event.OrganizerID,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.eventDaoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.eventDaoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, r.eventDaoToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id uint, status domain.EventStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *EventRepository) SetQREnabled(ctx context.Context, id uint, enabled bool) error {
	if err := r.dao.SetQREnabled(ctx, id, enabled); err != nil {
		return fmt.Errorf("r.dao.SetQREnabled -> %w", err)
	}

	return nil
}

func (r *EventRepository) CreateRoleSlot(ctx context.Context, slot domain.RoleSlot) (domain.RoleSlot, error) {
	created, err := r.dao.InsertRoleSlot(ctx, dao.RoleSlot{
		EventID:   slot.EventID,
		Role:      slot.Role,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		MaxSeats:  slot.MaxSeats,
	})
	if err != nil {
		return domain.RoleSlot{}, fmt.Errorf("r.dao.InsertRoleSlot -> %w", err)
	}

	return r.slotDaoToDomain(created), nil
}

func (r *EventRepository) FindRoleSlotByID(ctx context.Context, id uint) (domain.RoleSlot, error) {
	found, err := r.dao.FindRoleSlotByID(ctx, id)
	if err != nil {
		return domain.RoleSlot{}, fmt.Errorf("r.dao.FindRoleSlotByID -> %w", err)
	}

	return r.slotDaoToDomain(found), nil
}

func (r *EventRepository) FindRoleSlotsByEvent(ctx context.Context, eventID uint) ([]domain.RoleSlot, error) {
	found, err := r.dao.FindRoleSlotsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRoleSlotsByEvent -> %w", err)
	}

	slots := make([]domain.RoleSlot, 0, len(found))
	for _, s := range found {
		slots = append(slots, r.slotDaoToDomain(s))
	}

	return slots, nil
}

func (r *EventRepository) CreateAssignment(ctx context.Context, assignment domain.RoleAssignment) (domain.RoleAssignment, error) {
	created, err := r.dao.InsertAssignment(ctx, dao.RoleAssignment{
		EventID:    assignment.EventID,
		StudentID:  assignment.StudentID,
		RoleSlotID: assignment.RoleSlotID,
		Role:       assignment.Role,
		Status:     string(assignment.Status),
	})
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("r.dao.InsertAssignment -> %w", err)
	}

	return r.assignmentDaoToDomain(created), nil
}

func (r *EventRepository) FindAssignmentByID(ctx context.Context, id uint) (domain.RoleAssignment, error) {
	found, err := r.dao.FindAssignmentByID(ctx, id)
	if err != nil {
		return domain.RoleAssignment{}, fmt.Errorf("r.dao.FindAssignmentByID -> %w", err)
	}

	return r.assignmentDaoToDomain(found), nil
}

func (r *EventRepository) FindAssignments(ctx context.Context, eventID, studentID uint) ([]domain.RoleAssignment, error) {
	found, err := r.dao.FindAssignments(ctx, eventID, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAssignments -> %w", err)
	}

	assignments := make([]domain.RoleAssignment, 0, len(found))
	for _, a := range found {
		assignments = append(assignments, r.assignmentDaoToDomain(a))
	}

	return assignments, nil
}

func (r *EventRepository) FindAssignmentsByEvent(ctx context.Context, eventID uint) ([]domain.RoleAssignment, error) {
	found, err := r.dao.FindAssignmentsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAssignmentsByEvent -> %w", err)
	}

	assignments := make([]domain.RoleAssignment, 0, len(found))
	for _, a := range found {
		assignments = append(assignments, r.assignmentDaoToDomain(a))
	}

	return assignments, nil
}

func (r *EventRepository) CountApprovedForSlot(ctx context.Context, slotID uint) (int64, error) {
	count, err := r.dao.CountApprovedForSlot(ctx, slotID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountApprovedForSlot -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) ApproveAssignment(ctx context.Context, id, slotID uint, maxSeats int) error {
	if err := r.dao.ApproveAssignment(ctx, id, slotID, maxSeats); err != nil {
		return fmt.Errorf("r.dao.ApproveAssignment -> %w", err)
	}

	return nil
}

func (r *EventRepository) RejectAssignment(ctx context.Context, id uint) error {
	if err := r.dao.RejectAssignment(ctx, id); err != nil {
		return fmt.Errorf("r.dao.RejectAssignment -> %w", err)
	}

	return nil
}

func (r *EventRepository) CreateAttendance(ctx context.Context, attendance domain.Attendance) (domain.Attendance, error) {
	created, err := r.dao.InsertAttendance(ctx, dao.Attendance{
		EventID:   attendance.EventID,
		StudentID: attendance.StudentID,
		Role:      attendance.Role,
		Status:    string(domain.AttendancePresent),
	})
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("r.dao.InsertAttendance -> %w", err)
	}

	return r.attendanceDaoToDomain(created), nil
}

func (r *EventRepository) FindAttendances(ctx context.Context, eventID, studentID uint) ([]domain.Attendance, error) {
	found, err := r.dao.FindAttendances(ctx, eventID, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAttendances -> %w", err)
	}

	attendances := make([]domain.Attendance, 0, len(found))
	for _, a := range found {
		attendances = append(attendances, r.attendanceDaoToDomain(a))
	}

	return attendances, nil
}

func (r *EventRepository) eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.EventDate,
		EndDate:     e.EndDate,
		Status:      domain.EventStatus(e.Status),
		OrganizerID: e.OrganizerID,
		QREnabled:   e.QREnabled,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *EventRepository) slotDaoToDomain(s dao.RoleSlot) domain.RoleSlot {
	return domain.RoleSlot{
		ID:        s.ID,
		EventID:   s.EventID,
		Role:      s.Role,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		MaxSeats:  s.MaxSeats,
		CreatedAt: s.CreatedAt,
	}
}

func (r *EventRepository) assignmentDaoToDomain(a dao.RoleAssignment) domain.RoleAssignment {
	return domain.RoleAssignment{
		ID:         a.ID,
		EventID:    a.EventID,
		StudentID:  a.StudentID,
		RoleSlotID: a.RoleSlotID,
		Role:       a.Role,
		Status:     domain.AssignmentStatus(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (r *EventRepository) attendanceDaoToDomain(a dao.Attendance) domain.Attendance {
	return domain.Attendance{
		ID:        a.ID,
		EventID:   a.EventID,
		StudentID: a.StudentID,
		Role:      a.Role,
		Status:    domain.AttendanceStatus(a.Status),
		CreatedAt: a.CreatedAt,
	}
}
