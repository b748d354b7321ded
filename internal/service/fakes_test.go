package service

import (
	"context"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/repository"
)

// fakeEventRepo is an in-memory stand-in for the event repository, honoring
// the same sentinel errors and write-time guards as the real one.
type fakeEventRepo struct {
	events      map[uint]domain.Event
	slots       map[uint]domain.RoleSlot
	assignments map[uint]domain.RoleAssignment
	attendances map[uint]domain.Attendance
	nextID      uint
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:      make(map[uint]domain.Event),
		slots:       make(map[uint]domain.RoleSlot),
		assignments: make(map[uint]domain.RoleAssignment),
		attendances: make(map[uint]domain.Attendance),
	}
}

func (f *fakeEventRepo) id() uint {
	f.nextID++

	return f.nextID
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = f.id()
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (f *fakeEventRepo) FindAll(_ context.Context) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(f.events))
	for _, e := range f.events {
		events = append(events, e)
	}

	return events, nil
}

func (f *fakeEventRepo) UpdateStatus(_ context.Context, id uint, status domain.EventStatus) error {
	event, ok := f.events[id]
	if !ok {
		return repository.ErrEventNotFound
	}

	event.Status = status
	f.events[id] = event

	return nil
}

func (f *fakeEventRepo) SetQREnabled(_ context.Context, id uint, enabled bool) error {
	event, ok := f.events[id]
	if !ok {
		return repository.ErrEventNotFound
	}

	event.QREnabled = enabled
	f.events[id] = event

	return nil
}

func (f *fakeEventRepo) CreateRoleSlot(_ context.Context, slot domain.RoleSlot) (domain.RoleSlot, error) {
	slot.ID = f.id()
	f.slots[slot.ID] = slot

	return slot, nil
}

func (f *fakeEventRepo) FindRoleSlotByID(_ context.Context, id uint) (domain.RoleSlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return domain.RoleSlot{}, repository.ErrRoleSlotNotFound
	}

	return slot, nil
}

func (f *fakeEventRepo) FindRoleSlotsByEvent(_ context.Context, eventID uint) ([]domain.RoleSlot, error) {
	var slots []domain.RoleSlot
	for _, s := range f.slots {
		if s.EventID == eventID {
			slots = append(slots, s)
		}
	}

	return slots, nil
}

func (f *fakeEventRepo) CreateAssignment(_ context.Context, assignment domain.RoleAssignment) (domain.RoleAssignment, error) {
	for _, a := range f.assignments {
		if a.RoleSlotID == assignment.RoleSlotID && a.StudentID == assignment.StudentID {
			return domain.RoleAssignment{}, repository.ErrAssignmentExists
		}
	}

	assignment.ID = f.id()
	f.assignments[assignment.ID] = assignment

	return assignment, nil
}

func (f *fakeEventRepo) FindAssignmentByID(_ context.Context, id uint) (domain.RoleAssignment, error) {
	assignment, ok := f.assignments[id]
	if !ok {
		return domain.RoleAssignment{}, repository.ErrAssignmentNotFound
	}

	return assignment, nil
}

func (f *fakeEventRepo) FindAssignments(_ context.Context, eventID, studentID uint) ([]domain.RoleAssignment, error) {
	var assignments []domain.RoleAssignment
	for _, a := range f.assignments {
		if a.EventID == eventID && a.StudentID == studentID {
			assignments = append(assignments, a)
		}
	}

	return assignments, nil
}

func (f *fakeEventRepo) FindAssignmentsByEvent(_ context.Context, eventID uint) ([]domain.RoleAssignment, error) {
	var assignments []domain.RoleAssignment
	for _, a := range f.assignments {
		if a.EventID == eventID {
			assignments = append(assignments, a)
		}
	}

	return assignments, nil
}

func (f *fakeEventRepo) CountApprovedForSlot(_ context.Context, slotID uint) (int64, error) {
	var n int64
	for _, a := range f.assignments {
		if a.RoleSlotID == slotID && a.Status == domain.AssignmentApproved {
			n++
		}
	}

	return n, nil
}

func (f *fakeEventRepo) ApproveAssignment(ctx context.Context, id, slotID uint, maxSeats int) error {
	assignment, ok := f.assignments[id]
	if !ok {
		return repository.ErrAssignmentNotFound
	}
	if assignment.Status != domain.AssignmentPending {
		return repository.ErrAssignmentDecided
	}
	if maxSeats > 0 {
		approved, _ := f.CountApprovedForSlot(ctx, slotID)
		if approved >= int64(maxSeats) {
			return repository.ErrSlotFull
		}
	}

	assignment.Status = domain.AssignmentApproved
	f.assignments[id] = assignment

	return nil
}

func (f *fakeEventRepo) RejectAssignment(_ context.Context, id uint) error {
	assignment, ok := f.assignments[id]
	if !ok {
		return repository.ErrAssignmentNotFound
	}
	if assignment.Status != domain.AssignmentPending {
		return repository.ErrAssignmentDecided
	}

	assignment.Status = domain.AssignmentRejected
	f.assignments[id] = assignment

	return nil
}

func (f *fakeEventRepo) CreateAttendance(_ context.Context, attendance domain.Attendance) (domain.Attendance, error) {
	for _, a := range f.attendances {
		if a.EventID == attendance.EventID && a.StudentID == attendance.StudentID && a.Role == attendance.Role {
			return domain.Attendance{}, repository.ErrAttendanceExists
		}
	}

	attendance.ID = f.id()
	attendance.Status = domain.AttendancePresent
	f.attendances[attendance.ID] = attendance

	return attendance, nil
}

func (f *fakeEventRepo) FindAttendances(_ context.Context, eventID, studentID uint) ([]domain.Attendance, error) {
	var attendances []domain.Attendance
	for _, a := range f.attendances {
		if a.EventID == eventID && a.StudentID == studentID {
			attendances = append(attendances, a)
		}
	}

	return attendances, nil
}
