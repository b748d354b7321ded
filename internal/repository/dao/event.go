package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrRoleSlotNotFound   = errors.New("role slot not found")
	ErrAssignmentNotFound = errors.New("role assignment not found")
	ErrAssignmentExists   = errors.New("role assignment already exists")
	ErrAssignmentDecided  = errors.New("role assignment already decided")
	ErrSlotFull           = errors.New("role slot is full")
	ErrAttendanceExists   = errors.New("attendance already marked")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	EventDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`
	Status      string    `gorm:"not null;default:'draft'"`
	OrganizerID uint      `gorm:"not null;index"`
	QREnabled   bool      `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RoleSlot struct {
	ID uint `gorm:"primaryKey"`

	EventID   uint      `gorm:"not null;index"`
	Event     Event     `gorm:"foreignKey:EventID"`
	Role      string    `gorm:"not null"`
	StartTime time.Time `gorm:"not null"`
	EndTime   time.Time `gorm:"not null"`
	MaxSeats  int       `gorm:"not null;default:0"` // 0 = unlimited

	CreatedAt time.Time `gorm:"not null"`
}

type RoleAssignment struct {
	ID uint `gorm:"primaryKey"`

	EventID    uint     `gorm:"not null;uniqueIndex:uni_assignment_event_student_slot"`
	StudentID  uint     `gorm:"not null;uniqueIndex:uni_assignment_event_student_slot"`
	RoleSlotID uint     `gorm:"not null;uniqueIndex:uni_assignment_event_student_slot"`
	RoleSlot   RoleSlot `gorm:"foreignKey:RoleSlotID"`
	Role       string   `gorm:"not null"`
	Status     string   `gorm:"not null;default:'pending'"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Attendance struct {
	ID uint `gorm:"primaryKey"`

	EventID   uint   `gorm:"not null;uniqueIndex:uni_attendance_event_student_role"`
	StudentID uint   `gorm:"not null;uniqueIndex:uni_attendance_event_student_role"`
	Role      string `gorm:"not null;uniqueIndex:uni_attendance_event_student_role"`
	Status    string `gorm:"not null;default:'present'"`

	CreatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("event_date").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) SetQREnabled(ctx context.Context, id uint, enabled bool) error {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Update("qr_enabled", enabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) InsertRoleSlot(ctx context.Context, slot RoleSlot) (RoleSlot, error) {
	result := d.db.WithContext(ctx).Create(&slot)
	if result.Error != nil {
		return RoleSlot{}, result.Error
	}

	return slot, nil
}

func (d *EventDAO) FindRoleSlotByID(ctx context.Context, id uint) (RoleSlot, error) {
	var slot RoleSlot

	result := d.db.WithContext(ctx).First(&slot, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RoleSlot{}, ErrRoleSlotNotFound
		}

		return RoleSlot{}, result.Error
	}

	return slot, nil
}

func (d *EventDAO) FindRoleSlotsByEvent(ctx context.Context, eventID uint) ([]RoleSlot, error) {
	var slots []RoleSlot

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Order("start_time").Find(&slots)
	if result.Error != nil {
		return nil, result.Error
	}

	return slots, nil
}

func (d *EventDAO) InsertAssignment(ctx context.Context, assignment RoleAssignment) (RoleAssignment, error) {
	result := d.db.WithContext(ctx).Create(&assignment)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return RoleAssignment{}, ErrAssignmentExists
		}

		return RoleAssignment{}, result.Error
	}

	return assignment, nil
}

func (d *EventDAO) FindAssignmentByID(ctx context.Context, id uint) (RoleAssignment, error) {
	var assignment RoleAssignment

	result := d.db.WithContext(ctx).First(&assignment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RoleAssignment{}, ErrAssignmentNotFound
		}

		return RoleAssignment{}, result.Error
	}

	return assignment, nil
}

func (d *EventDAO) FindAssignments(ctx context.Context, eventID, studentID uint) ([]RoleAssignment, error) {
	var assignments []RoleAssignment

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND student_id = ?", eventID, studentID).
		Find(&assignments)
	if result.Error != nil {
		return nil, result.Error
	}

	return assignments, nil
}

func (d *EventDAO) FindAssignmentsByEvent(ctx context.Context, eventID uint) ([]RoleAssignment, error) {
	var assignments []RoleAssignment

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&assignments)
	if result.Error != nil {
		return nil, result.Error
	}

	return assignments, nil
}

func (d *EventDAO) CountApprovedForSlot(ctx context.Context, slotID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&RoleAssignment{}).
		Where("role_slot_id = ? AND status = ?", slotID, "approved").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// ApproveAssignment flips a pending assignment to approved with a single
// conditional update so the seat-capacity guard holds at write time. When
// nothing was updated the row is re-read to tell a decided assignment apart
// from a full slot.
func (d *EventDAO) ApproveAssignment(ctx context.Context, id, slotID uint, maxSeats int) error {
	result := d.db.WithContext(ctx).Exec(`
		UPDATE role_assignments
		SET status = 'approved', updated_at = NOW()
		WHERE id = ? AND status = 'pending'
		  AND (? = 0 OR (SELECT COUNT(*) FROM role_assignments
		                 WHERE role_slot_id = ? AND status = 'approved') < ?)`,
		id, maxSeats, slotID, maxSeats)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	assignment, err := d.FindAssignmentByID(ctx, id)
	if err != nil {
		return err
	}
	if assignment.Status != "pending" {
		return ErrAssignmentDecided
	}

	return ErrSlotFull
}

// RejectAssignment flips a pending assignment to rejected. Acting on an
// already-decided assignment is reported as such.
func (d *EventDAO) RejectAssignment(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&RoleAssignment{}).
		Where("id = ? AND status = ?", id, "pending").
		Update("status", "rejected")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	assignment, err := d.FindAssignmentByID(ctx, id)
	if err != nil {
		return err
	}
	if assignment.Status != "pending" {
		return ErrAssignmentDecided
	}

	return ErrAssignmentNotFound
}

func (d *EventDAO) InsertAttendance(ctx context.Context, attendance Attendance) (Attendance, error) {
	result := d.db.WithContext(ctx).Create(&attendance)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Attendance{}, ErrAttendanceExists
		}

		return Attendance{}, result.Error
	}

	return attendance, nil
}

func (d *EventDAO) FindAttendances(ctx context.Context, eventID, studentID uint) ([]Attendance, error) {
	var attendances []Attendance

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND student_id = ?", eventID, studentID).
		Find(&attendances)
	if result.Error != nil {
		return nil, result.Error
	}

	return attendances, nil
}
