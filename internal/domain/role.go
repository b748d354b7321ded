package domain

import "time"

const (
	EventRoleParticipant = "participant"
	EventRoleVolunteer   = "volunteer"
	EventRoleJudge       = "judge"
	EventRoleSpeaker     = "speaker"
)

// EventRoles lists every role a student can take at an event.
var EventRoles = []string{EventRoleParticipant, EventRoleVolunteer, EventRoleJudge, EventRoleSpeaker}

type AssignmentStatus string

const (
	AssignmentPending  AssignmentStatus = "pending"
	AssignmentApproved AssignmentStatus = "approved"
	AssignmentRejected AssignmentStatus = "rejected"
)

// RoleSlot is a time-boxed, seat-limited opportunity to take a role at an
// event. MaxSeats of zero means unlimited.
type RoleSlot struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	Role      string    `json:"role"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	MaxSeats  int       `json:"max_seats"`
	CreatedAt time.Time `json:"created_at"`
}

// WithinEvent reports whether the slot window fits inside the event window.
func (s RoleSlot) WithinEvent(e Event) bool {
	return !s.StartTime.Before(e.EventDate) && !s.EndTime.After(e.EndDate) && s.EndTime.After(s.StartTime)
}

type RoleAssignment struct {
	ID         uint             `json:"id"`
	EventID    uint             `json:"event_id"`
	StudentID  uint             `json:"student_id"`
	RoleSlotID uint             `json:"role_slot_id"`
	Role       string           `json:"role"`
	Status     AssignmentStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (a RoleAssignment) IsDecided() bool {
	return a.Status != AssignmentPending
}
