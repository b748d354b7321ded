package domain

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// Attendance records one (event, student, role) presence, created by a QR scan.
type Attendance struct {
	ID        uint             `json:"id"`
	EventID   uint             `json:"event_id"`
	StudentID uint             `json:"student_id"`
	Role      string           `json:"role"`
	Status    AttendanceStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}
