package domain

import "time"

type Certificate struct {
	ID           uint      `json:"id"`
	Serial       string    `json:"serial"`
	EventID      uint      `json:"event_id"`
	StudentID    uint      `json:"student_id"`
	Role         string    `json:"role"`
	AttendanceID uint      `json:"attendance_id,omitempty"`
	FileURL      string    `json:"file_url"`
	IsRevoked    bool      `json:"is_revoked"`
	IssuedAt     time.Time `json:"issued_at"`
}

// Verification is the public lookup result for a certificate serial.
type Verification struct {
	Valid       bool   `json:"valid"`
	Revoked     bool   `json:"revoked,omitempty"`
	NotFound    bool   `json:"not_found,omitempty"`
	Serial      string `json:"serial,omitempty"`
	StudentName string `json:"student,omitempty"`
	EventTitle  string `json:"event,omitempty"`
	Role        string `json:"role,omitempty"`
	IssuedAt    string `json:"issued_at,omitempty"`
}
