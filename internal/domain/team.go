package domain

import "time"

type Team struct {
	ID          uint      `json:"id"`
	HackathonID uint      `json:"hackathon_id"`
	Name        string    `json:"name"`
	LeaderID    uint      `json:"leader_id"`
	Members     []User    `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t Team) IsLeader(userID uint) bool {
	return t.LeaderID == userID
}

func (t Team) HasMember(userID uint) bool {
	for _, m := range t.Members {
		if m.ID == userID {
			return true
		}
	}

	return false
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

type Invitation struct {
	ID          uint             `json:"id"`
	HackathonID uint             `json:"hackathon_id"`
	TeamID      uint             `json:"team_id"`
	FromID      uint             `json:"from_id"`
	ToID        uint             `json:"to_id"`
	Status      InvitationStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
