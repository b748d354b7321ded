package domain

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

type Payment struct {
	ID          uint          `json:"id"`
	HackathonID uint          `json:"hackathon_id"`
	TeamID      uint          `json:"team_id"`
	UserID      uint          `json:"user_id"`
	Amount      int64         `json:"amount"`
	OrderID     string        `json:"order_id"`
	Receipt     string        `json:"receipt"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (p Payment) IsSettled() bool {
	return p.Status != PaymentPending
}
