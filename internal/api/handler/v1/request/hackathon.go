package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/eventra/eventra-api/internal/domain"
)

type CreateHackathonRequest struct {
	Title                string    `json:"title" binding:"required"`
	Description          string    `json:"description"`
	TeamSizeMin          int       `json:"team_size_min" binding:"required"`
	TeamSizeMax          int       `json:"team_size_max" binding:"required"`
	RegistrationStart    time.Time `json:"registration_start" binding:"required"`
	RegistrationDeadline time.Time `json:"registration_deadline" binding:"required"`
	HackathonStart       time.Time `json:"hackathon_start" binding:"required"`
	HackathonEnd         time.Time `json:"hackathon_end" binding:"required"`
	SubmissionDeadline   time.Time `json:"submission_deadline" binding:"required"`
	PaymentRequired      bool      `json:"payment_required"`
	EntryFee             int64     `json:"entry_fee"`
}

func (req *CreateHackathonRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.TeamSizeMin, validation.Required, validation.Min(1)),
		validation.Field(&req.TeamSizeMax, validation.Required, validation.Min(1)),
		validation.Field(&req.RegistrationStart, validation.Required),
		validation.Field(&req.RegistrationDeadline, validation.Required),
		validation.Field(&req.HackathonStart, validation.Required),
		validation.Field(&req.HackathonEnd, validation.Required),
		validation.Field(&req.SubmissionDeadline, validation.Required),
		validation.Field(&req.EntryFee, validation.Min(0)),
	)
}

type TransitionHackathonRequest struct {
	Status string `json:"status" binding:"required"`
}

func (req *TransitionHackathonRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In(
			string(domain.HackathonRegistrationOpen),
			string(domain.HackathonRegistrationClosed),
			string(domain.HackathonSubmissionOpen),
			string(domain.HackathonEvaluation),
			string(domain.HackathonCompleted),
		)),
	)
}
