package domain

import "time"

type HackathonStatus string

const (
	HackathonDraft              HackathonStatus = "draft"
	HackathonRegistrationOpen   HackathonStatus = "registration-open"
	HackathonRegistrationClosed HackathonStatus = "registration-closed"
	HackathonSubmissionOpen     HackathonStatus = "submission-open"
	HackathonEvaluation         HackathonStatus = "evaluation"
	HackathonCompleted          HackathonStatus = "completed"
)

// hackathonNext is the forward-only transition table. No skipping, no reverse.
var hackathonNext = map[HackathonStatus]HackathonStatus{
	HackathonDraft:              HackathonRegistrationOpen,
	HackathonRegistrationOpen:   HackathonRegistrationClosed,
	HackathonRegistrationClosed: HackathonSubmissionOpen,
	HackathonSubmissionOpen:     HackathonEvaluation,
	HackathonEvaluation:         HackathonCompleted,
}

type Hackathon struct {
	ID                   uint            `json:"id"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	TeamSizeMin          int             `json:"team_size_min"`
	TeamSizeMax          int             `json:"team_size_max"`
	RegistrationStart    time.Time       `json:"registration_start"`
	RegistrationDeadline time.Time       `json:"registration_deadline"`
	HackathonStart       time.Time       `json:"hackathon_start"`
	HackathonEnd         time.Time       `json:"hackathon_end"`
	SubmissionDeadline   time.Time       `json:"submission_deadline"`
	Status               HackathonStatus `json:"status"`
	PaymentRequired      bool            `json:"payment_required"`
	EntryFee             int64           `json:"entry_fee"`
	CreatedByID          uint            `json:"created_by_id"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// CanTransition reports whether to is the legal next status.
func (h Hackathon) CanTransition(to HackathonStatus) bool {
	return hackathonNext[h.Status] == to
}

// TransitionGate returns the earliest time at which the hackathon may enter
// the given status. A zero time means the transition carries no date guard,
// either inherently or because the guarding date was never set.
func (h Hackathon) TransitionGate(to HackathonStatus) time.Time {
	switch to {
	case HackathonRegistrationOpen:
		return h.RegistrationStart
	case HackathonRegistrationClosed:
		return h.RegistrationDeadline
	case HackathonSubmissionOpen:
		return h.HackathonStart
	case HackathonEvaluation:
		return h.SubmissionDeadline
	default:
		return time.Time{}
	}
}

func (h Hackathon) IsCreator(userID uint) bool {
	return h.CreatedByID == userID
}
