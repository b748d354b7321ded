package domain

import "time"

// Submission is the one deliverable per (hackathon, team). It stays
// overwritable while the submission window is open.
type Submission struct {
	ID               uint      `json:"id"`
	HackathonID      uint      `json:"hackathon_id"`
	TeamID           uint      `json:"team_id"`
	GithubLink       string    `json:"github_link"`
	DemoLink         string    `json:"demo_link"`
	PresentationLink string    `json:"presentation_link"`
	Description      string    `json:"description"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Evaluation struct {
	ID           uint      `json:"id"`
	HackathonID  uint      `json:"hackathon_id"`
	TeamID       uint      `json:"team_id"`
	SubmissionID uint      `json:"submission_id"`
	Technical    float64   `json:"technical"`
	Innovation   float64   `json:"innovation"`
	Presentation float64   `json:"presentation"`
	FinalScore   float64   `json:"final_score"`
	CreatedAt    time.Time `json:"created_at"`
}

// ComputeFinalScore sets FinalScore to the mean of the three criteria.
func (e *Evaluation) ComputeFinalScore() {
	e.FinalScore = (e.Technical + e.Innovation + e.Presentation) / 3
}

const (
	PositionWinner         = "winner"
	PositionRunnerUp       = "runner-up"
	PositionSecondRunnerUp = "second-runner-up"
)

// ResultPositions lists podium positions in rank order.
var ResultPositions = []string{PositionWinner, PositionRunnerUp, PositionSecondRunnerUp}

type Result struct {
	ID          uint      `json:"id"`
	HackathonID uint      `json:"hackathon_id"`
	TeamID      uint      `json:"team_id"`
	Position    string    `json:"position"`
	Score       float64   `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}
