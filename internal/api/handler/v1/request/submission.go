package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type SubmitProjectRequest struct {
	TeamID           uint   `json:"team_id" binding:"required"`
	GithubLink       string `json:"github_link" binding:"required"`
	DemoLink         string `json:"demo_link"`
	PresentationLink string `json:"presentation_link"`
	Description      string `json:"description"`
}

func (req *SubmitProjectRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeamID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.GithubLink, validation.Required, is.URL),
		validation.Field(&req.DemoLink, is.URL),
		validation.Field(&req.PresentationLink, is.URL),
		validation.Field(&req.Description, validation.Length(0, 5000)),
	)
}

type EvaluateRequest struct {
	SubmissionID uint    `json:"submission_id" binding:"required"`
	Technical    float64 `json:"technical"`
	Innovation   float64 `json:"innovation"`
	Presentation float64 `json:"presentation"`
}

func (req *EvaluateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SubmissionID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Technical, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&req.Innovation, validation.Min(0.0), validation.Max(10.0)),
		validation.Field(&req.Presentation, validation.Min(0.0), validation.Max(10.0)),
	)
}
