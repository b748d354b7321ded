package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyEvaluated   = errors.New("submission already evaluated")
	ErrResultsPublished   = errors.New("results already published")
)

type Submission struct {
	ID uint `gorm:"primaryKey"`

	HackathonID      uint `gorm:"not null;uniqueIndex:uni_submission_hackathon_team"`
	TeamID           uint `gorm:"not null;uniqueIndex:uni_submission_hackathon_team"`
	GithubLink       string
	DemoLink         string
	PresentationLink string
	Description      string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Evaluation struct {
	ID uint `gorm:"primaryKey"`

	HackathonID  uint    `gorm:"not null;uniqueIndex:uni_evaluation_hackathon_submission"`
	SubmissionID uint    `gorm:"not null;uniqueIndex:uni_evaluation_hackathon_submission"`
	TeamID       uint    `gorm:"not null"`
	Technical    float64 `gorm:"not null"`
	Innovation   float64 `gorm:"not null"`
	Presentation float64 `gorm:"not null"`
	FinalScore   float64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type Result struct {
	ID uint `gorm:"primaryKey"`

	HackathonID uint    `gorm:"not null;index"`
	TeamID      uint    `gorm:"not null"`
	Position    string  `gorm:"not null"`
	Score       float64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type SubmissionDAO struct {
	db *gorm.DB
}

func NewSubmissionDAO(db *gorm.DB) *SubmissionDAO {
	return &SubmissionDAO{
		db: db,
	}
}

// Upsert writes the team's submission, overwriting any earlier one for the
// same (hackathon, team).
func (d *SubmissionDAO) Upsert(ctx context.Context, submission Submission) (Submission, error) {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "hackathon_id"}, {Name: "team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"github_link", "demo_link", "presentation_link", "description", "updated_at",
		}),
	}).Create(&submission)
	if result.Error != nil {
		return Submission{}, result.Error
	}

	return submission, nil
}

func (d *SubmissionDAO) FindByID(ctx context.Context, id uint) (Submission, error) {
	var submission Submission

	result := d.db.WithContext(ctx).First(&submission, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}

		return Submission{}, result.Error
	}

	return submission, nil
}

func (d *SubmissionDAO) FindByTeam(ctx context.Context, hackathonID, teamID uint) (Submission, error) {
	var submission Submission

	result := d.db.WithContext(ctx).
		Where("hackathon_id = ? AND team_id = ?", hackathonID, teamID).
		First(&submission)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}

		return Submission{}, result.Error
	}

	return submission, nil
}

func (d *SubmissionDAO) FindByHackathon(ctx context.Context, hackathonID uint) ([]Submission, error) {
	var submissions []Submission

	result := d.db.WithContext(ctx).Where("hackathon_id = ?", hackathonID).Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return submissions, nil
}

func (d *SubmissionDAO) InsertEvaluation(ctx context.Context, evaluation Evaluation) (Evaluation, error) {
	result := d.db.WithContext(ctx).Create(&evaluation)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Evaluation{}, ErrAlreadyEvaluated
		}

		return Evaluation{}, result.Error
	}

	return evaluation, nil
}

func (d *SubmissionDAO) FindEvaluationsByHackathon(ctx context.Context, hackathonID uint) ([]Evaluation, error) {
	var evaluations []Evaluation

	result := d.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("final_score DESC, id").
		Find(&evaluations)
	if result.Error != nil {
		return nil, result.Error
	}

	return evaluations, nil
}

// PublishResults inserts the podium rows and completes the hackathon in one
// transaction, so a racing double-publish loses on the status flip.
func (d *SubmissionDAO) PublishResults(ctx context.Context, hackathonID uint, results []Result) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&Result{}).Where("hackathon_id = ?", hackathonID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrResultsPublished
		}

		update := tx.Model(&Hackathon{}).
			Where("id = ? AND status = ?", hackathonID, "evaluation").
			Update("status", "completed")
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return ErrStaleHackathonStatus
		}

		for i := range results {
			if err := tx.Create(&results[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (d *SubmissionDAO) FindResultsByHackathon(ctx context.Context, hackathonID uint) ([]Result, error) {
	var results []Result

	result := d.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("score DESC").
		Find(&results)
	if result.Error != nil {
		return nil, result.Error
	}

	return results, nil
}
