package repository

import (
	"context"
	"fmt"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/repository/dao"
)

var (
	ErrSubmissionNotFound = dao.ErrSubmissionNotFound
	ErrAlreadyEvaluated   = dao.ErrAlreadyEvaluated
	ErrResultsPublished   = dao.ErrResultsPublished
)

type SubmissionDAO interface {
	Upsert(ctx context.Context, submission dao.Submission) (dao.Submission, error)
	FindByID(ctx context.Context, id uint) (dao.Submission, error)
	FindByTeam(ctx context.Context, hackathonID, teamID uint) (dao.Submission, error)
	FindByHackathon(ctx context.Context, hackathonID uint) ([]dao.Submission, error)
	InsertEvaluation(ctx context.Context, evaluation dao.Evaluation) (dao.Evaluation, error)
	FindEvaluationsByHackathon(ctx context.Context, hackathonID uint) ([]dao.Evaluation, error)
	PublishResults(ctx context.Context, hackathonID uint, results []dao.Result) error
	FindResultsByHackathon(ctx context.Context, hackathonID uint) ([]dao.Result, error)
}

type SubmissionRepository struct {
	dao SubmissionDAO
}

func NewSubmissionRepository(dao SubmissionDAO) *SubmissionRepository {
	return &SubmissionRepository{
		dao: dao,
	}
}

func (r *SubmissionRepository) Upsert(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	saved, err := r.dao.Upsert(ctx, dao.Submission{
		HackathonID:      submission.HackathonID,
		TeamID:           submission.TeamID,
		GithubLink:       submission.GithubLink,
		DemoLink:         submission.DemoLink,
		PresentationLink: submission.PresentationLink,
		Description:      submission.Description,
	})
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return r.submissionDaoToDomain(saved), nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (domain.Submission, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.submissionDaoToDomain(found), nil
}

func (r *SubmissionRepository) FindByTeam(ctx context.Context, hackathonID, teamID uint) (domain.Submission, error) {
	found, err := r.dao.FindByTeam(ctx, hackathonID, teamID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.FindByTeam -> %w", err)
	}

	return r.submissionDaoToDomain(found), nil
}

func (r *SubmissionRepository) FindByHackathon(ctx context.Context, hackathonID uint) ([]domain.Submission, error) {
	found, err := r.dao.FindByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByHackathon -> %w", err)
	}

	submissions := make([]domain.Submission, 0, len(found))
	for _, s := range found {
		submissions = append(submissions, r.submissionDaoToDomain(s))
	}

	return submissions, nil
}

func (r *SubmissionRepository) CreateEvaluation(ctx context.Context, evaluation domain.Evaluation) (domain.Evaluation, error) {
	created, err := r.dao.InsertEvaluation(ctx, dao.Evaluation{
		HackathonID:  evaluation.HackathonID,
		SubmissionID: evaluation.SubmissionID,
		TeamID:       evaluation.TeamID,
		Technical:    evaluation.Technical,
		Innovation:   evaluation.Innovation,
		Presentation: evaluation.Presentation,
		FinalScore:   evaluation.FinalScore,
	})
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("r.dao.InsertEvaluation -> %w", err)
	}

	return r.evaluationDaoToDomain(created), nil
}

func (r *SubmissionRepository) FindEvaluationsByHackathon(ctx context.Context, hackathonID uint) ([]domain.Evaluation, error) {
	found, err := r.dao.FindEvaluationsByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindEvaluationsByHackathon -> %w", err)
	}

	evaluations := make([]domain.Evaluation, 0, len(found))
	for _, e := range found {
		evaluations = append(evaluations, r.evaluationDaoToDomain(e))
	}

	return evaluations, nil
}

func (r *SubmissionRepository) PublishResults(ctx context.Context, hackathonID uint, results []domain.Result) error {
	daoResults := make([]dao.Result, 0, len(results))
	for _, res := range results {
		daoResults = append(daoResults, dao.Result{
			HackathonID: res.HackathonID,
			TeamID:      res.TeamID,
			Position:    res.Position,
			Score:       res.Score,
		})
	}

	if err := r.dao.PublishResults(ctx, hackathonID, daoResults); err != nil {
		return fmt.Errorf("r.dao.PublishResults -> %w", err)
	}

	return nil
}

func (r *SubmissionRepository) FindResultsByHackathon(ctx context.Context, hackathonID uint) ([]domain.Result, error) {
	found, err := r.dao.FindResultsByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindResultsByHackathon -> %w", err)
	}

	results := make([]domain.Result, 0, len(found))
	for _, res := range found {
		results = append(results, domain.Result{
			ID:          res.ID,
			HackathonID: res.HackathonID,
			TeamID:      res.TeamID,
			Position:    res.Position,
			Score:       res.Score,
			CreatedAt:   res.CreatedAt,
		})
	}

	return results, nil
}

func (r *SubmissionRepository) submissionDaoToDomain(s dao.Submission) domain.Submission {
	return domain.Submission{
		ID:               s.ID,
		HackathonID:      s.HackathonID,
		TeamID:           s.TeamID,
		GithubLink:       s.GithubLink,
		DemoLink:         s.DemoLink,
		PresentationLink: s.PresentationLink,
		Description:      s.Description,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (r *SubmissionRepository) evaluationDaoToDomain(e dao.Evaluation) domain.Evaluation {
	return domain.Evaluation{
		ID:           e.ID,
		HackathonID:  e.HackathonID,
		SubmissionID: e.SubmissionID,
		TeamID:       e.TeamID,
		Technical:    e.Technical,
		Innovation:   e.Innovation,
		Presentation: e.Presentation,
		FinalScore:   e.FinalScore,
		CreatedAt:    e.CreatedAt,
	}
}
