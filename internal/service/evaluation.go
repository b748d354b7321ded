package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/repository"
)

var (
	ErrAlreadyEvaluated = repository.ErrAlreadyEvaluated
	ErrResultsPublished = repository.ErrResultsPublished
	ErrNotInEvaluation  = errors.New("hackathon is not in the evaluation phase")
	ErrScoreOutOfRange  = errors.New("scores must be between 0 and 10")
	ErrNoEvaluations    = errors.New("no evaluations to rank")
	ErrResultsNotReady  = errors.New("results have not been published")
)

type EvaluationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Submission, error)
	CreateEvaluation(ctx context.Context, evaluation domain.Evaluation) (domain.Evaluation, error)
	FindEvaluationsByHackathon(ctx context.Context, hackathonID uint) ([]domain.Evaluation, error)
	PublishResults(ctx context.Context, hackathonID uint, results []domain.Result) error
	FindResultsByHackathon(ctx context.Context, hackathonID uint) ([]domain.Result, error)
}

type EvaluationHackathonRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Hackathon, error)
}

type LeaderboardCache interface {
	Get(ctx context.Context, hackathonID uint) ([]domain.Evaluation, bool)
	Set(ctx context.Context, hackathonID uint, evaluations []domain.Evaluation) error
	Invalidate(ctx context.Context, hackathonID uint) error
}

type EvaluationService struct {
	repo       EvaluationRepository
	hackathons EvaluationHackathonRepository
	cache      LeaderboardCache
}

func NewEvaluationService(
	repo EvaluationRepository,
	hackathons EvaluationHackathonRepository,
	cache LeaderboardCache,
) *EvaluationService {
	return &EvaluationService{
		repo:       repo,
		hackathons: hackathons,
		cache:      cache,
	}
}

// Evaluate scores one submission. One evaluation per submission; a second
// attempt hits the unique index and comes back as a conflict.
func (s *EvaluationService) Evaluate(ctx context.Context, evaluation domain.Evaluation, actor domain.User) (domain.Evaluation, error) {
	if !actor.IsAdmin() {
		return domain.Evaluation{}, ErrNotAdmin
	}
	if !scoreInRange(evaluation.Technical) || !scoreInRange(evaluation.Innovation) || !scoreInRange(evaluation.Presentation) {
		return domain.Evaluation{}, ErrScoreOutOfRange
	}

	submission, err := s.repo.FindByID(ctx, evaluation.SubmissionID)
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	hackathon, err := s.hackathons.FindByID(ctx, submission.HackathonID)
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("s.hackathons.FindByID -> %w", err)
	}
	if hackathon.Status != domain.HackathonEvaluation {
		return domain.Evaluation{}, ErrNotInEvaluation
	}

	evaluation.HackathonID = hackathon.ID
	evaluation.TeamID = submission.TeamID
	evaluation.ComputeFinalScore()

	created, err := s.repo.CreateEvaluation(ctx, evaluation)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyEvaluated) {
			return domain.Evaluation{}, ErrAlreadyEvaluated
		}

		return domain.Evaluation{}, fmt.Errorf("s.repo.CreateEvaluation -> %w", err)
	}

	if err := s.cache.Invalidate(ctx, hackathon.ID); err != nil {
		zap.L().Warn("leaderboard cache invalidation failed",
			zap.Uint("hackathon_id", hackathon.ID), zap.Error(err))
	}

	return created, nil
}

// Leaderboard returns evaluations ranked by final score, serving from cache
// when it can.
func (s *EvaluationService) Leaderboard(ctx context.Context, hackathonID uint) ([]domain.Evaluation, error) {
	if cached, ok := s.cache.Get(ctx, hackathonID); ok {
		return cached, nil
	}

	evaluations, err := s.repo.FindEvaluationsByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindEvaluationsByHackathon -> %w", err)
	}

	if err := s.cache.Set(ctx, hackathonID, evaluations); err != nil {
		zap.L().Warn("leaderboard cache write failed",
			zap.Uint("hackathon_id", hackathonID), zap.Error(err))
	}

	return evaluations, nil
}

// PublishResults freezes the podium from the current ranking and completes
// the hackathon. Publishing is one-shot; the transaction rejects a repeat.
func (s *EvaluationService) PublishResults(ctx context.Context, hackathonID uint, actor domain.User) ([]domain.Result, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAdmin
	}

	hackathon, err := s.hackathons.FindByID(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("s.hackathons.FindByID -> %w", err)
	}
	if !hackathon.IsCreator(actor.ID) {
		return nil, ErrNotCreator
	}
	if hackathon.Status != domain.HackathonEvaluation {
		return nil, ErrNotInEvaluation
	}

	evaluations, err := s.repo.FindEvaluationsByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindEvaluationsByHackathon -> %w", err)
	}
	if len(evaluations) == 0 {
		return nil, ErrNoEvaluations
	}

	results := make([]domain.Result, 0, len(domain.ResultPositions))
	for i, position := range domain.ResultPositions {
		if i >= len(evaluations) {
			break
		}
		results = append(results, domain.Result{
			HackathonID: hackathonID,
			TeamID:      evaluations[i].TeamID,
			Position:    position,
			Score:       evaluations[i].FinalScore,
		})
	}

	if err = s.repo.PublishResults(ctx, hackathonID, results); err != nil {
		if errors.Is(err, repository.ErrResultsPublished) {
			return nil, ErrResultsPublished
		}

		return nil, fmt.Errorf("s.repo.PublishResults -> %w", err)
	}

	if err := s.cache.Invalidate(ctx, hackathonID); err != nil {
		zap.L().Warn("leaderboard cache invalidation failed",
			zap.Uint("hackathon_id", hackathonID), zap.Error(err))
	}

	return results, nil
}

// Results returns the published podium. Visible to everyone once the
// hackathon is completed.
func (s *EvaluationService) Results(ctx context.Context, hackathonID uint) ([]domain.Result, error) {
	hackathon, err := s.hackathons.FindByID(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("s.hackathons.FindByID -> %w", err)
	}
	if hackathon.Status != domain.HackathonCompleted {
		return nil, ErrResultsNotReady
	}

	results, err := s.repo.FindResultsByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindResultsByHackathon -> %w", err)
	}

	return results, nil
}

func scoreInRange(score float64) bool {
	return score >= 0 && score <= 10
}
