package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/repository"
)

var (
	ErrSubmissionNotFound = repository.ErrSubmissionNotFound
	ErrSubmissionClosed   = errors.New("hackathon is not accepting submissions")
	ErrDeadlinePassed     = errors.New("submission deadline has passed")
	ErrPaymentDue         = errors.New("entry fee has not been paid")
)

type SubmissionRepository interface {
	Upsert(ctx context.Context, submission domain.Submission) (domain.Submission, error)
	FindByTeam(ctx context.Context, hackathonID, teamID uint) (domain.Submission, error)
	FindByHackathon(ctx context.Context, hackathonID uint) ([]domain.Submission, error)
}

type SubmissionTeamRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Hackathon, error)
	FindTeamByID(ctx context.Context, id uint) (domain.Team, error)
}

type SubmissionPaymentRepository interface {
	FindSuccessfulByTeam(ctx context.Context, hackathonID, teamID uint) (domain.Payment, error)
}

type SubmissionService struct {
	repo     SubmissionRepository
	teams    SubmissionTeamRepository
	payments SubmissionPaymentRepository
}

func NewSubmissionService(
	repo SubmissionRepository,
	teams SubmissionTeamRepository,
	payments SubmissionPaymentRepository,
) *SubmissionService {
	return &SubmissionService{
		repo:     repo,
		teams:    teams,
		payments: payments,
	}
}

// Submit creates or replaces the team's submission. Leader-only, inside the
// submission window, and behind the entry-fee gate when the hackathon
// charges one.
func (s *SubmissionService) Submit(ctx context.Context, submission domain.Submission, actor domain.User) (domain.Submission, error) {
	team, err := s.teams.FindTeamByID(ctx, submission.TeamID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.teams.FindTeamByID -> %w", err)
	}
	if !team.IsLeader(actor.ID) {
		return domain.Submission{}, ErrNotTeamLeader
	}

	hackathon, err := s.teams.FindByID(ctx, team.HackathonID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.teams.FindByID -> %w", err)
	}
	if hackathon.Status != domain.HackathonSubmissionOpen {
		return domain.Submission{}, ErrSubmissionClosed
	}
	if time.Now().After(hackathon.SubmissionDeadline) {
		return domain.Submission{}, ErrDeadlinePassed
	}

	if hackathon.PaymentRequired {
		if _, err := s.payments.FindSuccessfulByTeam(ctx, hackathon.ID, team.ID); err != nil {
			if errors.Is(err, repository.ErrPaymentNotFound) {
				return domain.Submission{}, ErrPaymentDue
			}

			return domain.Submission{}, fmt.Errorf("s.payments.FindSuccessfulByTeam -> %w", err)
		}
	}

	submission.HackathonID = hackathon.ID

	saved, err := s.repo.Upsert(ctx, submission)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.Upsert -> %w", err)
	}

	return saved, nil
}

func (s *SubmissionService) GetForTeam(ctx context.Context, hackathonID, teamID uint) (domain.Submission, error) {
	submission, err := s.repo.FindByTeam(ctx, hackathonID, teamID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.FindByTeam -> %w", err)
	}

	return submission, nil
}

func (s *SubmissionService) ListForHackathon(ctx context.Context, hackathonID uint, actor domain.User) ([]domain.Submission, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAdmin
	}

	submissions, err := s.repo.FindByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByHackathon -> %w", err)
	}

	return submissions, nil
}
