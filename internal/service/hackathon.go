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
	ErrHackathonNotFound          = repository.ErrHackathonNotFound
	ErrNotCreator                 = errors.New("user did not create this hackathon")
	ErrIllegalHackathonTransition = errors.New("illegal hackathon status transition")
	ErrTransitionTooEarly         = errors.New("transition date has not been reached")
	ErrInvalidTeamSize            = errors.New("invalid team size bounds")
	ErrInvalidHackathonDates      = errors.New("hackathon dates are out of order")
)

type HackathonRepository interface {
	Create(ctx context.Context, hackathon domain.Hackathon) (domain.Hackathon, error)
	FindByID(ctx context.Context, id uint) (domain.Hackathon, error)
	FindAll(ctx context.Context) ([]domain.Hackathon, error)
	UpdateStatus(ctx context.Context, id uint, from, to domain.HackathonStatus) error
}

type HackathonService struct {
	repo HackathonRepository
}

func NewHackathonService(repo HackathonRepository) *HackathonService {
	return &HackathonService{
		repo: repo,
	}
}

func (s *HackathonService) Create(ctx context.Context, hackathon domain.Hackathon, actor domain.User) (domain.Hackathon, error) {
	if !actor.IsAdmin() {
		return domain.Hackathon{}, ErrNotAdmin
	}
	if hackathon.TeamSizeMin < 1 || hackathon.TeamSizeMax < hackathon.TeamSizeMin {
		return domain.Hackathon{}, ErrInvalidTeamSize
	}
	if !datesOrdered(
		hackathon.RegistrationStart,
		hackathon.RegistrationDeadline,
		hackathon.HackathonStart,
		hackathon.SubmissionDeadline,
		hackathon.HackathonEnd,
	) {
		return domain.Hackathon{}, ErrInvalidHackathonDates
	}

	hackathon.CreatedByID = actor.ID

	created, err := s.repo.Create(ctx, hackathon)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *HackathonService) Get(ctx context.Context, id uint) (domain.Hackathon, error) {
	hackathon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return hackathon, nil
}

func (s *HackathonService) List(ctx context.Context) ([]domain.Hackathon, error) {
	hackathons, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return hackathons, nil
}

// Transition advances the hackathon one step along its lifecycle. The status
// write is conditional on the current status, so concurrent transitions
// cannot double-advance.
func (s *HackathonService) Transition(ctx context.Context, id uint, to domain.HackathonStatus, actor domain.User) (domain.Hackathon, error) {
	if !actor.IsAdmin() {
		return domain.Hackathon{}, ErrNotAdmin
	}

	hackathon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !hackathon.IsCreator(actor.ID) {
		return domain.Hackathon{}, ErrNotCreator
	}
	if !hackathon.CanTransition(to) {
		return domain.Hackathon{}, fmt.Errorf("%w: %s -> %s", ErrIllegalHackathonTransition, hackathon.Status, to)
	}

	if gate := hackathon.TransitionGate(to); !gate.IsZero() && time.Now().Before(gate) {
		return domain.Hackathon{}, fmt.Errorf("%w: not before %s", ErrTransitionTooEarly, gate.Format(time.RFC3339))
	}

	if err = s.repo.UpdateStatus(ctx, id, hackathon.Status, to); err != nil {
		if errors.Is(err, repository.ErrStaleHackathonStatus) {
			return domain.Hackathon{}, fmt.Errorf("%w: status changed underneath", ErrIllegalHackathonTransition)
		}

		return domain.Hackathon{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	hackathon.Status = to

	return hackathon, nil
}

func datesOrdered(dates ...time.Time) bool {
	for i := 1; i < len(dates); i++ {
		if dates[i].Before(dates[i-1]) {
			return false
		}
	}

	return true
}
