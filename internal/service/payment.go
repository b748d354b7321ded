package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/metrics"
	"github.com/eventra/eventra-api/internal/payments"
	"github.com/eventra/eventra-api/internal/repository"
)

var (
	ErrPaymentNotFound    = repository.ErrPaymentNotFound
	ErrPaymentNotRequired = errors.New("hackathon charges no entry fee")
	ErrAlreadyPaid        = errors.New("entry fee already paid")
	ErrBadWebhook         = errors.New("webhook signature rejected")
)

type PaymentRepository interface {
	Create(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (domain.Payment, error)
	FindSuccessfulByTeam(ctx context.Context, hackathonID, teamID uint) (domain.Payment, error)
	Settle(ctx context.Context, orderID string, status domain.PaymentStatus) (bool, error)
}

type PaymentTeamRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Hackathon, error)
	FindTeamByID(ctx context.Context, id uint) (domain.Team, error)
}

type PaymentService struct {
	repo     PaymentRepository
	teams    PaymentTeamRepository
	provider payments.Provider
}

func NewPaymentService(repo PaymentRepository, teams PaymentTeamRepository, provider payments.Provider) *PaymentService {
	return &PaymentService{
		repo:     repo,
		teams:    teams,
		provider: provider,
	}
}

// CreateOrder opens a gateway order for the team's entry fee. Leader-only,
// one successful payment per team.
func (s *PaymentService) CreateOrder(ctx context.Context, teamID uint, actor domain.User) (domain.Payment, error) {
	team, err := s.teams.FindTeamByID(ctx, teamID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.teams.FindTeamByID -> %w", err)
	}
	if !team.IsLeader(actor.ID) {
		return domain.Payment{}, ErrNotTeamLeader
	}

	hackathon, err := s.teams.FindByID(ctx, team.HackathonID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.teams.FindByID -> %w", err)
	}
	if !hackathon.PaymentRequired {
		return domain.Payment{}, ErrPaymentNotRequired
	}

	if _, err = s.repo.FindSuccessfulByTeam(ctx, hackathon.ID, teamID); err == nil {
		return domain.Payment{}, ErrAlreadyPaid
	} else if !errors.Is(err, repository.ErrPaymentNotFound) {
		return domain.Payment{}, fmt.Errorf("s.repo.FindSuccessfulByTeam -> %w", err)
	}

	receipt := fmt.Sprintf("team-%d-%s", teamID, uuid.NewString()[:8])
	orderID, err := s.provider.CreateOrder(ctx, receipt, hackathon.EntryFee)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.provider.CreateOrder -> %w", err)
	}

	payment, err := s.repo.Create(ctx, domain.Payment{
		HackathonID: hackathon.ID,
		TeamID:      teamID,
		UserID:      actor.ID,
		Amount:      hackathon.EntryFee,
		OrderID:     orderID,
		Receipt:     receipt,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return payment, nil
}

// HandleWebhook settles an order from a gateway notification. Redeliveries
// are acknowledged without a second state change.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	orderID, status, err := s.provider.VerifyWebhook(body, signature)
	if err != nil {
		metrics.PaymentWebhooks.WithLabelValues("rejected").Inc()
		return fmt.Errorf("%w: %v", ErrBadWebhook, err)
	}

	final := domain.PaymentFailed
	if status == "paid" {
		final = domain.PaymentSuccess
	}

	settled, err := s.repo.Settle(ctx, orderID, final)
	if err != nil {
		metrics.PaymentWebhooks.WithLabelValues("error").Inc()
		return fmt.Errorf("s.repo.Settle -> %w", err)
	}
	if !settled {
		metrics.PaymentWebhooks.WithLabelValues("duplicate").Inc()
		zap.L().Info("payment webhook redelivery ignored", zap.String("order_id", orderID))
		return nil
	}

	metrics.PaymentWebhooks.WithLabelValues(string(final)).Inc()

	return nil
}

// GetStatus returns the team's payment standing for its hackathon.
func (s *PaymentService) GetStatus(ctx context.Context, teamID uint, actor domain.User) (domain.Payment, error) {
	team, err := s.teams.FindTeamByID(ctx, teamID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.teams.FindTeamByID -> %w", err)
	}
	if !team.HasMember(actor.ID) && !team.IsLeader(actor.ID) && !actor.IsAdmin() {
		return domain.Payment{}, ErrNotTeamLeader
	}

	payment, err := s.repo.FindSuccessfulByTeam(ctx, team.HackathonID, teamID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("s.repo.FindSuccessfulByTeam -> %w", err)
	}

	return payment, nil
}
