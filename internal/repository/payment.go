package repository

import (
	"context"
	"fmt"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/repository/dao"
)

var ErrPaymentNotFound = dao.ErrPaymentNotFound

type PaymentDAO interface {
	Insert(ctx context.Context, payment dao.Payment) (dao.Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (dao.Payment, error)
	FindSuccessfulByTeam(ctx context.Context, hackathonID, teamID uint) (dao.Payment, error)
	SettleByOrderID(ctx context.Context, orderID, status string) (bool, error)
}

type PaymentRepository struct {
	dao PaymentDAO
}

func NewPaymentRepository(dao PaymentDAO) *PaymentRepository {
	return &PaymentRepository{
		dao: dao,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	created, err := r.dao.Insert(ctx, dao.Payment{
		HackathonID: payment.HackathonID,
		TeamID:      payment.TeamID,
		UserID:      payment.UserID,
		Amount:      payment.Amount,
		OrderID:     payment.OrderID,
		Receipt:     payment.Receipt,
		Status:      string(domain.PaymentPending),
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) (domain.Payment, error) {
	found, err := r.dao.FindByOrderID(ctx, orderID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.FindByOrderID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *PaymentRepository) FindSuccessfulByTeam(ctx context.Context, hackathonID, teamID uint) (domain.Payment, error) {
	found, err := r.dao.FindSuccessfulByTeam(ctx, hackathonID, teamID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.dao.FindSuccessfulByTeam -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// Settle marks a pending payment with its final status. The boolean reports
// whether this call performed the settlement (false on webhook redelivery).
func (r *PaymentRepository) Settle(ctx context.Context, orderID string, status domain.PaymentStatus) (bool, error) {
	settled, err := r.dao.SettleByOrderID(ctx, orderID, string(status))
	if err != nil {
		return false, fmt.Errorf("r.dao.SettleByOrderID -> %w", err)
	}

	return settled, nil
}

func (r *PaymentRepository) daoToDomain(p dao.Payment) domain.Payment {
	return domain.Payment{
		ID:          p.ID,
		HackathonID: p.HackathonID,
		TeamID:      p.TeamID,
		UserID:      p.UserID,
		Amount:      p.Amount,
		OrderID:     p.OrderID,
		Receipt:     p.Receipt,
		Status:      domain.PaymentStatus(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
