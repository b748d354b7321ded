package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

type Payment struct {
	ID uint `gorm:"primaryKey"`

	HackathonID uint   `gorm:"not null;index"`
	TeamID      uint   `gorm:"not null;index"`
	UserID      uint   `gorm:"not null"`
	Amount      int64  `gorm:"not null"`
	OrderID     string `gorm:"unique;not null"`
	Receipt     string `gorm:"not null"`
	Status      string `gorm:"not null;default:'pending'"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{
		db: db,
	}
}

func (d *PaymentDAO) Insert(ctx context.Context, payment Payment) (Payment, error) {
	result := d.db.WithContext(ctx).Create(&payment)
	if result.Error != nil {
		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindByOrderID(ctx context.Context, orderID string) (Payment, error) {
	var payment Payment

	result := d.db.WithContext(ctx).First(&payment, "order_id = ?", orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindSuccessfulByTeam(ctx context.Context, hackathonID, teamID uint) (Payment, error) {
	var payment Payment

	result := d.db.WithContext(ctx).
		Where("hackathon_id = ? AND team_id = ? AND status = ?", hackathonID, teamID, "success").
		First(&payment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

// SettleByOrderID marks a pending payment success or failed. Settling an
// already-settled payment affects no rows, which makes webhook redelivery
// idempotent.
func (d *PaymentDAO) SettleByOrderID(ctx context.Context, orderID, status string) (bool, error) {
	result := d.db.WithContext(ctx).Model(&Payment{}).
		Where("order_id = ? AND status = ?", orderID, "pending").
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
