package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrCertificateExists   = errors.New("certificate already issued")
)

type Certificate struct {
	ID uint `gorm:"primaryKey"`

	Serial       string `gorm:"unique;not null"`
	EventID      uint   `gorm:"not null;uniqueIndex:uni_certificate_event_student_role"`
	StudentID    uint   `gorm:"not null;uniqueIndex:uni_certificate_event_student_role"`
	Role         string `gorm:"not null;uniqueIndex:uni_certificate_event_student_role"`
	AttendanceID uint
	FileURL      string
	IsRevoked    bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}

type CertificateDAO struct {
	db *gorm.DB
}

func NewCertificateDAO(db *gorm.DB) *CertificateDAO {
	return &CertificateDAO{
		db: db,
	}
}

func (d *CertificateDAO) Insert(ctx context.Context, cert Certificate) (Certificate, error) {
	result := d.db.WithContext(ctx).Create(&cert)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Certificate{}, ErrCertificateExists
		}

		return Certificate{}, result.Error
	}

	return cert, nil
}

func (d *CertificateDAO) FindBySerial(ctx context.Context, serial string) (Certificate, error) {
	var cert Certificate

	result := d.db.WithContext(ctx).First(&cert, "serial = ?", serial)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Certificate{}, ErrCertificateNotFound
		}

		return Certificate{}, result.Error
	}

	return cert, nil
}

func (d *CertificateDAO) FindByStudent(ctx context.Context, studentID uint) ([]Certificate, error) {
	var certs []Certificate

	result := d.db.WithContext(ctx).Where("student_id = ?", studentID).Find(&certs)
	if result.Error != nil {
		return nil, result.Error
	}

	return certs, nil
}

// Revoke is idempotent: revoking an already-revoked certificate touches the
// same terminal state again.
func (d *CertificateDAO) Revoke(ctx context.Context, serial string) error {
	result := d.db.WithContext(ctx).Model(&Certificate{}).
		Where("serial = ?", serial).
		Update("is_revoked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCertificateNotFound
	}

	return nil
}
