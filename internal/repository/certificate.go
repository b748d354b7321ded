package repository

import (
	"context"
	"fmt"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/repository/dao"
)

var (
	ErrCertificateNotFound = dao.ErrCertificateNotFound
	ErrCertificateExists   = dao.ErrCertificateExists
)

type CertificateDAO interface {
	Insert(ctx context.Context, cert dao.Certificate) (dao.Certificate, error)
	FindBySerial(ctx context.Context, serial string) (dao.Certificate, error)
	FindByStudent(ctx context.Context, studentID uint) ([]dao.Certificate, error)
	Revoke(ctx context.Context, serial string) error
}

type CertificateRepository struct {
	dao CertificateDAO
}

func NewCertificateRepository(dao CertificateDAO) *CertificateRepository {
	return &CertificateRepository{
		dao: dao,
	}
}

func (r *CertificateRepository) Create(ctx context.Context, cert domain.Certificate) (domain.Certificate, error) {
	created, err := r.dao.Insert(ctx, dao.Certificate{
		Serial:       cert.Serial,
		EventID:      cert.EventID,
		StudentID:    cert.StudentID,
		Role:         cert.Role,
		AttendanceID: cert.AttendanceID,
		FileURL:      cert.FileURL,
	})
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CertificateRepository) FindBySerial(ctx context.Context, serial string) (domain.Certificate, error) {
	found, err := r.dao.FindBySerial(ctx, serial)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("r.dao.FindBySerial -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CertificateRepository) FindByStudent(ctx context.Context, studentID uint) ([]domain.Certificate, error) {
	found, err := r.dao.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudent -> %w", err)
	}

	certs := make([]domain.Certificate, 0, len(found))
	for _, c := range found {
		certs = append(certs, r.daoToDomain(c))
	}

	return certs, nil
}

func (r *CertificateRepository) Revoke(ctx context.Context, serial string) error {
	if err := r.dao.Revoke(ctx, serial); err != nil {
		return fmt.Errorf("r.dao.Revoke -> %w", err)
	}

	return nil
}

func (r *CertificateRepository) daoToDomain(c dao.Certificate) domain.Certificate {
	return domain.Certificate{
		ID:           c.ID,
		Serial:       c.Serial,
		EventID:      c.EventID,
		StudentID:    c.StudentID,
		Role:         c.Role,
		AttendanceID: c.AttendanceID,
		FileURL:      c.FileURL,
		IsRevoked:    c.IsRevoked,
		IssuedAt:     c.CreatedAt,
	}
}
