package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/metrics"
	"github.com/eventra/eventra-api/internal/pkg/certpdf"
	"github.com/eventra/eventra-api/internal/pkg/mailer"
	"github.com/eventra/eventra-api/internal/repository"
)

var (
	ErrCertificateNotFound = repository.ErrCertificateNotFound
	ErrCertificateExists   = repository.ErrCertificateExists
	ErrEventNotCompleted   = errors.New("event is not completed")
	ErrNoAttendance        = errors.New("student has no attendance for this event")
	ErrNotCertificateOwner = errors.New("certificate belongs to another student")
	ErrCertificateRevoked  = errors.New("certificate has been revoked")
)

// CertRoleParticipation is the role recorded on manually issued event
// certificates, keeping their uniqueness key clear of scan-issued ones.
const CertRoleParticipation = "participation"

type CertificateRepository interface {
	Create(ctx context.Context, cert domain.Certificate) (domain.Certificate, error)
	FindBySerial(ctx context.Context, serial string) (domain.Certificate, error)
	FindByStudent(ctx context.Context, studentID uint) ([]domain.Certificate, error)
	Revoke(ctx context.Context, serial string) error
}

type CertificateUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type CertificateEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAttendances(ctx context.Context, eventID, studentID uint) ([]domain.Attendance, error)
}

type CertificateService struct {
	repo   CertificateRepository
	users  CertificateUserRepository
	events CertificateEventRepository
	pdf    *certpdf.Generator
	mailer mailer.Mailer
}

func NewCertificateService(
	repo CertificateRepository,
	users CertificateUserRepository,
	events CertificateEventRepository,
	pdf *certpdf.Generator,
	m mailer.Mailer,
) *CertificateService {
	return &CertificateService{
		repo:   repo,
		users:  users,
		events: events,
		pdf:    pdf,
		mailer: m,
	}
}

// IssueForAttendance mints a certificate for one attendance record and mails
// the PDF. Mail delivery is best-effort; a failed send is logged and counted,
// never surfaced to the scanner.
func (s *CertificateService) IssueForAttendance(ctx context.Context, attendance domain.Attendance) (domain.Certificate, error) {
	student, err := s.users.FindByID(ctx, attendance.StudentID)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	event, err := s.events.FindByID(ctx, attendance.EventID)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	serial := uuid.NewString()
	cert, err := s.repo.Create(ctx, domain.Certificate{
		Serial:       serial,
		EventID:      attendance.EventID,
		StudentID:    attendance.StudentID,
		Role:         attendance.Role,
		AttendanceID: attendance.ID,
		FileURL:      s.pdf.VerifyURL(serial),
	})
	if err != nil {
		if errors.Is(err, repository.ErrCertificateExists) {
			return domain.Certificate{}, ErrCertificateExists
		}

		return domain.Certificate{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	metrics.CertificatesIssued.Inc()

	s.mailCertificate(cert, student, event.Title)

	return cert, nil
}

// IssueForEvent is the organizer path: a participation certificate for a
// student who attended the event, independent of role slots.
func (s *CertificateService) IssueForEvent(ctx context.Context, eventID, studentID uint, actor domain.User) (domain.Certificate, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}
	if !event.IsOrganizer(actor.ID) {
		return domain.Certificate{}, ErrNotOrganizer
	}
	if event.Status != domain.EventStatusCompleted {
		return domain.Certificate{}, ErrEventNotCompleted
	}

	attendances, err := s.events.FindAttendances(ctx, eventID, studentID)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("s.events.FindAttendances -> %w", err)
	}
	if len(attendances) == 0 {
		return domain.Certificate{}, ErrNoAttendance
	}

	student, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return domain.Certificate{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	serial := uuid.NewString()
	cert, err := s.repo.Create(ctx, domain.Certificate{
		Serial:    serial,
		EventID:   eventID,
		StudentID: studentID,
		Role:      CertRoleParticipation,
		FileURL:   s.pdf.VerifyURL(serial),
	})
	if err != nil {
		if errors.Is(err, repository.ErrCertificateExists) {
			return domain.Certificate{}, ErrCertificateExists
		}

		return domain.Certificate{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	metrics.CertificatesIssued.Inc()

	s.mailCertificate(cert, student, event.Title)

	return cert, nil
}

// Verify looks up a serial for the public verification page. Unknown serials
// and revoked certificates are reported, not errored.
func (s *CertificateService) Verify(ctx context.Context, serial string) (domain.Verification, error) {
	cert, err := s.repo.FindBySerial(ctx, serial)
	if err != nil {
		if errors.Is(err, repository.ErrCertificateNotFound) {
			return domain.Verification{NotFound: true}, nil
		}

		return domain.Verification{}, fmt.Errorf("s.repo.FindBySerial -> %w", err)
	}

	student, err := s.users.FindByID(ctx, cert.StudentID)
	if err != nil {
		return domain.Verification{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}
	event, err := s.events.FindByID(ctx, cert.EventID)
	if err != nil {
		return domain.Verification{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	// Revoked certificates keep their fields in the response so the
	// verification page can still display who the certificate was for.
	return domain.Verification{
		Valid:       !cert.IsRevoked,
		Revoked:     cert.IsRevoked,
		Serial:      cert.Serial,
		StudentName: student.Name,
		EventTitle:  event.Title,
		Role:        cert.Role,
		IssuedAt:    cert.IssuedAt.Format("2006-01-02"),
	}, nil
}

// Revoke marks a certificate invalid. Revoking twice is a no-op.
func (s *CertificateService) Revoke(ctx context.Context, serial string, actor domain.User) error {
	if !actor.IsAdmin() {
		return ErrNotAdmin
	}

	cert, err := s.repo.FindBySerial(ctx, serial)
	if err != nil {
		return fmt.Errorf("s.repo.FindBySerial -> %w", err)
	}
	if cert.IsRevoked {
		return nil
	}

	if err = s.repo.Revoke(ctx, serial); err != nil {
		return fmt.Errorf("s.repo.Revoke -> %w", err)
	}
	metrics.CertificatesRevoked.Inc()

	return nil
}

func (s *CertificateService) ListByStudent(ctx context.Context, studentID uint) ([]domain.Certificate, error) {
	certs, err := s.repo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStudent -> %w", err)
	}

	return certs, nil
}

// Download regenerates the PDF for one of the student's own certificates.
func (s *CertificateService) Download(ctx context.Context, serial string, actor domain.User) ([]byte, error) {
	cert, err := s.repo.FindBySerial(ctx, serial)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindBySerial -> %w", err)
	}
	if cert.StudentID != actor.ID && !actor.IsAdmin() {
		return nil, ErrNotCertificateOwner
	}
	if cert.IsRevoked {
		return nil, ErrCertificateRevoked
	}

	student, err := s.users.FindByID(ctx, cert.StudentID)
	if err != nil {
		return nil, fmt.Errorf("s.users.FindByID -> %w", err)
	}
	event, err := s.events.FindByID(ctx, cert.EventID)
	if err != nil {
		return nil, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	pdf, err := s.pdf.Generate(certpdf.Input{
		Serial:      cert.Serial,
		StudentName: student.Name,
		EventTitle:  event.Title,
		Role:        cert.Role,
		IssuedAt:    cert.IssuedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("s.pdf.Generate -> %w", err)
	}

	return pdf, nil
}

func (s *CertificateService) mailCertificate(cert domain.Certificate, student domain.User, eventTitle string) {
	pdf, err := s.pdf.Generate(certpdf.Input{
		Serial:      cert.Serial,
		StudentName: student.Name,
		EventTitle:  eventTitle,
		Role:        cert.Role,
		IssuedAt:    cert.IssuedAt,
	})
	if err != nil {
		metrics.CertificateMailFailures.Inc()
		zap.L().Error("certificate pdf generation failed",
			zap.String("serial", cert.Serial), zap.Error(err))
		return
	}

	if err := s.mailer.SendCertificate(student.Email, student.Name, eventTitle, pdf); err != nil {
		metrics.CertificateMailFailures.Inc()
		zap.L().Warn("certificate mail delivery failed",
			zap.String("serial", cert.Serial), zap.String("to", student.Email), zap.Error(err))
	}
}
