package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/metrics"
	"github.com/eventra/eventra-api/internal/repository"
)

var (
	ErrQRDisabled     = errors.New("qr check-in is not enabled for this event")
	ErrNoApprovedRole = errors.New("student has no approved role for this event")
)

type AttendanceEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAssignments(ctx context.Context, eventID, studentID uint) ([]domain.RoleAssignment, error)
	CreateAttendance(ctx context.Context, attendance domain.Attendance) (domain.Attendance, error)
	FindAttendances(ctx context.Context, eventID, studentID uint) ([]domain.Attendance, error)
}

// CertificateIssuer is what the scan flow needs from the certificate side.
type CertificateIssuer interface {
	IssueForAttendance(ctx context.Context, attendance domain.Attendance) (domain.Certificate, error)
}

type AttendanceService struct {
	repo   AttendanceEventRepository
	issuer CertificateIssuer
}

func NewAttendanceService(repo AttendanceEventRepository, issuer CertificateIssuer) *AttendanceService {
	return &AttendanceService{
		repo:   repo,
		issuer: issuer,
	}
}

// ScanResult reports a scan's outcome. A scan that only hits roles already
// marked comes back with Marked empty and AlreadyMarked filled in.
type ScanResult struct {
	Marked        []domain.Attendance `json:"marked"`
	AlreadyMarked []string            `json:"already_marked,omitempty"`
}

// Scan records attendance for every approved role the student holds at the
// event. Each newly marked role gets a certificate; roles marked on a
// previous scan are reported back instead of failing the request.
func (s *AttendanceService) Scan(ctx context.Context, eventID, studentID uint) (ScanResult, error) {
	metrics.AttendanceScans.Inc()

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return ScanResult{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if event.Status != domain.EventStatusLive {
		return ScanResult{}, ErrEventNotLive
	}
	if !event.QREnabled {
		return ScanResult{}, ErrQRDisabled
	}
	if event.HasEnded(time.Now()) {
		return ScanResult{}, ErrEventEnded
	}

	assignments, err := s.repo.FindAssignments(ctx, eventID, studentID)
	if err != nil {
		return ScanResult{}, fmt.Errorf("s.repo.FindAssignments -> %w", err)
	}

	var result ScanResult
	for _, a := range assignments {
		if a.Status != domain.AssignmentApproved {
			continue
		}

		attendance, err := s.repo.CreateAttendance(ctx, domain.Attendance{
			EventID:   eventID,
			StudentID: studentID,
			Role:      a.Role,
			Status:    domain.AttendancePresent,
		})
		if err != nil {
			if errors.Is(err, repository.ErrAttendanceExists) {
				result.AlreadyMarked = append(result.AlreadyMarked, a.Role)
				continue
			}

			return ScanResult{}, fmt.Errorf("s.repo.CreateAttendance -> %w", err)
		}

		if _, err := s.issuer.IssueForAttendance(ctx, attendance); err != nil {
			// Attendance is already on record; the certificate can be
			// re-issued by an organizer later.
			zap.L().Error("certificate issue failed after scan",
				zap.Uint("event_id", eventID),
				zap.Uint("student_id", studentID),
				zap.String("role", a.Role),
				zap.Error(err))
		}

		result.Marked = append(result.Marked, attendance)
	}

	if len(result.Marked) == 0 && len(result.AlreadyMarked) == 0 {
		return ScanResult{}, ErrNoApprovedRole
	}

	return result, nil
}

func (s *AttendanceService) ListForStudent(ctx context.Context, eventID, studentID uint) ([]domain.Attendance, error) {
	attendances, err := s.repo.FindAttendances(ctx, eventID, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAttendances -> %w", err)
	}

	return attendances, nil
}
