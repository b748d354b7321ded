package repository

import (
	"context"
	"fmt"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/repository/dao"
)

var (
	ErrHackathonNotFound    = dao.ErrHackathonNotFound
	ErrStaleHackathonStatus = dao.ErrStaleHackathonStatus
	ErrTeamNotFound         = dao.ErrTeamNotFound
	ErrTeamNameTaken        = dao.ErrTeamNameTaken
	ErrAlreadyInTeam        = dao.ErrAlreadyInTeam
	ErrTeamFull             = dao.ErrTeamFull
	ErrInvitationNotFound   = dao.ErrInvitationNotFound
	ErrInvitationDecided    = dao.ErrInvitationDecided
)

type HackathonDAO interface {
	Insert(ctx context.Context, hackathon dao.Hackathon) (dao.Hackathon, error)
	FindByID(ctx context.Context, id uint) (dao.Hackathon, error)
	FindAll(ctx context.Context) ([]dao.Hackathon, error)
	UpdateStatus(ctx context.Context, id uint, from, to string) error
	InsertTeam(ctx context.Context, team dao.Team) (dao.Team, error)
	FindTeamByID(ctx context.Context, id uint) (dao.Team, error)
	FindTeamsByHackathon(ctx context.Context, hackathonID uint) ([]dao.Team, error)
	FindTeamByMember(ctx context.Context, hackathonID, userID uint) (dao.Team, error)
	InsertInvitation(ctx context.Context, invitation dao.Invitation) (dao.Invitation, error)
	FindInvitationByID(ctx context.Context, id uint) (dao.Invitation, error)
	FindPendingInvitation(ctx context.Context, teamID, toID uint) (dao.Invitation, error)
	FindInvitationsForUser(ctx context.Context, userID uint) ([]dao.Invitation, error)
	AcceptInvitation(ctx context.Context, id uint, maxSize int) error
	RejectInvitation(ctx context.Context, id uint) error
}

type HackathonRepository struct {
	dao HackathonDAO
}

func NewHackathonRepository(dao HackathonDAO) *HackathonRepository {
	return &HackathonRepository{
		dao: dao,
	}
}

func (r *HackathonRepository) Create(ctx context.Context, hackathon domain.Hackathon) (domain.Hackathon, error) {
	created, err := r.dao.Insert(ctx, dao.Hackathon{
		Title:                hackathon.Title,
		Description:          hackathon.Description,
		TeamSizeMin:          hackathon.TeamSizeMin,
		TeamSizeMax:          hackathon.TeamSizeMax,
		RegistrationStart:    hackathon.RegistrationStart,
		RegistrationDeadline: hackathon.RegistrationDeadline,
		HackathonStart:       hackathon.HackathonStart,
		HackathonEnd:         hackathon.HackathonEnd,
		SubmissionDeadline:   hackathon.SubmissionDeadline,
		Status:               string(domain.HackathonDraft),
		PaymentRequired:      hackathon.PaymentRequired,
		EntryFee:             hackathon.EntryFee,
		CreatedByID:          hackathon.CreatedByID,
	})
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.hackathonDaoToDomain(created), nil
}

func (r *HackathonRepository) FindByID(ctx context.Context, id uint) (domain.Hackathon, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.hackathonDaoToDomain(found), nil
}

func (r *HackathonRepository) FindAll(ctx context.Context) ([]domain.Hackathon, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	hackathons := make([]domain.Hackathon, 0, len(found))
	for _, h := range found {
		hackathons = append(hackathons, r.hackathonDaoToDomain(h))
	}

	return hackathons, nil
}

func (r *HackathonRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.HackathonStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(from), string(to)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *HackathonRepository) CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := r.dao.InsertTeam(ctx, dao.Team{
		HackathonID: team.HackathonID,
		Name:        team.Name,
		LeaderID:    team.LeaderID,
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.InsertTeam -> %w", err)
	}

	return r.teamDaoToDomain(created), nil
}

func (r *HackathonRepository) FindTeamByID(ctx context.Context, id uint) (domain.Team, error) {
	found, err := r.dao.FindTeamByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindTeamByID -> %w", err)
	}

	return r.teamDaoToDomain(found), nil
}

func (r *HackathonRepository) FindTeamsByHackathon(ctx context.Context, hackathonID uint) ([]domain.Team, error) {
	found, err := r.dao.FindTeamsByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTeamsByHackathon -> %w", err)
	}

	teams := make([]domain.Team, 0, len(found))
	for _, t := range found {
		teams = append(teams, r.teamDaoToDomain(t))
	}

	return teams, nil
}

func (r *HackathonRepository) FindTeamByMember(ctx context.Context, hackathonID, userID uint) (domain.Team, error) {
	found, err := r.dao.FindTeamByMember(ctx, hackathonID, userID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindTeamByMember -> %w", err)
	}

	return r.teamDaoToDomain(found), nil
}

func (r *HackathonRepository) CreateInvitation(ctx context.Context, invitation domain.Invitation) (domain.Invitation, error) {
	created, err := r.dao.InsertInvitation(ctx, dao.Invitation{
		HackathonID: invitation.HackathonID,
		TeamID:      invitation.TeamID,
		FromID:      invitation.FromID,
		ToID:        invitation.ToID,
		Status:      string(domain.InvitationPending),
	})
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("r.dao.InsertInvitation -> %w", err)
	}

	return r.invitationDaoToDomain(created), nil
}

func (r *HackathonRepository) FindInvitationByID(ctx context.Context, id uint) (domain.Invitation, error) {
	found, err := r.dao.FindInvitationByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("r.dao.FindInvitationByID -> %w", err)
	}

	return r.invitationDaoToDomain(found), nil
}

func (r *HackathonRepository) FindPendingInvitation(ctx context.Context, teamID, toID uint) (domain.Invitation, error) {
	found, err := r.dao.FindPendingInvitation(ctx, teamID, toID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("r.dao.FindPendingInvitation -> %w", err)
	}

	return r.invitationDaoToDomain(found), nil
}

func (r *HackathonRepository) FindInvitationsForUser(ctx context.Context, userID uint) ([]domain.Invitation, error) {
	found, err := r.dao.FindInvitationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindInvitationsForUser -> %w", err)
	}

	invitations := make([]domain.Invitation, 0, len(found))
	for _, i := range found {
		invitations = append(invitations, r.invitationDaoToDomain(i))
	}

	return invitations, nil
}

func (r *HackathonRepository) AcceptInvitation(ctx context.Context, id uint, maxSize int) error {
	if err := r.dao.AcceptInvitation(ctx, id, maxSize); err != nil {
		return fmt.Errorf("r.dao.AcceptInvitation -> %w", err)
	}

	return nil
}

func (r *HackathonRepository) RejectInvitation(ctx context.Context, id uint) error {
	if err := r.dao.RejectInvitation(ctx, id); err != nil {
		return fmt.Errorf("r.dao.RejectInvitation -> %w", err)
	}

	return nil
}

func (r *HackathonRepository) hackathonDaoToDomain(h dao.Hackathon) domain.Hackathon {
	return domain.Hackathon{
		ID:                   h.ID,
		Title:                h.Title,
		Description:          h.Description,
		TeamSizeMin:          h.TeamSizeMin,
		TeamSizeMax:          h.TeamSizeMax,
		RegistrationStart:    h.RegistrationStart,
		RegistrationDeadline: h.RegistrationDeadline,
		HackathonStart:       h.HackathonStart,
		HackathonEnd:         h.HackathonEnd,
		SubmissionDeadline:   h.SubmissionDeadline,
		Status:               domain.HackathonStatus(h.Status),
		PaymentRequired:      h.PaymentRequired,
		EntryFee:             h.EntryFee,
		CreatedByID:          h.CreatedByID,
		CreatedAt:            h.CreatedAt,
		UpdatedAt:            h.UpdatedAt,
	}
}

func (r *HackathonRepository) teamDaoToDomain(t dao.Team) domain.Team {
	members := make([]domain.User, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, domain.User{
			ID:    m.User.ID,
			Email: m.User.Email,
			Name:  m.User.Name,
			Role:  m.User.Role,
		})
	}

	return domain.Team{
		ID:          t.ID,
		HackathonID: t.HackathonID,
		Name:        t.Name,
		LeaderID:    t.LeaderID,
		Members:     members,
		CreatedAt:   t.CreatedAt,
	}
}

func (r *HackathonRepository) invitationDaoToDomain(i dao.Invitation) domain.Invitation {
	return domain.Invitation{
		ID:          i.ID,
		HackathonID: i.HackathonID,
		TeamID:      i.TeamID,
		FromID:      i.FromID,
		ToID:        i.ToID,
		Status:      domain.InvitationStatus(i.Status),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
