package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/repository"
)

var (
	ErrRegistrationClosed = errors.New("hackathon registration is not open")
	ErrTeamNotFound       = repository.ErrTeamNotFound
	ErrTeamNameTaken      = repository.ErrTeamNameTaken
	ErrAlreadyInTeam      = repository.ErrAlreadyInTeam
	ErrTeamFull           = repository.ErrTeamFull
	ErrInvitationNotFound = repository.ErrInvitationNotFound
	ErrInvitationDecided  = repository.ErrInvitationDecided
	ErrInvitationExists   = errors.New("a pending invitation already exists")
	ErrNotTeamLeader      = errors.New("only the team leader may do this")
	ErrNotInvitee         = errors.New("invitation is addressed to another user")
	ErrInviteeInTeam      = errors.New("invitee already belongs to a team")
)

type TeamRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Hackathon, error)
	CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error)
	FindTeamByID(ctx context.Context, id uint) (domain.Team, error)
	FindTeamsByHackathon(ctx context.Context, hackathonID uint) ([]domain.Team, error)
	FindTeamByMember(ctx context.Context, hackathonID, userID uint) (domain.Team, error)
	CreateInvitation(ctx context.Context, invitation domain.Invitation) (domain.Invitation, error)
	FindInvitationByID(ctx context.Context, id uint) (domain.Invitation, error)
	FindPendingInvitation(ctx context.Context, teamID, toID uint) (domain.Invitation, error)
	FindInvitationsForUser(ctx context.Context, userID uint) ([]domain.Invitation, error)
	AcceptInvitation(ctx context.Context, id uint, maxSize int) error
	RejectInvitation(ctx context.Context, id uint) error
}

type TeamUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type TeamService struct {
	repo  TeamRepository
	users TeamUserRepository
}

func NewTeamService(repo TeamRepository, users TeamUserRepository) *TeamService {
	return &TeamService{
		repo:  repo,
		users: users,
	}
}

// CreateTeam registers a new team with the caller as leader and first member.
// A student can belong to one team per hackathon; the membership unique index
// settles races between parallel joins.
func (s *TeamService) CreateTeam(ctx context.Context, hackathonID uint, name string, leader domain.User) (domain.Team, error) {
	hackathon, err := s.repo.FindByID(ctx, hackathonID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if hackathon.Status != domain.HackathonRegistrationOpen {
		return domain.Team{}, ErrRegistrationClosed
	}

	team, err := s.repo.CreateTeam(ctx, domain.Team{
		HackathonID: hackathonID,
		Name:        name,
		LeaderID:    leader.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTeamNameTaken):
			return domain.Team{}, ErrTeamNameTaken
		case errors.Is(err, repository.ErrAlreadyInTeam):
			return domain.Team{}, ErrAlreadyInTeam
		}

		return domain.Team{}, fmt.Errorf("s.repo.CreateTeam -> %w", err)
	}

	return team, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uint) (domain.Team, error) {
	team, err := s.repo.FindTeamByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindTeamByID -> %w", err)
	}

	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context, hackathonID uint) ([]domain.Team, error) {
	teams, err := s.repo.FindTeamsByHackathon(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindTeamsByHackathon -> %w", err)
	}

	return teams, nil
}

// Invite sends a team invitation. Leader-only, registration phase only, and
// at most one pending invitation per (team, invitee).
func (s *TeamService) Invite(ctx context.Context, teamID, toID uint, actor domain.User) (domain.Invitation, error) {
	team, err := s.repo.FindTeamByID(ctx, teamID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.repo.FindTeamByID -> %w", err)
	}
	if !team.IsLeader(actor.ID) {
		return domain.Invitation{}, ErrNotTeamLeader
	}

	hackathon, err := s.repo.FindByID(ctx, team.HackathonID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if hackathon.Status != domain.HackathonRegistrationOpen {
		return domain.Invitation{}, ErrRegistrationClosed
	}

	if _, err = s.users.FindByID(ctx, toID); err != nil {
		return domain.Invitation{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	if _, err = s.repo.FindTeamByMember(ctx, hackathon.ID, toID); err == nil {
		return domain.Invitation{}, ErrInviteeInTeam
	} else if !errors.Is(err, repository.ErrTeamNotFound) {
		return domain.Invitation{}, fmt.Errorf("s.repo.FindTeamByMember -> %w", err)
	}

	if _, err = s.repo.FindPendingInvitation(ctx, teamID, toID); err == nil {
		return domain.Invitation{}, ErrInvitationExists
	} else if !errors.Is(err, repository.ErrInvitationNotFound) {
		return domain.Invitation{}, fmt.Errorf("s.repo.FindPendingInvitation -> %w", err)
	}

	invitation, err := s.repo.CreateInvitation(ctx, domain.Invitation{
		HackathonID: hackathon.ID,
		TeamID:      teamID,
		FromID:      actor.ID,
		ToID:        toID,
	})
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.repo.CreateInvitation -> %w", err)
	}

	return invitation, nil
}

// Accept joins the invitee to the team. Capacity and one-team-per-student are
// enforced inside a transaction, so the second of two racing accepts loses.
func (s *TeamService) Accept(ctx context.Context, invitationID uint, actor domain.User) (domain.Invitation, error) {
	invitation, err := s.repo.FindInvitationByID(ctx, invitationID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.repo.FindInvitationByID -> %w", err)
	}
	if invitation.ToID != actor.ID {
		return domain.Invitation{}, ErrNotInvitee
	}

	hackathon, err := s.repo.FindByID(ctx, invitation.HackathonID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if hackathon.Status != domain.HackathonRegistrationOpen {
		return domain.Invitation{}, ErrRegistrationClosed
	}

	if err = s.repo.AcceptInvitation(ctx, invitationID, hackathon.TeamSizeMax); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvitationDecided):
			return domain.Invitation{}, ErrInvitationDecided
		case errors.Is(err, repository.ErrTeamFull):
			return domain.Invitation{}, ErrTeamFull
		case errors.Is(err, repository.ErrAlreadyInTeam):
			return domain.Invitation{}, ErrAlreadyInTeam
		}

		return domain.Invitation{}, fmt.Errorf("s.repo.AcceptInvitation -> %w", err)
	}

	invitation.Status = domain.InvitationAccepted

	return invitation, nil
}

func (s *TeamService) Reject(ctx context.Context, invitationID uint, actor domain.User) (domain.Invitation, error) {
	invitation, err := s.repo.FindInvitationByID(ctx, invitationID)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("s.repo.FindInvitationByID -> %w", err)
	}
	if invitation.ToID != actor.ID {
		return domain.Invitation{}, ErrNotInvitee
	}

	if err = s.repo.RejectInvitation(ctx, invitationID); err != nil {
		if errors.Is(err, repository.ErrInvitationDecided) {
			return domain.Invitation{}, ErrInvitationDecided
		}

		return domain.Invitation{}, fmt.Errorf("s.repo.RejectInvitation -> %w", err)
	}

	invitation.Status = domain.InvitationRejected

	return invitation, nil
}

func (s *TeamService) ListInvitations(ctx context.Context, actor domain.User) ([]domain.Invitation, error) {
	invitations, err := s.repo.FindInvitationsForUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindInvitationsForUser -> %w", err)
	}

	return invitations, nil
}

// MyTeam returns the caller's team for a hackathon, if any.
func (s *TeamService) MyTeam(ctx context.Context, hackathonID uint, actor domain.User) (domain.Team, error) {
	team, err := s.repo.FindTeamByMember(ctx, hackathonID, actor.ID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.FindTeamByMember -> %w", err)
	}

	return team, nil
}
