package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra/eventra-api/internal/domain"
)

var (
	leader  = domain.User{ID: 10, Role: domain.RoleStudent}
	invitee = domain.User{ID: 11, Role: domain.RoleStudent}
)

func newTeamService(repo *fakeHackathonRepo) *TeamService {
	return NewTeamService(repo, newFakeUserRepo(admin, student, leader, invitee))
}

func TestCreateTeam(t *testing.T) {
	t.Run("caller becomes leader and first member", func(t *testing.T) {
		repo := newFakeHackathonRepo()
		svc := newTeamService(repo)
		hackathon := seedHackathon(t, repo, domain.HackathonRegistrationOpen)

		team, err := svc.CreateTeam(context.Background(), hackathon.ID, "byte-me", leader)

		require.NoError(t, err)
		assert.Equal(t, leader.ID, team.LeaderID)
		assert.True(t, team.HasMember(leader.ID))
	})

	t.Run("registration must be open", func(t *testing.T) {
		repo := newFakeHackathonRepo()
		svc := newTeamService(repo)
		hackathon := seedHackathon(t, repo, domain.HackathonDraft)

		_, err := svc.CreateTeam(context.Background(), hackathon.ID, "byte-me", leader)

		assert.ErrorIs(t, err, ErrRegistrationClosed)
	})

	t.Run("team names are unique per hackathon", func(t *testing.T) {
		repo := newFakeHackathonRepo()
		svc := newTeamService(repo)
		hackathon := seedHackathon(t, repo, domain.HackathonRegistrationOpen)

		_, err := svc.CreateTeam(context.Background(), hackathon.ID, "byte-me", leader)
		require.NoError(t, err)

		_, err = svc.CreateTeam(context.Background(), hackathon.ID, "byte-me", invitee)
		assert.ErrorIs(t, err, ErrTeamNameTaken)
	})

	t.Run("one team per student", func(t *testing.T) {
		repo := newFakeHackathonRepo()
		svc := newTeamService(repo)
		hackathon := seedHackathon(t, repo, domain.HackathonRegistrationOpen)

		_, err := svc.CreateTeam(context.Background(), hackathon.ID, "byte-me", leader)
		require.NoError(t, err)

		_, err = svc.CreateTeam(context.Background(), hackathon.ID, "segfault", leader)
		assert.ErrorIs(t, err, ErrAlreadyInTeam)
	})
}

func TestInvite(t *testing.T) {
	setup := func(t *testing.T) (*fakeHackathonRepo, *TeamService, domain.Team) {
		t.Helper()

		repo := newFakeHackathonRepo()
		svc := newTeamService(repo)
		hackathon := seedHackathon(t, repo, domain.HackathonRegistrationOpen)
		team, err := svc.CreateTeam(context.Background(), hackathon.ID, "byte-me", leader)
		require.NoError(t, err)

		return repo, svc, team
	}

	t.Run("leader invites a student", func(t *testing.T) {
		_, svc, team := setup(t)

		invitation, err := svc.Invite(context.Background(), team.ID, invitee.ID, leader)

		require.NoError(t, err)
		assert.Equal(t, domain.InvitationPending, invitation.Status)
		assert.Equal(t, invitee.ID, invitation.ToID)
	})

	t.Run("leader only", func(t *testing.T) {
		_, svc, team := setup(t)

		_, err := svc.Invite(context.Background(), team.ID, invitee.ID, student)

		assert.ErrorIs(t, err, ErrNotTeamLeader)
	})

	t.Run("unknown invitee", func(t *testing.T) {
		_, svc, team := setup(t)

		_, err := svc.Invite(context.Background(), team.ID, 999, leader)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("invitee already on a team", func(t *testing.T) {
		_, svc, team := setup(t)

		_, err := svc.CreateTeam(context.Background(), team.HackathonID, "segfault", invitee)
		require.NoError(t, err)

		_, err = svc.Invite(context.Background(), team.ID, invitee.ID, leader)
		assert.ErrorIs(t, err, ErrInviteeInTeam)
	})

	t.Run("one pending invitation per invitee", func(t *testing.T) {
		_, svc, team := setup(t)

		_, err := svc.Invite(context.Background(), team.ID, invitee.ID, leader)
		require.NoError(t, err)

		_, err = svc.Invite(context.Background(), team.ID, invitee.ID, leader)
		assert.ErrorIs(t, err, ErrInvitationExists)
	})
}

func TestDecideInvitation(t *testing.T) {
	setup := func(t *testing.T) (*fakeHackathonRepo, *TeamService, domain.Invitation) {
		t.Helper()

		repo := newFakeHackathonRepo()
		svc := newTeamService(repo)
		hackathon := seedHackathon(t, repo, domain.HackathonRegistrationOpen)
		team, err := svc.CreateTeam(context.Background(), hackathon.ID, "byte-me", leader)
		require.NoError(t, err)
		invitation, err := svc.Invite(context.Background(), team.ID, invitee.ID, leader)
		require.NoError(t, err)

		return repo, svc, invitation
	}

	t.Run("accept joins the team", func(t *testing.T) {
		repo, svc, invitation := setup(t)

		accepted, err := svc.Accept(context.Background(), invitation.ID, invitee)

		require.NoError(t, err)
		assert.Equal(t, domain.InvitationAccepted, accepted.Status)

		team, err := repo.FindTeamByMember(context.Background(), invitation.HackathonID, invitee.ID)
		require.NoError(t, err)
		assert.Equal(t, invitation.TeamID, team.ID)
	})

	t.Run("only the invitee decides", func(t *testing.T) {
		_, svc, invitation := setup(t)

		_, err := svc.Accept(context.Background(), invitation.ID, student)

		assert.ErrorIs(t, err, ErrNotInvitee)
	})

	t.Run("accepting twice", func(t *testing.T) {
		_, svc, invitation := setup(t)

		_, err := svc.Accept(context.Background(), invitation.ID, invitee)
		require.NoError(t, err)

		_, err = svc.Accept(context.Background(), invitation.ID, invitee)
		assert.ErrorIs(t, err, ErrInvitationDecided)
	})

	t.Run("reject leaves the team unchanged", func(t *testing.T) {
		repo, svc, invitation := setup(t)

		rejected, err := svc.Reject(context.Background(), invitation.ID, invitee)

		require.NoError(t, err)
		assert.Equal(t, domain.InvitationRejected, rejected.Status)

		_, err = repo.FindTeamByMember(context.Background(), invitation.HackathonID, invitee.ID)
		assert.ErrorIs(t, err, ErrTeamNotFound)
	})

	t.Run("full team rejects the accept", func(t *testing.T) {
		repo := newFakeHackathonRepo()
		svc := newTeamService(repo)

		hackathon, err := repo.Create(context.Background(), domain.Hackathon{
			TeamSizeMin: 1,
			TeamSizeMax: 1,
			Status:      domain.HackathonRegistrationOpen,
			CreatedByID: admin.ID,
		})
		require.NoError(t, err)

		team, err := svc.CreateTeam(context.Background(), hackathon.ID, "solo", leader)
		require.NoError(t, err)
		invitation, err := svc.Invite(context.Background(), team.ID, invitee.ID, leader)
		require.NoError(t, err)

		_, err = svc.Accept(context.Background(), invitation.ID, invitee)
		assert.ErrorIs(t, err, ErrTeamFull)
	})
}
