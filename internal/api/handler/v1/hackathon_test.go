package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/service"
)

type fakeHackathonService struct {
	hackathon     domain.Hackathon
	transitionErr error
}

func (f *fakeHackathonService) Create(_ context.Context, hackathon domain.Hackathon, _ domain.User) (domain.Hackathon, error) {
	return hackathon, nil
}

func (f *fakeHackathonService) Get(_ context.Context, _ uint) (domain.Hackathon, error) {
	return f.hackathon, nil
}

func (f *fakeHackathonService) List(_ context.Context) ([]domain.Hackathon, error) {
	return nil, nil
}

func (f *fakeHackathonService) Transition(_ context.Context, _ uint, to domain.HackathonStatus, _ domain.User) (domain.Hackathon, error) {
	if f.transitionErr != nil {
		return domain.Hackathon{}, f.transitionErr
	}

	hackathon := f.hackathon
	hackathon.Status = to

	return hackathon, nil
}

type fakeTeamService struct{}

func (f *fakeTeamService) CreateTeam(_ context.Context, _ uint, _ string, _ domain.User) (domain.Team, error) {
	return domain.Team{}, nil
}

func (f *fakeTeamService) GetTeam(_ context.Context, _ uint) (domain.Team, error) {
	return domain.Team{}, nil
}

func (f *fakeTeamService) ListTeams(_ context.Context, _ uint) ([]domain.Team, error) {
	return nil, nil
}

func (f *fakeTeamService) Invite(_ context.Context, _, _ uint, _ domain.User) (domain.Invitation, error) {
	return domain.Invitation{}, nil
}

func (f *fakeTeamService) Accept(_ context.Context, _ uint, _ domain.User) (domain.Invitation, error) {
	return domain.Invitation{}, nil
}

func (f *fakeTeamService) Reject(_ context.Context, _ uint, _ domain.User) (domain.Invitation, error) {
	return domain.Invitation{}, nil
}

func (f *fakeTeamService) ListInvitations(_ context.Context, _ domain.User) ([]domain.Invitation, error) {
	return nil, nil
}

func (f *fakeTeamService) MyTeam(_ context.Context, _ uint, _ domain.User) (domain.Team, error) {
	return domain.Team{}, nil
}

func hackathonRouter(svc *fakeHackathonService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := &fakeUserService{users: map[uint]domain.User{
		1: {ID: 1, Role: domain.RoleAdmin},
	}}
	handler := NewHackathonHandler(svc, &fakeTeamService{}, users)

	router := gin.New()
	authed := router.Group("", asUser(1))
	authed.POST("/hackathons/:hackathonID/status", handler.HandleTransitionHackathon)

	return router
}

func TestHandleTransitionHackathon(t *testing.T) {
	t.Run("illegal transition is a bad request", func(t *testing.T) {
		router := hackathonRouter(&fakeHackathonService{transitionErr: service.ErrIllegalHackathonTransition})

		rec := postJSON(router, "/hackathons/1/status", `{"status":"submission-open"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("gating date not reached is a bad request", func(t *testing.T) {
		router := hackathonRouter(&fakeHackathonService{transitionErr: service.ErrTransitionTooEarly})

		rec := postJSON(router, "/hackathons/1/status", `{"status":"registration-open"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("someone else's hackathon", func(t *testing.T) {
		router := hackathonRouter(&fakeHackathonService{transitionErr: service.ErrNotCreator})

		rec := postJSON(router, "/hackathons/1/status", `{"status":"registration-open"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
