package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra/eventra-api/internal/api/handler/v1/request"
	"github.com/eventra/eventra-api/internal/api/handler/v1/response"
	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/service"
)

type HackathonService interface {
	Create(ctx context.Context, hackathon domain.Hackathon, actor domain.User) (domain.Hackathon, error)
	Get(ctx context.Context, id uint) (domain.Hackathon, error)
	List(ctx context.Context) ([]domain.Hackathon, error)
	Transition(ctx context.Context, id uint, to domain.HackathonStatus, actor domain.User) (domain.Hackathon, error)
}

type TeamService interface {
	CreateTeam(ctx context.Context, hackathonID uint, name string, leader domain.User) (domain.Team, error)
	GetTeam(ctx context.Context, id uint) (domain.Team, error)
	ListTeams(ctx context.Context, hackathonID uint) ([]domain.Team, error)
	Invite(ctx context.Context, teamID, toID uint, actor domain.User) (domain.Invitation, error)
	Accept(ctx context.Context, invitationID uint, actor domain.User) (domain.Invitation, error)
	Reject(ctx context.Context, invitationID uint, actor domain.User) (domain.Invitation, error)
	ListInvitations(ctx context.Context, actor domain.User) ([]domain.Invitation, error)
	MyTeam(ctx context.Context, hackathonID uint, actor domain.User) (domain.Team, error)
}

type HackathonHandler struct {
	svc     HackathonService
	teamSvc TeamService
	uSvc    UserService
}

func NewHackathonHandler(svc HackathonService, teamSvc TeamService, uSvc UserService) *HackathonHandler {
	return &HackathonHandler{
		svc:     svc,
		teamSvc: teamSvc,
		uSvc:    uSvc,
	}
}

// HandleCreateHackathon godoc
// @Summary      Create a hackathon
// @Description  Creates a draft hackathon. Admin only.
// @Tags         hackathons
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateHackathonRequest true "request body"
// @Success      201      {object}  domain.Hackathon
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /hackathons [post]
// @Security     BearerAuth
func (h *HackathonHandler) HandleCreateHackathon(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateHackathonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	hackathon, err := h.svc.Create(ctx.Request.Context(), domain.Hackathon{
		Title:                req.Title,
		Description:          req.Description,
		TeamSizeMin:          req.TeamSizeMin,
		TeamSizeMax:          req.TeamSizeMax,
		RegistrationStart:    req.RegistrationStart,
		RegistrationDeadline: req.RegistrationDeadline,
		HackathonStart:       req.HackathonStart,
		HackathonEnd:         req.HackathonEnd,
		SubmissionDeadline:   req.SubmissionDeadline,
		PaymentRequired:      req.PaymentRequired,
		EntryFee:             req.EntryFee,
	}, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidTeamSize), errors.Is(err, service.ErrInvalidHackathonDates):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateHackathon -> h.svc.Create -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, hackathon)
}

// HandleGetHackathons godoc
// @Summary      List all hackathons
// @Tags         hackathons
// @Produce      json
// @Success      200  {array}   domain.Hackathon
// @Failure      500  {object}  response.Err
// @Router       /hackathons [get]
// @Security     BearerAuth
func (h *HackathonHandler) HandleGetHackathons(ctx *gin.Context) {
	hackathons, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetHackathons -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, hackathons)
}

// HandleGetHackathon godoc
// @Summary      Get a hackathon by ID
// @Tags         hackathons
// @Produce      json
// @Param        hackathonID  path      int  true "hackathon ID"
// @Success      200          {object}  domain.Hackathon
// @Failure      400          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /hackathons/{hackathonID} [get]
// @Security     BearerAuth
func (h *HackathonHandler) HandleGetHackathon(ctx *gin.Context) {
	hackathonID, err := parseUintParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	hackathon, err := h.svc.Get(ctx.Request.Context(), hackathonID)
	if err != nil {
		if errors.Is(err, service.ErrHackathonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("hackathon", "ID", hackathonID))
			return
		}

		err = fmt.Errorf("v1.HandleGetHackathon -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, hackathon)
}

// HandleTransitionHackathon godoc
// @Summary      Advance a hackathon's lifecycle status
// @Description  Only the creating admin can advance, one step at a time, once the gating date has passed.
// @Tags         hackathons
// @Accept       json
// @Produce      json
// @Param        hackathonID  path      int                                 true "hackathon ID"
// @Param        request      body      request.TransitionHackathonRequest  true "request body"
// @Success      200          {object}  domain.Hackathon
// @Failure      400          {object}  response.Err
// @Failure      403          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /hackathons/{hackathonID}/status [post]
// @Security     BearerAuth
func (h *HackathonHandler) HandleTransitionHackathon(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	hackathonID, err := parseUintParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.TransitionHackathonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	hackathon, err := h.svc.Transition(ctx.Request.Context(), hackathonID, domain.HackathonStatus(req.Status), user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHackathonNotFound):
			response.RenderErr(ctx, response.ErrNotFound("hackathon", "ID", hackathonID))
		case errors.Is(err, service.ErrNotAdmin), errors.Is(err, service.ErrNotCreator):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrIllegalHackathonTransition), errors.Is(err, service.ErrTransitionTooEarly):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleTransitionHackathon -> h.svc.Transition -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, hackathon)
}

// HandleCreateTeam godoc
// @Summary      Create a team
// @Description  The caller becomes leader and first member. One team per student per hackathon.
// @Tags         hackathons,teams
// @Accept       json
// @Produce      json
// @Param        hackathonID  path      int                       true "hackathon ID"
// @Param        request      body      request.CreateTeamRequest true "request body"
// @Success      201          {object}  domain.Team
// @Failure      400          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      409          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /hackathons/{hackathonID}/teams [post]
// @Security     BearerAuth
func (h *HackathonHandler) HandleCreateTeam(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	hackathonID, err := parseUintParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.teamSvc.CreateTeam(ctx.Request.Context(), hackathonID, req.Name, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHackathonNotFound):
			response.RenderErr(ctx, response.ErrNotFound("hackathon", "ID", hackathonID))
		case errors.Is(err, service.ErrRegistrationClosed),
			errors.Is(err, service.ErrTeamNameTaken),
			errors.Is(err, service.ErrAlreadyInTeam):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCreateTeam -> h.teamSvc.CreateTeam -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// HandleGetTeams godoc
// @Summary      List teams of a hackathon
// @Tags         hackathons,teams
// @Produce      json
// @Param        hackathonID  path      int  true "hackathon ID"
// @Success      200          {array}   domain.Team
// @Failure      400          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /hackathons/{hackathonID}/teams [get]
// @Security     BearerAuth
func (h *HackathonHandler) HandleGetTeams(ctx *gin.Context) {
	hackathonID, err := parseUintParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	teams, err := h.teamSvc.ListTeams(ctx.Request.Context(), hackathonID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetTeams -> h.teamSvc.ListTeams -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// HandleGetMyTeam godoc
// @Summary      Get the caller's team for a hackathon
// @Tags         hackathons,teams
// @Produce      json
// @Param        hackathonID  path      int  true "hackathon ID"
// @Success      200          {object}  domain.Team
// @Failure      400          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /hackathons/{hackathonID}/teams/mine [get]
// @Security     BearerAuth
func (h *HackathonHandler) HandleGetMyTeam(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	hackathonID, err := parseUintParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	team, err := h.teamSvc.MyTeam(ctx.Request.Context(), hackathonID, user)
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("team", "userID", user.ID))
			return
		}

		err = fmt.Errorf("v1.HandleGetMyTeam -> h.teamSvc.MyTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// HandleInvite godoc
// @Summary      Invite a student to the team
// @Description  Leader only, during registration. One pending invitation per invitee.
// @Tags         hackathons,teams
// @Accept       json
// @Produce      json
// @Param        teamID   path      int                   true "team ID"
// @Param        request  body      request.InviteRequest true "request body"
// @Success      201      {object}  domain.Invitation
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /teams/{teamID}/invitations [post]
// @Security     BearerAuth
func (h *HackathonHandler) HandleInvite(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	teamID, err := parseUintParam(ctx, "teamID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.InviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	invitation, err := h.teamSvc.Invite(ctx.Request.Context(), teamID, req.UserID, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", req.UserID))
		case errors.Is(err, service.ErrNotTeamLeader):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrRegistrationClosed),
			errors.Is(err, service.ErrInviteeInTeam),
			errors.Is(err, service.ErrInvitationExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleInvite -> h.teamSvc.Invite -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, invitation)
}

// HandleGetInvitations godoc
// @Summary      List invitations addressed to the caller
// @Tags         teams
// @Produce      json
// @Success      200  {array}   domain.Invitation
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /invitations [get]
// @Security     BearerAuth
func (h *HackathonHandler) HandleGetInvitations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	invitations, err := h.teamSvc.ListInvitations(ctx.Request.Context(), user)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetInvitations -> h.teamSvc.ListInvitations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invitations)
}

// HandleDecideInvitation godoc
// @Summary      Accept or reject an invitation
// @Tags         teams
// @Produce      json
// @Param        invitationID  path      int     true  "invitation ID"
// @Param        decision      query     string  true  "accept or reject"
// @Success      200           {object}  domain.Invitation
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      409           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /invitations/{invitationID} [post]
// @Security     BearerAuth
func (h *HackathonHandler) HandleDecideInvitation(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	invitationID, err := parseUintParam(ctx, "invitationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var invitation domain.Invitation
	switch decision := ctx.Query("decision"); decision {
	case "accept":
		invitation, err = h.teamSvc.Accept(ctx.Request.Context(), invitationID, user)
	case "reject":
		invitation, err = h.teamSvc.Reject(ctx.Request.Context(), invitationID, user)
	default:
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown decision %q", decision)))
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("invitation", "ID", invitationID))
		case errors.Is(err, service.ErrNotInvitee):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvitationDecided),
			errors.Is(err, service.ErrRegistrationClosed),
			errors.Is(err, service.ErrTeamFull),
			errors.Is(err, service.ErrAlreadyInTeam):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleDecideInvitation -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, invitation)
}
