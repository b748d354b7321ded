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

type SubmissionService interface {
	Submit(ctx context.Context, submission domain.Submission, actor domain.User) (domain.Submission, error)
	GetForTeam(ctx context.Context, hackathonID, teamID uint) (domain.Submission, error)
	ListForHackathon(ctx context.Context, hackathonID uint, actor domain.User) ([]domain.Submission, error)
}

type EvaluationService interface {
	Evaluate(ctx context.Context, evaluation domain.Evaluation, actor domain.User) (domain.Evaluation, error)
	Leaderboard(ctx context.Context, hackathonID uint) ([]domain.Evaluation, error)
	PublishResults(ctx context.Context, hackathonID uint, actor domain.User) ([]domain.Result, error)
	Results(ctx context.Context, hackathonID uint) ([]domain.Result, error)
}

type SubmissionHandler struct {
	svc     SubmissionService
	evalSvc EvaluationService
	uSvc    UserService
}

func NewSubmissionHandler(svc SubmissionService, evalSvc EvaluationService, uSvc UserService) *SubmissionHandler {
	return &SubmissionHandler{
		svc:     svc,
		evalSvc: evalSvc,
		uSvc:    uSvc,
	}
}

// HandleSubmit godoc
// @Summary      Submit or update the team's project
// @Description  Leader only, while submissions are open. Re-submitting replaces the previous entry.
// @Tags         hackathons,submissions
// @Accept       json
// @Produce      json
// @Param        hackathonID  path      int                           true "hackathon ID"
// @Param        request      body      request.SubmitProjectRequest  true "request body"
// @Success      201          {object}  domain.Submission
// @Failure      400          {object}  response.Err
// @Failure      402          {object}  response.Err
// @Failure      403          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      409          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /hackathons/{hackathonID}/submissions [post]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleSubmit(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SubmitProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	submission, err := h.svc.Submit(ctx.Request.Context(), domain.Submission{
		TeamID:           req.TeamID,
		GithubLink:       req.GithubLink,
		DemoLink:         req.DemoLink,
		PresentationLink: req.PresentationLink,
		Description:      req.Description,
	}, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", req.TeamID))
		case errors.Is(err, service.ErrNotTeamLeader):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrPaymentDue):
			response.RenderErr(ctx, response.NewErr(http.StatusPaymentRequired, err.Error(), err))
		case errors.Is(err, service.ErrSubmissionClosed), errors.Is(err, service.ErrDeadlinePassed):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleSubmit -> h.svc.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, submission)
}

// HandleGetSubmissions godoc
// @Summary      List submissions of a hackathon
// @Description  Admin only.
// @Tags         hackathons,submissions
// @Produce      json
// @Param        hackathonID  path      int  true "hackathon ID"
// @Success      200          {array}   domain.Submission
// @Failure      403          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /hackathons/{hackathonID}/submissions [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleGetSubmissions(ctx *gin.Context) {
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

	submissions, err := h.svc.ListForHackathon(ctx.Request.Context(), hackathonID, user)
	if err != nil {
		if errors.Is(err, service.ErrNotAdmin) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetSubmissions -> h.svc.ListForHackathon -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, submissions)
}

// HandleGetTeamSubmission godoc
// @Summary      Get a team's submission
// @Tags         hackathons,submissions
// @Produce      json
// @Param        hackathonID  path      int  true "hackathon ID"
// @Param        teamID       path      int  true "team ID"
// @Success      200          {object}  domain.Submission
// @Failure      400          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /hackathons/{hackathonID}/teams/{teamID}/submission [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleGetTeamSubmission(ctx *gin.Context) {
	hackathonID, err := parseUintParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	teamID, err := parseUintParam(ctx, "teamID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	submission, err := h.svc.GetForTeam(ctx.Request.Context(), hackathonID, teamID)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("submission", "teamID", teamID))
			return
		}

		err = fmt.Errorf("v1.HandleGetTeamSubmission -> h.svc.GetForTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, submission)
}

// HandleEvaluate godoc
// @Summary      Score a submission
// @Description  Admin only, during the evaluation phase. One evaluation per submission.
// @Tags         hackathons,evaluations
// @Accept       json
// @Produce      json
// @Param        hackathonID  path      int                     true "hackathon ID"
// @Param        request      body      request.EvaluateRequest true "request body"
// @Success      201          {object}  domain.Evaluation
// @Failure      400          {object}  response.Err
// @Failure      403          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      409          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /hackathons/{hackathonID}/evaluations [post]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleEvaluate(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.EvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	evaluation, err := h.evalSvc.Evaluate(ctx.Request.Context(), domain.Evaluation{
		SubmissionID: req.SubmissionID,
		Technical:    req.Technical,
		Innovation:   req.Innovation,
		Presentation: req.Presentation,
	}, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("submission", "ID", req.SubmissionID))
		case errors.Is(err, service.ErrNotAdmin):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrScoreOutOfRange):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrNotInEvaluation), errors.Is(err, service.ErrAlreadyEvaluated):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleEvaluate -> h.evalSvc.Evaluate -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, evaluation)
}

// HandleGetLeaderboard godoc
// @Summary      Get the live leaderboard
// @Tags         hackathons,evaluations
// @Produce      json
// @Param        hackathonID  path      int  true "hackathon ID"
// @Success      200          {array}   domain.Evaluation
// @Failure      400          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /hackathons/{hackathonID}/leaderboard [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleGetLeaderboard(ctx *gin.Context) {
	hackathonID, err := parseUintParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	leaderboard, err := h.evalSvc.Leaderboard(ctx.Request.Context(), hackathonID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLeaderboard -> h.evalSvc.Leaderboard -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, leaderboard)
}

// HandlePublishResults godoc
// @Summary      Publish the podium and complete the hackathon
// @Description  Only the creating admin can publish, once, during evaluation.
// @Tags         hackathons,evaluations
// @Produce      json
// @Param        hackathonID  path      int  true "hackathon ID"
// @Success      201          {array}   domain.Result
// @Failure      403          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      409          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /hackathons/{hackathonID}/results [post]
// @Security     BearerAuth
func (h *SubmissionHandler) HandlePublishResults(ctx *gin.Context) {
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

	results, err := h.evalSvc.PublishResults(ctx.Request.Context(), hackathonID, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHackathonNotFound):
			response.RenderErr(ctx, response.ErrNotFound("hackathon", "ID", hackathonID))
		case errors.Is(err, service.ErrNotAdmin), errors.Is(err, service.ErrNotCreator):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrNotInEvaluation),
			errors.Is(err, service.ErrNoEvaluations),
			errors.Is(err, service.ErrResultsPublished):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandlePublishResults -> h.evalSvc.PublishResults -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, results)
}

// HandleGetResults godoc
// @Summary      Get the published podium
// @Tags         hackathons,evaluations
// @Produce      json
// @Param        hackathonID  path      int  true "hackathon ID"
// @Success      200          {array}   domain.Result
// @Failure      404          {object}  response.Err
// @Failure      409          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /hackathons/{hackathonID}/results [get]
// @Security     BearerAuth
func (h *SubmissionHandler) HandleGetResults(ctx *gin.Context) {
	hackathonID, err := parseUintParam(ctx, "hackathonID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	results, err := h.evalSvc.Results(ctx.Request.Context(), hackathonID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHackathonNotFound):
			response.RenderErr(ctx, response.ErrNotFound("hackathon", "ID", hackathonID))
		case errors.Is(err, service.ErrResultsNotReady):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleGetResults -> h.evalSvc.Results -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, results)
}
