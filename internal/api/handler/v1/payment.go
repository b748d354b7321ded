package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra/eventra-api/internal/api/handler/v1/response"
	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/service"
)

type PaymentService interface {
	CreateOrder(ctx context.Context, teamID uint, actor domain.User) (domain.Payment, error)
	HandleWebhook(ctx context.Context, body []byte, signature string) error
	GetStatus(ctx context.Context, teamID uint, actor domain.User) (domain.Payment, error)
}

type PaymentHandler struct {
	svc  PaymentService
	uSvc UserService
}

func NewPaymentHandler(svc PaymentService, uSvc UserService) *PaymentHandler {
	return &PaymentHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateOrder godoc
// @Summary      Open a payment order for the team's entry fee
// @Tags         teams,payments
// @Produce      json
// @Param        teamID  path      int  true "team ID"
// @Success      201     {object}  domain.Payment
// @Failure      400     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID}/payments [post]
// @Security     BearerAuth
func (h *PaymentHandler) HandleCreateOrder(ctx *gin.Context) {
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

	payment, err := h.svc.CreateOrder(ctx.Request.Context(), teamID, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
		case errors.Is(err, service.ErrNotTeamLeader):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrPaymentNotRequired), errors.Is(err, service.ErrAlreadyPaid):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCreateOrder -> h.svc.CreateOrder -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, payment)
}

// HandleWebhook godoc
// @Summary      Payment gateway webhook
// @Description  Called by the payment provider. Authenticated by signature, not JWT.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /payments/webhook [post]
func (h *PaymentHandler) HandleWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	signature := ctx.GetHeader("X-Webhook-Signature")
	if err := h.svc.HandleWebhook(ctx.Request.Context(), body, signature); err != nil {
		if errors.Is(err, service.ErrBadWebhook) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleWebhook -> h.svc.HandleWebhook -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusOK)
}

// HandleGetPaymentStatus godoc
// @Summary      Get the team's payment standing
// @Tags         teams,payments
// @Produce      json
// @Param        teamID  path      int  true "team ID"
// @Success      200     {object}  domain.Payment
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /teams/{teamID}/payments [get]
// @Security     BearerAuth
func (h *PaymentHandler) HandleGetPaymentStatus(ctx *gin.Context) {
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

	payment, err := h.svc.GetStatus(ctx.Request.Context(), teamID, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			response.RenderErr(ctx, response.ErrNotFound("team", "ID", teamID))
		case errors.Is(err, service.ErrPaymentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("payment", "teamID", teamID))
		case errors.Is(err, service.ErrNotTeamLeader):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleGetPaymentStatus -> h.svc.GetStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, payment)
}
