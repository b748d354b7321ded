package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra/eventra-api/internal/api/handler/v1/response"
	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/service"
)

type CertificateService interface {
	IssueForEvent(ctx context.Context, eventID, studentID uint, actor domain.User) (domain.Certificate, error)
	Verify(ctx context.Context, serial string) (domain.Verification, error)
	Revoke(ctx context.Context, serial string, actor domain.User) error
	ListByStudent(ctx context.Context, studentID uint) ([]domain.Certificate, error)
	Download(ctx context.Context, serial string, actor domain.User) ([]byte, error)
}

type CertificateHandler struct {
	svc  CertificateService
	uSvc UserService
}

func NewCertificateHandler(svc CertificateService, uSvc UserService) *CertificateHandler {
	return &CertificateHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleVerify godoc
// @Summary      Verify a certificate serial
// @Description  Public endpoint behind the QR code printed on each certificate.
// @Tags         certificates
// @Produce      json
// @Param        serial  path      string  true "certificate serial"
// @Success      200     {object}  domain.Verification
// @Failure      500     {object}  response.Err
// @Router       /certificates/verify/{serial} [get]
func (h *CertificateHandler) HandleVerify(ctx *gin.Context) {
	verification, err := h.svc.Verify(ctx.Request.Context(), ctx.Param("serial"))
	if err != nil {
		err = fmt.Errorf("v1.HandleVerify -> h.svc.Verify -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, verification)
}

// HandleIssueCertificate godoc
// @Summary      Issue a participation certificate manually
// @Description  Organizer path for completed events, independent of role slots.
// @Tags         certificates
// @Produce      json
// @Param        eventID    path      int  true "event ID"
// @Param        studentID  path      int  true "student ID"
// @Success      201        {object}  domain.Certificate
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /events/{eventID}/certificates/{studentID} [post]
// @Security     BearerAuth
func (h *CertificateHandler) HandleIssueCertificate(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	studentID, err := parseUintParam(ctx, "studentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	cert, err := h.svc.IssueForEvent(ctx.Request.Context(), eventID, studentID, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", studentID))
		case errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrEventNotCompleted), errors.Is(err, service.ErrNoAttendance),
			errors.Is(err, service.ErrCertificateExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleIssueCertificate -> h.svc.IssueForEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, cert)
}

// HandleGetMyCertificates godoc
// @Summary      List the caller's certificates
// @Tags         certificates
// @Produce      json
// @Success      200  {array}   domain.Certificate
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /certificates [get]
// @Security     BearerAuth
func (h *CertificateHandler) HandleGetMyCertificates(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	certs, err := h.svc.ListByStudent(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyCertificates -> h.svc.ListByStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, certs)
}

// HandleDownloadCertificate godoc
// @Summary      Download a certificate PDF
// @Tags         certificates
// @Produce      application/pdf
// @Param        serial  path      string  true "certificate serial"
// @Success      200     {file}    binary
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /certificates/{serial}/pdf [get]
// @Security     BearerAuth
func (h *CertificateHandler) HandleDownloadCertificate(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	serial := ctx.Param("serial")
	pdf, err := h.svc.Download(ctx.Request.Context(), serial, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCertificateNotFound):
			response.RenderErr(ctx, response.ErrNotFound("certificate", "serial", serial))
		case errors.Is(err, service.ErrNotCertificateOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrCertificateRevoked):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleDownloadCertificate -> h.svc.Download -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=certificate-%s.pdf", serial))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

// HandleRevokeCertificate godoc
// @Summary      Revoke a certificate
// @Description  Admin only. Revoking an already revoked certificate is a no-op.
// @Tags         certificates
// @Produce      json
// @Param        serial  path      string  true "certificate serial"
// @Success      200
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /certificates/{serial}/revoke [post]
// @Security     BearerAuth
func (h *CertificateHandler) HandleRevokeCertificate(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	serial := ctx.Param("serial")
	if err := h.svc.Revoke(ctx.Request.Context(), serial, user); err != nil {
		switch {
		case errors.Is(err, service.ErrCertificateNotFound):
			response.RenderErr(ctx, response.ErrNotFound("certificate", "serial", serial))
		case errors.Is(err, service.ErrNotAdmin):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleRevokeCertificate -> h.svc.Revoke -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusOK)
}
