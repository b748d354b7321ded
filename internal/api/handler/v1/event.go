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

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event, actor domain.User) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	Transition(ctx context.Context, id uint, to domain.EventStatus, actor domain.User) (domain.Event, error)
	SetQREnabled(ctx context.Context, id uint, enabled bool, actor domain.User) (domain.Event, error)
	CreateRoleSlot(ctx context.Context, slot domain.RoleSlot, actor domain.User) (domain.RoleSlot, error)
	ListRoleSlots(ctx context.Context, eventID uint) ([]domain.RoleSlot, error)
}

type RoleService interface {
	Apply(ctx context.Context, studentID, roleSlotID uint) (domain.RoleAssignment, error)
	Approve(ctx context.Context, assignmentID uint, actor domain.User) (domain.RoleAssignment, error)
	Reject(ctx context.Context, assignmentID uint, actor domain.User) (domain.RoleAssignment, error)
	ListForStudent(ctx context.Context, eventID, studentID uint) ([]domain.RoleAssignment, error)
	ListForEvent(ctx context.Context, eventID uint, actor domain.User) ([]domain.RoleAssignment, error)
}

type AttendanceService interface {
	Scan(ctx context.Context, eventID, studentID uint) (service.ScanResult, error)
	ListForStudent(ctx context.Context, eventID, studentID uint) ([]domain.Attendance, error)
}

type EventHandler struct {
	svc     EventService
	roleSvc RoleService
	attSvc  AttendanceService
	uSvc    UserService
}

func NewEventHandler(svc EventService, roleSvc RoleService, attSvc AttendanceService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:     svc,
		roleSvc: roleSvc,
		attSvc:  attSvc,
		uSvc:    uSvc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create a new event
// @Description  Creates a draft event. Admin only.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest true "request body"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		EndDate:     req.EndDate,
	}, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidEventDates):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleGetEvents godoc
// @Summary      List all events
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEvents(ctx *gin.Context) {
	events, err := h.svc.ListEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true "event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleTransitionEvent godoc
// @Summary      Move an event to its next status
// @Description  draft goes live, live completes. Organizer only.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                             true "event ID"
// @Param        request  body      request.TransitionEventRequest  true "request body"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/status [post]
// @Security     BearerAuth
func (h *EventHandler) HandleTransitionEvent(ctx *gin.Context) {
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

	var req request.TransitionEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.Transition(ctx.Request.Context(), eventID, domain.EventStatus(req.Status), user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotAdmin), errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrIllegalEventTransition), errors.Is(err, service.ErrEventEnded):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleTransitionEvent -> h.svc.Transition -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleSetQR godoc
// @Summary      Enable or disable QR check-in for a live event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                  true "event ID"
// @Param        request  body      request.SetQRRequest true "request body"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/qr [post]
// @Security     BearerAuth
func (h *EventHandler) HandleSetQR(ctx *gin.Context) {
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

	var req request.SetQRRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.SetQREnabled(ctx.Request.Context(), eventID, *req.Enabled, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrEventNotLive):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleSetQR -> h.svc.SetQREnabled -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCreateRoleSlot godoc
// @Summary      Add a role slot to a draft event
// @Tags         events,roles
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                           true "event ID"
// @Param        request  body      request.CreateRoleSlotRequest true "request body"
// @Success      201      {object}  domain.RoleSlot
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/slots [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateRoleSlot(ctx *gin.Context) {
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

	var req request.CreateRoleSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	slot, err := h.svc.CreateRoleSlot(ctx.Request.Context(), domain.RoleSlot{
		EventID:   eventID,
		Role:      req.Role,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		MaxSeats:  req.MaxSeats,
	}, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrEventNotDraft):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrSlotOutsideEvent):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateRoleSlot -> h.svc.CreateRoleSlot -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, slot)
}

// HandleGetRoleSlots godoc
// @Summary      List role slots of an event
// @Tags         events,roles
// @Produce      json
// @Param        eventID  path      int  true "event ID"
// @Success      200      {array}   domain.RoleSlot
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/slots [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetRoleSlots(ctx *gin.Context) {
	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	slots, err := h.svc.ListRoleSlots(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRoleSlots -> h.svc.ListRoleSlots -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, slots)
}

// HandleApplyForRole godoc
// @Summary      Apply for a role slot
// @Description  Participants are approved immediately; other roles await the organizer's decision.
// @Tags         events,roles
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                      true "event ID"
// @Param        request  body      request.ApplyRoleRequest true "request body"
// @Success      201      {object}  domain.RoleAssignment
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/apply [post]
// @Security     BearerAuth
func (h *EventHandler) HandleApplyForRole(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ApplyRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	assignment, err := h.roleSvc.Apply(ctx.Request.Context(), user.ID, req.RoleSlotID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoleSlotNotFound):
			response.RenderErr(ctx, response.ErrNotFound("role slot", "ID", req.RoleSlotID))
		case errors.Is(err, service.ErrEventNotLive), errors.Is(err, service.ErrEventEnded):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrAssignmentExists),
			errors.Is(err, service.ErrJudgeExclusive),
			errors.Is(err, service.ErrSlotFull):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleApplyForRole -> h.roleSvc.Apply -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, assignment)
}

// HandleDecideAssignment godoc
// @Summary      Approve or reject a pending role application
// @Tags         events,roles
// @Produce      json
// @Param        eventID       path      int     true  "event ID"
// @Param        assignmentID  path      int     true  "assignment ID"
// @Param        decision      query     string  true  "approve or reject"
// @Success      200           {object}  domain.RoleAssignment
// @Failure      400           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      409           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /events/{eventID}/assignments/{assignmentID} [post]
// @Security     BearerAuth
func (h *EventHandler) HandleDecideAssignment(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	assignmentID, err := parseUintParam(ctx, "assignmentID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var assignment domain.RoleAssignment
	switch decision := ctx.Query("decision"); decision {
	case "approve":
		assignment, err = h.roleSvc.Approve(ctx.Request.Context(), assignmentID, user)
	case "reject":
		assignment, err = h.roleSvc.Reject(ctx.Request.Context(), assignmentID, user)
	default:
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown decision %q", decision)))
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("assignment", "ID", assignmentID))
		case errors.Is(err, service.ErrNotOrganizer):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrAssignmentDecided), errors.Is(err, service.ErrSlotFull):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleDecideAssignment -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, assignment)
}

// HandleGetAssignments godoc
// @Summary      List role assignments of an event
// @Description  Organizers see everyone; students see their own.
// @Tags         events,roles
// @Produce      json
// @Param        eventID  path      int  true "event ID"
// @Success      200      {array}   domain.RoleAssignment
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/assignments [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetAssignments(ctx *gin.Context) {
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

	var assignments []domain.RoleAssignment
	if user.IsAdmin() {
		assignments, err = h.roleSvc.ListForEvent(ctx.Request.Context(), eventID, user)
	} else {
		assignments, err = h.roleSvc.ListForStudent(ctx.Request.Context(), eventID, user.ID)
	}
	if err != nil {
		if errors.Is(err, service.ErrNotOrganizer) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetAssignments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, assignments)
}

// HandleScan godoc
// @Summary      Record attendance via QR scan
// @Description  Marks the student present for every approved role at the event and issues certificates.
// @Tags         events,attendance
// @Produce      json
// @Param        eventID  path      int  true "event ID"
// @Success      201      {object}  service.ScanResult
// @Success      200      {object}  service.ScanResult
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/scan [post]
// @Security     BearerAuth
func (h *EventHandler) HandleScan(ctx *gin.Context) {
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

	result, err := h.attSvc.Scan(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrEventNotLive),
			errors.Is(err, service.ErrQRDisabled),
			errors.Is(err, service.ErrEventEnded),
			errors.Is(err, service.ErrNoApprovedRole):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleScan -> h.attSvc.Scan -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	// A scan that only re-hits roles marked earlier created nothing.
	if len(result.Marked) == 0 {
		ctx.JSON(http.StatusOK, result)
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// HandleGetAttendance godoc
// @Summary      List the caller's attendance for an event
// @Tags         events,attendance
// @Produce      json
// @Param        eventID  path      int  true "event ID"
// @Success      200      {array}   domain.Attendance
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/attendance [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetAttendance(ctx *gin.Context) {
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

	attendances, err := h.attSvc.ListForStudent(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetAttendance -> h.attSvc.ListForStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, attendances)
}
