package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/service"
)

type fakeEventService struct {
	event         domain.Event
	transitionErr error
	setQRErr      error
}

func (f *fakeEventService) CreateEvent(_ context.Context, event domain.Event, _ domain.User) (domain.Event, error) {
	return event, nil
}

func (f *fakeEventService) GetEvent(_ context.Context, _ uint) (domain.Event, error) {
	return f.event, nil
}

func (f *fakeEventService) ListEvents(_ context.Context) ([]domain.Event, error) {
	return nil, nil
}

func (f *fakeEventService) Transition(_ context.Context, _ uint, to domain.EventStatus, _ domain.User) (domain.Event, error) {
	if f.transitionErr != nil {
		return domain.Event{}, f.transitionErr
	}

	event := f.event
	event.Status = to

	return event, nil
}

func (f *fakeEventService) SetQREnabled(_ context.Context, _ uint, enabled bool, _ domain.User) (domain.Event, error) {
	if f.setQRErr != nil {
		return domain.Event{}, f.setQRErr
	}

	event := f.event
	event.QREnabled = enabled

	return event, nil
}

func (f *fakeEventService) CreateRoleSlot(_ context.Context, slot domain.RoleSlot, _ domain.User) (domain.RoleSlot, error) {
	return slot, nil
}

func (f *fakeEventService) ListRoleSlots(_ context.Context, _ uint) ([]domain.RoleSlot, error) {
	return nil, nil
}

type fakeRoleHandlerService struct{}

func (f *fakeRoleHandlerService) Apply(_ context.Context, _, _ uint) (domain.RoleAssignment, error) {
	return domain.RoleAssignment{}, nil
}

func (f *fakeRoleHandlerService) Approve(_ context.Context, _ uint, _ domain.User) (domain.RoleAssignment, error) {
	return domain.RoleAssignment{}, nil
}

func (f *fakeRoleHandlerService) Reject(_ context.Context, _ uint, _ domain.User) (domain.RoleAssignment, error) {
	return domain.RoleAssignment{}, nil
}

func (f *fakeRoleHandlerService) ListForStudent(_ context.Context, _, _ uint) ([]domain.RoleAssignment, error) {
	return nil, nil
}

func (f *fakeRoleHandlerService) ListForEvent(_ context.Context, _ uint, _ domain.User) ([]domain.RoleAssignment, error) {
	return nil, nil
}

type fakeAttendanceService struct {
	result  service.ScanResult
	scanErr error
}

func (f *fakeAttendanceService) Scan(_ context.Context, _, _ uint) (service.ScanResult, error) {
	if f.scanErr != nil {
		return service.ScanResult{}, f.scanErr
	}

	return f.result, nil
}

func (f *fakeAttendanceService) ListForStudent(_ context.Context, _, _ uint) ([]domain.Attendance, error) {
	return nil, nil
}

func eventRouter(svc *fakeEventService, attSvc *fakeAttendanceService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := &fakeUserService{users: map[uint]domain.User{
		1: {ID: 1, Role: domain.RoleAdmin},
	}}
	handler := NewEventHandler(svc, &fakeRoleHandlerService{}, attSvc, users)

	router := gin.New()
	authed := router.Group("", asUser(1))
	authed.POST("/events/:eventID/status", handler.HandleTransitionEvent)
	authed.POST("/events/:eventID/scan", handler.HandleScan)

	return router
}

func TestHandleTransitionEvent(t *testing.T) {
	t.Run("illegal transition is a bad request", func(t *testing.T) {
		router := eventRouter(&fakeEventService{transitionErr: service.ErrIllegalEventTransition}, &fakeAttendanceService{})

		rec := postJSON(router, "/events/1/status", `{"status":"completed"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ended event is a bad request", func(t *testing.T) {
		router := eventRouter(&fakeEventService{transitionErr: service.ErrEventEnded}, &fakeAttendanceService{})

		rec := postJSON(router, "/events/1/status", `{"status":"live"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("someone else's event", func(t *testing.T) {
		router := eventRouter(&fakeEventService{transitionErr: service.ErrNotOrganizer}, &fakeAttendanceService{})

		rec := postJSON(router, "/events/1/status", `{"status":"live"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHandleScan(t *testing.T) {
	t.Run("new roles marked", func(t *testing.T) {
		router := eventRouter(&fakeEventService{}, &fakeAttendanceService{
			result: service.ScanResult{Marked: []domain.Attendance{
				{EventID: 1, StudentID: 1, Role: domain.EventRoleParticipant, Status: domain.AttendancePresent},
			}},
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events/1/scan", nil)
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("everything already marked", func(t *testing.T) {
		router := eventRouter(&fakeEventService{}, &fakeAttendanceService{
			result: service.ScanResult{AlreadyMarked: []string{domain.EventRoleParticipant}},
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events/1/scan", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("qr disabled", func(t *testing.T) {
		router := eventRouter(&fakeEventService{}, &fakeAttendanceService{scanErr: service.ErrQRDisabled})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/events/1/scan", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
