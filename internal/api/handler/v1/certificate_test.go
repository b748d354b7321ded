package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra/eventra-api/internal/api/middleware"
	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/service"
)

type fakeUserService struct {
	users map[uint]domain.User
}

func (f *fakeUserService) GetUser(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, service.ErrUserNotFound
	}

	return user, nil
}

type fakeCertService struct {
	verification domain.Verification
	pdf          []byte
	downloadErr  error
	revokeErr    error
}

func (f *fakeCertService) IssueForEvent(_ context.Context, _, _ uint, _ domain.User) (domain.Certificate, error) {
	return domain.Certificate{}, nil
}

func (f *fakeCertService) Verify(_ context.Context, _ string) (domain.Verification, error) {
	return f.verification, nil
}

func (f *fakeCertService) Revoke(_ context.Context, _ string, _ domain.User) error {
	return f.revokeErr
}

func (f *fakeCertService) ListByStudent(_ context.Context, _ uint) ([]domain.Certificate, error) {
	return nil, nil
}

func (f *fakeCertService) Download(_ context.Context, _ string, _ domain.User) ([]byte, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}

	return f.pdf, nil
}

// asUser mimics the JWT middleware for tests.
func asUser(userID uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, userID)
		ctx.Set(middleware.ContextKeyRole, domain.RoleStudent)
	}
}

func certRouter(svc *fakeCertService, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := &fakeUserService{users: map[uint]domain.User{
		userID: {ID: userID, Role: domain.RoleStudent},
	}}
	handler := NewCertificateHandler(svc, users)

	router := gin.New()
	router.GET("/certificates/verify/:serial", handler.HandleVerify)

	authed := router.Group("", asUser(userID))
	authed.GET("/certificates/:serial/pdf", handler.HandleDownloadCertificate)
	authed.POST("/certificates/:serial/revoke", handler.HandleRevokeCertificate)

	return router
}

func TestHandleVerify(t *testing.T) {
	router := certRouter(&fakeCertService{
		verification: domain.Verification{
			Valid:       true,
			Serial:      "abc-123",
			StudentName: "Ada Lovelace",
			EventTitle:  "Tech Day",
		},
	}, 1)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/certificates/verify/abc-123", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var verification domain.Verification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verification))
	assert.True(t, verification.Valid)
	assert.Equal(t, "Ada Lovelace", verification.StudentName)
}

func TestHandleDownloadCertificate(t *testing.T) {
	t.Run("serves the pdf inline", func(t *testing.T) {
		router := certRouter(&fakeCertService{pdf: []byte("%PDF-1.4 fake")}, 1)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/certificates/abc-123/pdf", nil)
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "certificate-abc-123.pdf")
	})

	t.Run("not the owner", func(t *testing.T) {
		router := certRouter(&fakeCertService{downloadErr: service.ErrNotCertificateOwner}, 1)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/certificates/abc-123/pdf", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("revoked", func(t *testing.T) {
		router := certRouter(&fakeCertService{downloadErr: service.ErrCertificateRevoked}, 1)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/certificates/abc-123/pdf", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandleRevokeCertificate(t *testing.T) {
	t.Run("non admins are refused", func(t *testing.T) {
		router := certRouter(&fakeCertService{revokeErr: service.ErrNotAdmin}, 1)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/certificates/abc-123/revoke", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown serial", func(t *testing.T) {
		router := certRouter(&fakeCertService{revokeErr: service.ErrCertificateNotFound}, 1)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/certificates/abc-123/revoke", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
