package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra/eventra-api/internal/pkg/jwthelper"
)

const signingKey = "test-signing-key"

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(NewAuthenticator(signingKey).VerifyJWT())
	router.GET("/whoami", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"user_id": ctx.GetUint(ContextKeyUserID),
			"role":    ctx.GetString(ContextKeyRole),
		})
	})

	return router
}

func TestVerifyJWT(t *testing.T) {
	token, err := jwthelper.GenerateToken([]byte(signingKey), 42, "student", "test-agent")
	require.NoError(t, err)

	get := func(authorization, userAgent string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		req.Header.Set("User-Agent", userAgent)
		protectedRouter().ServeHTTP(rec, req)

		return rec
	}

	t.Run("valid token", func(t *testing.T) {
		rec := get("Bearer "+token, "test-agent")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":42,"role":"student"}`, rec.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		rec := get("", "test-agent")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("no bearer prefix", func(t *testing.T) {
		rec := get(token, "test-agent")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		forged, err := jwthelper.GenerateToken([]byte("other-key"), 42, "student", "test-agent")
		require.NoError(t, err)

		rec := get("Bearer "+forged, "test-agent")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user agent mismatch", func(t *testing.T) {
		rec := get("Bearer "+token, "someone-elses-browser")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
