package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCallbackRouter(expected string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/callback", SharedTokenMiddleware(expected), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func postCallback(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/callback", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestSharedTokenAcceptsMatchingBearer(t *testing.T) {
	r := newCallbackRouter("gateway-secret")

	w := postCallback(r, "Bearer gateway-secret")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSharedTokenRejectsMissingOrWrongToken(t *testing.T) {
	r := newCallbackRouter("gateway-secret")

	assert.Equal(t, http.StatusUnauthorized, postCallback(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, postCallback(r, "Bearer wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, postCallback(r, "Basic gateway-secret").Code)
}

func TestSharedTokenRejectsWhenUnconfigured(t *testing.T) {
	r := newCallbackRouter("")

	w := postCallback(r, "Bearer anything")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
