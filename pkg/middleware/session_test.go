package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequireSession(), func(c *gin.Context) {
		SetUsername(c, "alex_dev")
		c.String(http.StatusOK, GetSessionID(c)+"|"+GetUsername(c))
	})
	return r
}

func TestRequireSession(t *testing.T) {
	r := newRouter()
	id := uuid.NewString()

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing session header"},
		{"malformed id", "not-a-uuid", http.StatusUnauthorized, "invalid session id"},
		{"valid id", id, http.StatusOK, id + "|alex_dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set(SessionHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}
