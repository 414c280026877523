package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		write    func(c *gin.Context)
		status   int
		success  bool
		wantCode string
	}{
		{"success", func(c *gin.Context) { Success(c, gin.H{"ok": true}) }, http.StatusOK, true, ""},
		{"created", func(c *gin.Context) { Created(c, gin.H{"id": 1}) }, http.StatusCreated, true, ""},
		{"bad request", func(c *gin.Context) { BadRequest(c, "nope") }, http.StatusBadRequest, false, "BAD_REQUEST"},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "nope") }, http.StatusUnauthorized, false, "UNAUTHORIZED"},
		{"not found", func(c *gin.Context) { NotFound(c, "nope") }, http.StatusNotFound, false, "NOT_FOUND"},
		{"conflict", func(c *gin.Context) { Conflict(c, "nope") }, http.StatusConflict, false, "CONFLICT"},
		{"unavailable", func(c *gin.Context) { ServiceUnavailable(c, "nope") }, http.StatusServiceUnavailable, false, "SERVICE_UNAVAILABLE"},
		{"internal", func(c *gin.Context) { InternalError(c, "nope") }, http.StatusInternalServerError, false, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.write(c)

			assert.Equal(t, tt.status, w.Code)

			var got Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.success, got.Success)
			if tt.wantCode == "" {
				assert.Nil(t, got.Error)
				assert.NotNil(t, got.Data)
				return
			}
			require.NotNil(t, got.Error)
			assert.Equal(t, tt.wantCode, got.Error.Code)
			assert.Equal(t, "nope", got.Error.Message)
		})
	}
}
