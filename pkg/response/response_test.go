package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-auth-service/pkg/response"
)

func TestSuccessAndError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set(response.RequestIDKey, "req-1")

		response.Success(c, 0, gin.H{"ok": true}, "done", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var body response.APIResponse[map[string]bool]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "req-1", body.RequestID)
		assert.Equal(t, "done", body.Message)
		assert.True(t, body.Data["ok"])
	})

	t.Run("error aborts", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Error[any](c, http.StatusConflict, "user already exists", map[string]string{"email": "taken"})

		require.Equal(t, http.StatusConflict, w.Code)
		assert.True(t, c.IsAborted())
		var body response.APIResponse[any]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, http.StatusConflict, body.Status)
		assert.NotNil(t, body.Error)
	})
}
