package validation_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-auth-service/pkg/validation"
)

type signupPayload struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Requires2FA *bool  `json:"requires2FA" binding:"required"`
}

func bind(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	var p signupPayload
	return c.ShouldBindJSON(&p)
}

func TestToDetails(t *testing.T) {
	validation.Init()

	assert.Nil(t, validation.ToDetails(nil))

	tests := []struct {
		name string
		body string
		want map[string]string
	}{
		{"missing fields", `{"email":"a@b.com"}`, map[string]string{"password": "is required", "requires2FA": "is required"}},
		{"malformed json", `{"email":`, map[string]string{"payload": "invalid json"}},
		{"empty body", ``, map[string]string{"payload": "invalid json"}},
		{"wrong type", `{"email":"a@b.com","password":"x","requires2FA":"yes"}`, map[string]string{"requires2FA": "must be a bool"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bind(t, tt.body)
			require.Error(t, err)
			assert.Equal(t, tt.want, validation.ToDetails(err))
		})
	}
}

func TestToDetails_AcceptsFalseFlag(t *testing.T) {
	validation.Init()
	assert.NoError(t, bind(t, `{"email":"a@b.com","password":"x","requires2FA":false}`))
}
