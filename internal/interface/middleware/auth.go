package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-auth-service/pkg/helpers"
	"github.com/oksasatya/go-ddd-auth-service/pkg/response"
)

const CtxTokenKey = "auth_token"

// RequireTokenCookie rejects requests without the auth cookie with 400 and
// stores the raw token under CtxTokenKey. Validity is checked by the handler.
func RequireTokenCookie(cookies *helpers.CookieManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.Token(c)
		if token == "" {
			response.Error[any](c, http.StatusBadRequest, "missing auth token", nil)
			return
		}
		c.Set(CtxTokenKey, token)
		c.Next()
	}
}
