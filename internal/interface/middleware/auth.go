package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-devconnector/pkg/helpers"
	"github.com/oksasatya/go-devconnector/pkg/response"
)

const (
	// TokenHeader carries the credential token on protected requests.
	TokenHeader  = "x-auth-token"
	CtxUserIDKey = "userID"
)

const (
	msgNoCredential = "No token provided, authorization denied"
	msgInvalidToken = "Invalid token"
)

// Auth verifies the credential token and attaches the identity to the
// request context. Requests without a valid token never reach the handler.
func Auth(tokens *helpers.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, msgNoCredential)
			return
		}
		userID, err := tokens.Verify(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}
		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

// UserID returns the identity attached by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
