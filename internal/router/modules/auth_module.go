package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-devconnector/internal/interface/http"
	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

// AuthModule exposes login (POST /api/auth) and whoami (GET /api/auth).
type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  *helpers.TokenService
	Limit   Limiter
}

func NewAuthModule(h *handlers.AuthHandler, tokens *helpers.TokenService, limit Limiter) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens, Limit: limit}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth", m.Limit.PerIP("login", 10), m.Handler.Login)
	rg.GET("/auth", middleware.Auth(m.Tokens), m.Limit.PerUser("api", 120), m.Handler.Me)
}
