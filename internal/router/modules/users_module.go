package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-devconnector/internal/interface/http"
)

// UsersModule exposes registration: POST /api/users.
type UsersModule struct {
	Handler *handlers.AuthHandler
	Limit   Limiter
}

func NewUsersModule(h *handlers.AuthHandler, limit Limiter) *UsersModule {
	return &UsersModule{Handler: h, Limit: limit}
}

func (m *UsersModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Limit.PerIP("register", 10), m.Handler.Register)
}
