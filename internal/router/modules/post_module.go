package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-devconnector/internal/interface/http"
	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

// PostModule wires /api/post. Every route requires a token.
type PostModule struct {
	Handler *handlers.PostHandler
	Tokens  *helpers.TokenService
	Limit   Limiter
}

func NewPostModule(h *handlers.PostHandler, tokens *helpers.TokenService, limit Limiter) *PostModule {
	return &PostModule{Handler: h, Tokens: tokens, Limit: limit}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/post")
	auth.Use(middleware.Auth(m.Tokens), m.Limit.PerUser("api", 120))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/:post_id", m.Handler.Get)
		auth.DELETE("/:post_id", m.Handler.Delete)
		auth.PUT("/like/:post_id", m.Handler.Like)
		auth.PUT("/unlike/:post_id", m.Handler.Unlike)
		auth.POST("/comment/:post_id", m.Handler.Comment)
		auth.DELETE("/comment/:post_id/:comment_id", m.Handler.Uncomment)
	}
}
