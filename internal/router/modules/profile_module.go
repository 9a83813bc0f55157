package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-devconnector/internal/interface/http"
	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

// ProfileModule wires /api/profile.
// Public: list, by user, search, github repos.
// Protected: me, upsert, delete account, experience and education.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Tokens  *helpers.TokenService
	Limit   Limiter
}

func NewProfileModule(h *handlers.ProfileHandler, tokens *helpers.TokenService, limit Limiter) *ProfileModule {
	return &ProfileModule{Handler: h, Tokens: tokens, Limit: limit}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	public := rg.Group("/profile")
	{
		public.GET("", m.Handler.List)
		public.GET("/user/:user_id", m.Handler.ByUser)
		public.GET("/search", m.Limit.PerIP("search", 60), m.Handler.Search)
		public.GET("/github/:username", m.Limit.PerIP("github", 60), m.Handler.GitHubRepos)
	}

	auth := rg.Group("/profile")
	auth.Use(middleware.Auth(m.Tokens), m.Limit.PerUser("api", 120))
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("", m.Handler.Upsert)
		auth.DELETE("", m.Handler.DeleteAccount)
		auth.PUT("/experience", m.Handler.AddExperience)
		auth.DELETE("/experience/:exp_id", m.Handler.RemoveExperience)
		auth.PUT("/education", m.Handler.AddEducation)
		auth.DELETE("/education/:edu_id", m.Handler.RemoveEducation)
	}
}
