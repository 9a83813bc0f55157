package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
	"github.com/oksasatya/go-devconnector/pkg/response"
	"github.com/oksasatya/go-devconnector/pkg/validation"
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	GitHub *application.GitHubService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, gh *application.GitHubService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, GitHub: gh, Logger: logger}
}

type profileRequest struct {
	Status         string `json:"status" binding:"required"`
	Skills         string `json:"skills" binding:"required,csvlist"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GitHubUsername string `json:"githubusername"`
	YouTube        string `json:"youtube"`
	Facebook       string `json:"facebook"`
	Twitter        string `json:"twitter"`
	Instagram      string `json:"instagram"`
	LinkedIn       string `json:"linkedin"`
}

func (r profileRequest) fields() entity.ProfileFields {
	return entity.ProfileFields{
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Bio:            r.Bio,
		Status:         r.Status,
		GitHubUsername: r.GitHubUsername,
		Skills:         r.Skills,
		Social: entity.Social{
			YouTube:   r.YouTube,
			Facebook:  r.Facebook,
			Twitter:   r.Twitter,
			Instagram: r.Instagram,
			LinkedIn:  r.LinkedIn,
		},
	}
}

type experienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         string `json:"from" binding:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// List handles GET /api/profile.
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, profiles, "profiles", nil)
}

// Me handles GET /api/profile/me.
func (h *ProfileHandler) Me(c *gin.Context) {
	h.byUser(c, middleware.UserID(c))
}

// ByUser handles GET /api/profile/user/:user_id.
func (h *ProfileHandler) ByUser(c *gin.Context) {
	h.byUser(c, c.Param("user_id"))
}

func (h *ProfileHandler) byUser(c *gin.Context, userID string) {
	p, err := h.Svc.ByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}

// Upsert handles POST /api/profile.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, created, err := h.Svc.Upsert(c.Request.Context(), middleware.UserID(c), req.fields())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if created {
		response.Success(c, http.StatusCreated, p, "profile created", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "profile updated", nil)
}

// DeleteAccount handles DELETE /api/profile.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	if err := h.Svc.DeleteAccount(c.Request.Context(), middleware.UserID(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "User deleted", nil)
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.AddExperience(c.Request.Context(), middleware.UserID(c), entity.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	h.respond(c, p, err, "experience added")
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id.
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	p, err := h.Svc.RemoveExperience(c.Request.Context(), middleware.UserID(c), c.Param("exp_id"))
	h.respond(c, p, err, "experience removed")
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.AddEducation(c.Request.Context(), middleware.UserID(c), entity.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	h.respond(c, p, err, "education added")
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	p, err := h.Svc.RemoveEducation(c.Request.Context(), middleware.UserID(c), c.Param("edu_id"))
	h.respond(c, p, err, "education removed")
}

func (h *ProfileHandler) respond(c *gin.Context, p *entity.Profile, err error, msg string) {
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, msg, nil)
}

// Search handles GET /api/profile/search?q=&size=.
func (h *ProfileHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.SearchProfiles(c.Request.Context(), q, size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"query": q, "count": len(hits)})
}

// GitHubRepos handles GET /api/profile/github/:username.
func (h *ProfileHandler) GitHubRepos(c *gin.Context) {
	repos, err := h.GitHub.Repos(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, repos, "github repositories", nil)
}
