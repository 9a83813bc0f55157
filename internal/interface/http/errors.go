package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/pkg/response"
)

// errorStatus maps domain and application errors to responses. Anything
// not listed is a store or infrastructure failure and becomes a 500.
var errorStatus = []struct {
	err     error
	status  int
	message string
}{
	{application.ErrUserExists, http.StatusBadRequest, "User already exists"},
	{application.ErrInvalidCredentials, http.StatusBadRequest, "Invalid Credentials"},
	{entity.ErrAlreadyLiked, http.StatusBadRequest, "Post already liked"},
	{entity.ErrNotLiked, http.StatusBadRequest, "Post has not yet been liked"},
	{entity.ErrForbidden, http.StatusForbidden, "User not authorized"},
	{application.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{application.ErrProfileNotFound, http.StatusNotFound, "There is no profile for this user"},
	{application.ErrPostNotFound, http.StatusNotFound, "Post not found"},
	{application.ErrCommentNotFound, http.StatusNotFound, "Comment does not exist"},
	{application.ErrGitHubNotFound, http.StatusNotFound, "No Github profile found"},
	{entity.ErrEntryNotFound, http.StatusNotFound, "Entry not found"},
}

func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			response.Error[any](c, e.status, e.message, nil)
			return
		}
	}
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString(response.RequestIDKey),
		}).Error("request failed")
	}
	response.Error[any](c, http.StatusInternalServerError, "server error", nil)
}
