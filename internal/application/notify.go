package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/pkg/mailer"
	"github.com/oksasatya/go-devconnector/pkg/mailer/templates"
)

// notifier queues templated emails. Delivery is best effort: a broken
// queue is logged and never fails the request that triggered it.
type notifier struct {
	jobs    Publisher
	logger  *logrus.Logger
	appName string
}

func (n notifier) send(ctx context.Context, template string, u *entity.User, at time.Time) {
	if n.jobs == nil || u == nil || u.Email == "" {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: template,
		Data: templates.ToMap(templates.EmailData{
			Name:    u.Name,
			Email:   u.Email,
			AppName: n.appName,
			TimeAt:  at,
		}),
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := n.jobs.PublishJSON(c, job); err != nil && n.logger != nil {
		n.logger.WithError(err).WithFields(logrus.Fields{"template": template, "user_id": u.ID}).Warn("publish email job failed")
	}
}
