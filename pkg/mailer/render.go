package mailer

import (
	"errors"

	"github.com/oksasatya/go-devconnector/pkg/mailer/templates"
)

var ErrEmptyJob = errors.New("mailer: job has no recipient or content")

// Compose resolves a job into subject, text and html. Template jobs are
// rendered from the embedded templates; others are sent as given.
func Compose(job EmailJob) (subject, text, html string, err error) {
	if job.To == "" {
		return "", "", "", ErrEmptyJob
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", ErrEmptyJob
		}
		return job.Subject, job.Text, job.HTML, nil
	}
	data := templates.FromMap(job.Data)
	if data.Email == "" {
		data.Email = job.To
	}
	return templates.Render(job.Template, data)
}
