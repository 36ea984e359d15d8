package mailer

import (
	"fmt"

	mailtpl "github.com/oksasatya/go-finances/pkg/mailer/templates"
)

// Compose returns the subject and bodies of job. Template jobs are rendered;
// the rest are sent as given.
func Compose(job EmailJob) (subject, text, html string, err error) {
	if err := job.Validate(); err != nil {
		return "", "", "", err
	}
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("render %s: %w", job.Template, err)
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return subject, text, html, nil
}
