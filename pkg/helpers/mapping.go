package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/go-finances/pkg/mailer"
	mailtpl "github.com/oksasatya/go-finances/pkg/mailer/templates"
)

// SubjectFor is the fallback subject when a job carries neither a subject nor a template.
func SubjectFor(job *mailer.EmailJob) string {
	if job.Subject != "" {
		return job.Subject
	}
	switch strings.ToLower(job.Template) {
	case mailtpl.Welcome:
		return "Welcome"
	case mailtpl.FavoredRegistered:
		return "A new favored was registered"
	default:
		return "Notification"
	}
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}
