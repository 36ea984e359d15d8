package mailer

import "errors"

var (
	ErrNoRecipient = errors.New("email job has no recipient")
	ErrNoBody      = errors.New("email job has no body")
)

// EmailJob is the queued payload consumed by the email worker. A job either
// names a Template rendered with Data, or carries its own Text/HTML bodies.
// Event records the domain event that produced the job, for log correlation.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Event    string         `json:"event,omitempty"`
}

// Validate reports whether the job can be delivered without rendering it.
func (j EmailJob) Validate() error {
	if j.To == "" {
		return ErrNoRecipient
	}
	if j.Template == "" && j.Text == "" && j.HTML == "" {
		return ErrNoBody
	}
	return nil
}
