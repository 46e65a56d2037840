package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMalformedEvent = errors.New("malformed webhook event")
	ErrMissingField   = errors.New("missing required field")
)

// ParseWebhookEvent decodes a GitHub webhook body and checks that every
// field the notifier relies on is present.
func ParseWebhookEvent(body []byte) (WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return WebhookEvent{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if err := ev.validate(); err != nil {
		return WebhookEvent{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	return ev, nil
}

func missing(path string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, path)
}

func (ev WebhookEvent) validate() error {
	if ev.Action == "" {
		return missing("action")
	}
	if ev.Sender.Login == "" {
		return missing("sender.login")
	}
	if ev.Repository.FullName == "" {
		return missing("repository.full_name")
	}

	if ev.Issue != nil {
		if err := ev.Issue.validate(); err != nil {
			return err
		}
	}
	if ev.Comment != nil {
		if ev.Comment.HTMLURL == "" {
			return missing("comment.html_url")
		}
		if ev.Comment.User.Login == "" {
			return missing("comment.user.login")
		}
	}
	if ev.PullRequest != nil {
		if err := ev.PullRequest.validate(); err != nil {
			return err
		}
	}
	if ev.Discussion != nil {
		if err := ev.Discussion.validate(); err != nil {
			return err
		}
	}
	if ev.WorkflowJob != nil {
		if err := ev.WorkflowJob.validate(); err != nil {
			return err
		}
	}
	if ev.Deployment != nil && ev.Deployment.Environment == "" {
		return missing("deployment.environment")
	}
	return nil
}

func (i *Issue) validate() error {
	switch {
	case i.HTMLURL == "":
		return missing("issue.html_url")
	case i.Number <= 0:
		return missing("issue.number")
	case i.Title == "":
		return missing("issue.title")
	case i.User.Login == "":
		return missing("issue.user.login")
	case i.State == "":
		return missing("issue.state")
	}
	return nil
}

func (p *PullRequest) validate() error {
	switch {
	case p.HTMLURL == "":
		return missing("pull_request.html_url")
	case p.Number <= 0:
		return missing("pull_request.number")
	case p.Title == "":
		return missing("pull_request.title")
	case p.User.Login == "":
		return missing("pull_request.user.login")
	case p.Head.Label == "":
		return missing("pull_request.head.label")
	case p.Base.Label == "":
		return missing("pull_request.base.label")
	}
	return nil
}

func (d *Discussion) validate() error {
	switch {
	case d.HTMLURL == "":
		return missing("discussion.html_url")
	case d.Number <= 0:
		return missing("discussion.number")
	case d.Title == "":
		return missing("discussion.title")
	case d.User.Login == "":
		return missing("discussion.user.login")
	case d.State == "":
		return missing("discussion.state")
	}
	return nil
}

func (w *WorkflowJob) validate() error {
	switch {
	case w.RunURL == "":
		return missing("workflow_job.run_url")
	case w.Name == "":
		return missing("workflow_job.name")
	case w.HeadSHA == "":
		return missing("workflow_job.head_sha")
	case w.RunID == 0:
		return missing("workflow_job.run_id")
	}
	return nil
}
