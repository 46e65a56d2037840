package model

import (
	"errors"
	"strings"
	"testing"
)

const prOpenedPayload = `{
  "action": "opened",
  "sender": {"login": "octocat", "id": 1, "avatar_url": "https://a/1", "html_url": "https://github.com/octocat"},
  "repository": {"full_name": "octo/repo", "html_url": "https://github.com/octo/repo"},
  "pull_request": {
    "html_url": "https://github.com/octo/repo/pull/7",
    "number": 7,
    "title": "Login form",
    "user": {"login": "octocat", "id": 1, "avatar_url": "https://a/1", "html_url": "https://github.com/octocat"},
    "body": null,
    "head": {"label": "octo:ft-login", "ref": "ft-login"},
    "base": {"label": "octo:dev", "ref": "dev"},
    "merged": null,
    "labels": [{"name": "feature", "url": "https://x/feature"}]
  }
}`

func TestParseWebhookEvent(t *testing.T) {
	t.Run("Pull request with null merged and absent draft", func(t *testing.T) {
		ev, err := ParseWebhookEvent([]byte(prOpenedPayload))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.Action != ActionOpened {
			t.Errorf("expected opened, got %s", ev.Action)
		}
		if ev.PullRequest == nil {
			t.Fatal("expected pull_request")
		}
		if ev.PullRequest.Merged != nil {
			t.Error("expected merged to stay nil")
		}
		if ev.PullRequest.Draft {
			t.Error("draft must default to false")
		}
		if Body(ev.PullRequest.Body) != "" {
			t.Error("null body should read as empty")
		}
	})

	t.Run("Issue comment on a pull request", func(t *testing.T) {
		body := `{
		  "action": "created",
		  "sender": {"login": "hubot"},
		  "repository": {"full_name": "octo/repo"},
		  "issue": {"html_url": "https://github.com/octo/repo/pull/3", "number": 3, "title": "t",
		            "user": {"login": "octocat"}, "labels": [], "state": "open",
		            "pull_request": {"html_url": "https://github.com/octo/repo/pull/3"}},
		  "comment": {"html_url": "https://github.com/octo/repo/pull/3#c1", "user": {"login": "hubot"}, "body": "LGTM"}
		}`
		ev, err := ParseWebhookEvent([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ev.Issue.IsPR() {
			t.Error("expected IsPR")
		}
		if ev.Comment == nil || ev.Comment.Body != "LGTM" {
			t.Errorf("unexpected comment: %+v", ev.Comment)
		}
	})

	t.Run("Workflow job waiting with deployment", func(t *testing.T) {
		body := `{
		  "action": "waiting",
		  "sender": {"login": "octocat"},
		  "repository": {"full_name": "octo/repo"},
		  "workflow_job": {"run_url": "https://api.github.com/repos/octo/repo/actions/runs/5", "workflow_name": "Deploy",
		                   "name": "production", "head_sha": "abc123", "head_branch": "master", "run_id": 5},
		  "deployment": {"environment": "production", "url": "https://api.github.com/repos/octo/repo/deployments/1"}
		}`
		ev, err := ParseWebhookEvent([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.Deployment == nil || ev.Deployment.Environment != "production" {
			t.Errorf("unexpected deployment: %+v", ev.Deployment)
		}
	})

	t.Run("Unknown action", func(t *testing.T) {
		body := strings.Replace(prOpenedPayload, `"opened"`, `"labeled"`, 1)
		_, err := ParseWebhookEvent([]byte(body))
		if !errors.Is(err, ErrMalformedEvent) {
			t.Fatalf("expected ErrMalformedEvent, got %v", err)
		}
		if !errors.Is(err, ErrUnknownAction) {
			t.Errorf("expected ErrUnknownAction in chain, got %v", err)
		}
	})

	t.Run("Unknown state", func(t *testing.T) {
		body := `{"action":"opened","sender":{"login":"a"},"repository":{"full_name":"o/r"},
		  "issue":{"html_url":"u","number":1,"title":"t","user":{"login":"a"},"state":"locked"}}`
		_, err := ParseWebhookEvent([]byte(body))
		if !errors.Is(err, ErrUnknownState) {
			t.Errorf("expected ErrUnknownState, got %v", err)
		}
	})

	t.Run("Missing required fields", func(t *testing.T) {
		tcs := map[string]string{
			"action":                  `{"sender":{"login":"a"},"repository":{"full_name":"o/r"}}`,
			"sender.login":            `{"action":"opened","sender":{},"repository":{"full_name":"o/r"}}`,
			"repository.full_name":    `{"action":"opened","sender":{"login":"a"},"repository":{}}`,
			"pull_request.head.label": strings.Replace(prOpenedPayload, `"label": "octo:ft-login"`, `"label": ""`, 1),
			"comment.user.login": `{"action":"created","sender":{"login":"a"},"repository":{"full_name":"o/r"},
			  "discussion":{"html_url":"u","number":1,"title":"t","user":{"login":"a"},"state":"open"},
			  "comment":{"html_url":"c","user":{},"body":"x"}}`,
			"deployment.environment": `{"action":"waiting","sender":{"login":"a"},"repository":{"full_name":"o/r"},
			  "workflow_job":{"run_url":"r","workflow_name":"w","name":"n","head_sha":"s","run_id":1},
			  "deployment":{"url":"d"}}`,
		}
		for field, body := range tcs {
			t.Run(field, func(t *testing.T) {
				_, err := ParseWebhookEvent([]byte(body))
				if !errors.Is(err, ErrMissingField) {
					t.Fatalf("expected ErrMissingField, got %v", err)
				}
				if !strings.Contains(err.Error(), field) {
					t.Errorf("expected error to name %s, got %v", field, err)
				}
			})
		}
	})

	t.Run("Not JSON", func(t *testing.T) {
		_, err := ParseWebhookEvent([]byte("payload=%7B%7D"))
		if !errors.Is(err, ErrMalformedEvent) {
			t.Errorf("expected ErrMalformedEvent, got %v", err)
		}
	})
}
