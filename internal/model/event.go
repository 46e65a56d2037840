package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Action is the closed set of webhook actions the service understands.
type Action string

const (
	ActionOpened         Action = "opened"
	ActionClosed         Action = "closed"
	ActionReopened       Action = "reopened"
	ActionCreated        Action = "created"
	ActionReadyForReview Action = "ready_for_review"
	ActionWaiting        Action = "waiting"
)

var ErrUnknownAction = errors.New("unknown action")

// UnmarshalJSON rejects any action outside the closed set.
func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch Action(s) {
	case ActionOpened, ActionClosed, ActionReopened, ActionCreated, ActionReadyForReview, ActionWaiting:
		*a = Action(s)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// State is the open/closed state of an issue or discussion.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

var ErrUnknownState = errors.New("unknown state")

// UnmarshalJSON rejects any state other than open or closed.
func (s *State) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch State(v) {
	case StateOpen, StateClosed:
		*s = State(v)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownState, v)
}

type User struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

type Label struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Repository struct {
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
}

// IssuePullRequestRef is only ever checked for presence.
type IssuePullRequestRef struct {
	HTMLURL string `json:"html_url"`
}

type Issue struct {
	HTMLURL     string               `json:"html_url"`
	Number      int                  `json:"number"`
	Title       string               `json:"title"`
	User        User                 `json:"user"`
	Labels      []Label              `json:"labels"`
	Body        *string              `json:"body"`
	State       State                `json:"state"`
	PullRequest *IssuePullRequestRef `json:"pull_request"`
}

// IsPR reports whether the issue is actually a pull request.
func (i Issue) IsPR() bool { return i.PullRequest != nil }

// Ref is a head or base reference. Label is "owner:branch" or a bare branch.
type Ref struct {
	Label string `json:"label"`
	Ref   string `json:"ref"`
}

type PullRequest struct {
	HTMLURL string  `json:"html_url"`
	Number  int     `json:"number"`
	Title   string  `json:"title"`
	User    User    `json:"user"`
	Body    *string `json:"body"`
	Head    Ref     `json:"head"`
	Base    Ref     `json:"base"`
	// Merged is nil until the pull request is closed; nil means ask the origin.
	Merged *bool   `json:"merged"`
	Draft  bool    `json:"draft"`
	Labels []Label `json:"labels"`
}

type Discussion struct {
	HTMLURL string  `json:"html_url"`
	Number  int     `json:"number"`
	Title   string  `json:"title"`
	User    User    `json:"user"`
	State   State   `json:"state"`
	Body    *string `json:"body"`
}

type WorkflowJob struct {
	RunURL       string `json:"run_url"`
	WorkflowName string `json:"workflow_name"`
	Name         string `json:"name"`
	HeadSHA      string `json:"head_sha"`
	HeadBranch   string `json:"head_branch"`
	RunID        int64  `json:"run_id"`
}

// DeploymentInfo accompanies a workflow job only when it is waiting for approval.
type DeploymentInfo struct {
	Environment string `json:"environment"`
	URL         string `json:"url"`
}

type Comment struct {
	HTMLURL string `json:"html_url"`
	User    User   `json:"user"`
	Body    string `json:"body"`
}

// WebhookEvent is one decoded GitHub webhook delivery.
// Exactly one resource is expected, but several may be present on the wire.
type WebhookEvent struct {
	Action     Action     `json:"action"`
	Sender     User       `json:"sender"`
	Repository Repository `json:"repository"`

	Issue       *Issue          `json:"issue"`
	Comment     *Comment        `json:"comment"`
	PullRequest *PullRequest    `json:"pull_request"`
	Discussion  *Discussion     `json:"discussion"`
	WorkflowJob *WorkflowJob    `json:"workflow_job"`
	Deployment  *DeploymentInfo `json:"deployment"`
}

// Body returns the dereferenced optional body text.
func Body(b *string) string {
	if b == nil {
		return ""
	}
	return *b
}
