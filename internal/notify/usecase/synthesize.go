package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"repoact-notify/internal/model"
	"repoact-notify/internal/notify"
)

// synthesis is either a message to post or a benign skip.
type synthesis struct {
	msg    notify.Message
	skip   bool
	reason string
}

func skipped(reason string) synthesis {
	return synthesis{skip: true, reason: reason}
}

// textData is the data every phrase template may refer to.
type textData struct {
	Sender      string
	URL         string
	Number      int
	Title       string
	Icon        string
	CommentURL  string
	Tail        string
	Bang        string
	Workflow    string
	RunNumber   int
	Job         string
	Environment string
}

// synthesize picks the scenario by a fixed precedence: issue (or a comment
// on it), pull request, discussion (or a comment on it), workflow job.
func (uc *implUseCase) synthesize(ctx context.Context, ev model.WebhookEvent, origin *originSession) (synthesis, error) {
	switch {
	case ev.Issue != nil:
		if ev.Comment != nil {
			return uc.issueComment(ctx, ev, origin)
		}
		return uc.issueEvent(ev)
	case ev.PullRequest != nil:
		return uc.pullRequestEvent(ctx, ev, origin)
	case ev.Discussion != nil:
		if ev.Comment != nil {
			return uc.discussionComment(ev)
		}
		return uc.discussionEvent(ev)
	case ev.WorkflowJob != nil:
		return uc.workflowJobEvent(ctx, ev, origin)
	}
	return synthesis{}, fmt.Errorf("%w: no issue, pull_request, discussion or workflow_job", notify.ErrMalformedPayload)
}

func (uc *implUseCase) render(key string, data textData) (string, error) {
	s, err := uc.phrases.Render(uc.sel, key, data)
	if err != nil {
		return "", fmt.Errorf("notify.uc.render: %w", err)
	}
	return s, nil
}

func resourceTitle(repo string, number int, title string) string {
	return fmt.Sprintf("[%s]#%d: %s", repo, number, title)
}

func newAttachment(author model.User, color string) *notify.Attachment {
	return &notify.Attachment{
		Color:      color,
		AuthorName: author.Login,
		AuthorLink: author.HTMLURL,
		AuthorIcon: author.AvatarURL,
	}
}

// labelsField lists label names sorted and comma-joined. ok is false when
// there are no labels.
func labelsField(labels []model.Label) (notify.Field, bool) {
	if len(labels) == 0 {
		return notify.Field{}, false
	}
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return notify.Field{Title: "Labelled", Value: strings.Join(names, ","), Short: false}, true
}
