package usecase

import (
	"context"
	"fmt"

	"repoact-notify/internal/branchflow"
	"repoact-notify/internal/model"
	"repoact-notify/internal/notify"
)

func (uc *implUseCase) pullRequestEvent(ctx context.Context, ev model.WebhookEvent, origin *originSession) (synthesis, error) {
	pr := ev.PullRequest

	switch ev.Action {
	case model.ActionOpened, model.ActionReopened, model.ActionClosed, model.ActionReadyForReview:
	default:
		return synthesis{}, fmt.Errorf("%w: pull_request %s", notify.ErrUnhandledAction, ev.Action)
	}

	// merged is null until GitHub has settled it.
	var merged bool
	if pr.Merged != nil {
		merged = *pr.Merged
	} else {
		flags, err := origin.pullRequestFlags(ctx, pr.Number)
		if err != nil {
			return synthesis{}, err
		}
		merged = flags.Merged
	}

	data := textData{Sender: ev.Sender.Login, URL: pr.HTMLURL, Number: pr.Number, Title: pr.Title}
	var key string
	switch ev.Action {
	case model.ActionReadyForReview:
		key = "pull_request.ready_for_review"
	case model.ActionOpened:
		key = "pull_request.opened"
		if pr.Draft {
			key = "pull_request.opened_draft"
		}
	case model.ActionReopened:
		key = "pull_request.reopened"
		if pr.Draft {
			key = "pull_request.reopened_draft"
		}
	case model.ActionClosed:
		key = "pull_request.closed"
		if merged {
			key = "pull_request.merged"
		}
	}

	text, err := uc.render(key, data)
	if err != nil {
		return synthesis{}, err
	}
	if pr.Draft && ev.Action == model.ActionOpened {
		suffix, err := uc.render("pull_request.draft_suffix", data)
		if err != nil {
			return synthesis{}, err
		}
		text += suffix
	}

	att := newAttachment(pr.User, pullRequestColor(ev.Action, merged, pr.Draft))
	att.Title = resourceTitle(ev.Repository.FullName, pr.Number, pr.Title)
	att.TitleLink = pr.HTMLURL
	att.Text = model.Body(pr.Body)
	att.Fields = append(att.Fields, notify.Field{
		Title: "Branch Flow",
		Value: branchflow.Describe(pr.Head.Label, pr.Base.Label),
		Short: false,
	})
	if f, ok := labelsField(pr.Labels); ok {
		att.Fields = append(att.Fields, f)
	}

	return synthesis{msg: notify.Message{Text: text, Attachment: att}}, nil
}

func pullRequestColor(action model.Action, merged, draft bool) string {
	switch {
	case action == model.ActionClosed && merged:
		return notify.ColorMerged
	case action == model.ActionClosed:
		return notify.ColorClosed
	case draft:
		return notify.ColorDraft
	}
	return notify.ColorOpenPR
}
