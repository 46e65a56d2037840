package usecase

import (
	"context"

	"repoact-notify/internal/model"
	"repoact-notify/internal/notify"
)

func (uc *implUseCase) issueEvent(ev model.WebhookEvent) (synthesis, error) {
	iss := ev.Issue

	var key, color string
	switch ev.Action {
	case model.ActionOpened:
		key, color = "issue.opened", notify.ColorOpen
	case model.ActionClosed:
		key, color = "issue.closed", notify.ColorClosed
	case model.ActionReopened:
		key, color = "issue.reopened", notify.ColorOpen
	default:
		// Issues gain new actions over time; ignore rather than fail.
		return skipped("unprocessed issue event"), nil
	}

	text, err := uc.render(key, textData{Sender: ev.Sender.Login})
	if err != nil {
		return synthesis{}, err
	}

	att := newAttachment(iss.User, color)
	att.Title = resourceTitle(ev.Repository.FullName, iss.Number, iss.Title)
	att.TitleLink = iss.HTMLURL
	att.Text = model.Body(iss.Body)
	if f, ok := labelsField(iss.Labels); ok {
		att.Fields = append(att.Fields, f)
	}

	return synthesis{msg: notify.Message{Text: text, Attachment: att}}, nil
}

// issueStyle picks the icon and color for a comment on iss. Pull requests
// need their flags from GitHub since comment payloads never carry them.
func issueStyle(ctx context.Context, iss *model.Issue, origin *originSession) (string, string, error) {
	switch {
	case !iss.IsPR() && iss.State == model.StateClosed:
		return notify.IconIssueClosed, notify.ColorClosed, nil
	case iss.IsPR() && iss.State == model.StateOpen:
		flags, err := origin.pullRequestFlags(ctx, iss.Number)
		if err != nil {
			return "", "", err
		}
		if flags.Draft {
			return notify.IconDraft, notify.ColorDraft, nil
		}
		return notify.IconPullRequest, notify.ColorOpenPR, nil
	case iss.IsPR() && iss.State == model.StateClosed:
		flags, err := origin.pullRequestFlags(ctx, iss.Number)
		if err != nil {
			return "", "", err
		}
		if flags.Merged {
			return notify.IconMerged, notify.ColorMerged, nil
		}
		return notify.IconPRClosed, notify.ColorClosed, nil
	}
	return notify.IconIssueOpen, notify.ColorOpen, nil
}
