package usecase

import (
	"fmt"

	"repoact-notify/internal/model"
	"repoact-notify/internal/notify"
)

func (uc *implUseCase) discussionEvent(ev model.WebhookEvent) (synthesis, error) {
	d := ev.Discussion

	var key string
	switch ev.Action {
	case model.ActionCreated:
		key = "discussion.created"
	case model.ActionClosed:
		key = "discussion.closed"
	case model.ActionReopened:
		key = "discussion.reopened"
	default:
		return synthesis{}, fmt.Errorf("%w: discussion %s", notify.ErrUnhandledAction, ev.Action)
	}

	text, err := uc.render(key, textData{Sender: ev.Sender.Login})
	if err != nil {
		return synthesis{}, err
	}

	color := notify.ColorOpen
	if ev.Action == model.ActionClosed {
		color = notify.ColorClosed
	}
	att := newAttachment(d.User, color)
	att.Title = resourceTitle(ev.Repository.FullName, d.Number, d.Title)
	att.TitleLink = d.HTMLURL
	att.Text = model.Body(d.Body)

	return synthesis{msg: notify.Message{Text: text, Attachment: att}}, nil
}
