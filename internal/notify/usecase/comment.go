package usecase

import (
	"context"

	"repoact-notify/internal/model"
	"repoact-notify/internal/notify"
)

func (uc *implUseCase) issueComment(ctx context.Context, ev model.WebhookEvent, origin *originSession) (synthesis, error) {
	iss := ev.Issue
	icon, color, err := issueStyle(ctx, iss, origin)
	if err != nil {
		return synthesis{}, err
	}
	return uc.commentMessage(ev, icon, color, iss.HTMLURL, iss.Number, iss.Title)
}

func (uc *implUseCase) discussionComment(ev model.WebhookEvent) (synthesis, error) {
	d := ev.Discussion
	color := notify.ColorOpen
	if d.State == model.StateClosed {
		color = notify.ColorClosed
	}
	return uc.commentMessage(ev, notify.IconDiscussion, color, d.HTMLURL, d.Number, d.Title)
}

// commentMessage has no title; the attachment belongs to the commenter.
func (uc *implUseCase) commentMessage(ev model.WebhookEvent, icon, color, url string, number int, title string) (synthesis, error) {
	cm := ev.Comment

	tail, err := uc.render("comment.tail", textData{})
	if err != nil {
		return synthesis{}, err
	}
	bang, err := uc.render("comment.bang", textData{})
	if err != nil {
		return synthesis{}, err
	}
	text, err := uc.render("comment.text", textData{
		Sender:     ev.Sender.Login,
		URL:        url,
		Icon:       icon,
		Number:     number,
		Title:      title,
		CommentURL: cm.HTMLURL,
		Tail:       tail,
		Bang:       bang,
	})
	if err != nil {
		return synthesis{}, err
	}

	att := newAttachment(cm.User, color)
	att.Text = cm.Body
	return synthesis{msg: notify.Message{Text: text, Attachment: att}}, nil
}
