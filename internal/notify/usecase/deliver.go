package usecase

import (
	"context"
	"errors"
	"fmt"

	goslack "github.com/slack-go/slack"

	"repoact-notify/internal/model"
	"repoact-notify/internal/notify"
	"repoact-notify/internal/route"
	"repoact-notify/pkg/signature"
	"repoact-notify/pkg/slack"
)

// Deliver verifies, parses, routes, resolves and posts one webhook delivery.
// Any error is terminal and nothing is posted after it.
func (uc *implUseCase) Deliver(ctx context.Context, input notify.DeliverInput) (notify.DeliverOutput, error) {
	out := notify.DeliverOutput{State: notify.StateReceived}

	bundle, err := uc.secrets.Load(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "notify.uc.Deliver Load: %v", err)
		return out, fmt.Errorf("%w: %w", notify.ErrSecretsUnavailable, err)
	}

	if err := signature.Check(signature.ModeBody, input.Body, "", input.Signature, []byte(bundle.GitHubWebhookSecret)); err != nil {
		uc.l.Warnf(ctx, "notify.uc.Deliver Check: %v", err)
		if errors.Is(err, signature.ErrSecretMissing) {
			return out, fmt.Errorf("%w: %w", notify.ErrSecretsUnavailable, err)
		}
		return out, fmt.Errorf("%w: %w", notify.ErrInvalidSignature, err)
	}
	out.State = notify.StateSignatureVerified

	if input.Event == notify.EventPing {
		out.Skipped = true
		out.Reason = "pong"
		return out, nil
	}

	ev, err := model.ParseWebhookEvent(input.Body)
	if err != nil {
		uc.l.Warnf(ctx, "notify.uc.Deliver ParseWebhookEvent: %v", err)
		return out, fmt.Errorf("%w: %w", notify.ErrMalformedPayload, err)
	}
	out.State = notify.StateParsed

	rt, err := uc.routes.Get(ctx, input.RouteID)
	if err != nil {
		if errors.Is(err, route.ErrRouteNotFound) || errors.Is(err, route.ErrInvalidRouteID) {
			uc.l.Warnf(ctx, "notify.uc.Deliver Get: route %q: %v", input.RouteID, err)
			return out, fmt.Errorf("%w: %q", notify.ErrRouteNotFound, input.RouteID)
		}
		uc.l.Errorf(ctx, "notify.uc.Deliver Get: %v", err)
		return out, err
	}
	out.State = notify.StateRouteResolved
	out.Channel = rt.ChannelID

	if rt.RepositoryFullPath != ev.Repository.FullName {
		uc.l.Warnf(ctx, "notify.uc.Deliver: route %s is for %s but event came from %s", rt.ID, rt.RepositoryFullPath, ev.Repository.FullName)
	}

	origin := uc.newOriginSession(bundle, rt.RepositoryFullPath)
	res, err := uc.synthesize(ctx, ev, origin)
	if origin.used() && err == nil {
		out.State = notify.StateFieldsResolved
	}
	if err != nil {
		uc.l.Errorf(ctx, "notify.uc.Deliver synthesize: %v", err)
		return out, err
	}
	if res.skip {
		uc.l.Infof(ctx, "notify.uc.Deliver: %s", res.reason)
		out.Skipped = true
		out.Reason = res.reason
		return out, nil
	}

	msg := res.msg
	msg.Channel = rt.ChannelID
	out.State = notify.StateMessageBuilt
	out.Text = msg.Text

	raw, err := uc.chat.PostMessage(ctx, bundle.SlackBotToken, toSlackMessage(msg))
	out.Response = raw
	if err != nil {
		uc.l.Errorf(ctx, "notify.uc.Deliver PostMessage: %v (response: %s)", err, raw)
		return out, fmt.Errorf("%w: %w", notify.ErrDeliveryFailed, err)
	}
	if apiErr := slack.APIError(raw); apiErr != "" {
		uc.l.Warnf(ctx, "notify.uc.Deliver PostMessage: slack reported %s", apiErr)
	}

	uc.l.Infof(ctx, "notify.uc.Deliver: delivered to %s, response: %s", msg.Channel, raw)
	out.State = notify.StateDelivered
	return out, nil
}

func toSlackMessage(m notify.Message) slack.Message {
	msg := slack.Message{
		Channel:     m.Channel,
		Text:        m.Text,
		AsUser:      true,
		UnfurlLinks: false,
		UnfurlMedia: false,
		Attachments: []goslack.Attachment{},
	}
	if m.Attachment == nil {
		return msg
	}

	a := m.Attachment
	fields := make([]goslack.AttachmentField, 0, len(a.Fields))
	for _, f := range a.Fields {
		fields = append(fields, goslack.AttachmentField{Title: f.Title, Value: f.Value, Short: f.Short})
	}
	msg.Attachments = append(msg.Attachments, goslack.Attachment{
		Color:      a.Color,
		AuthorName: a.AuthorName,
		AuthorLink: a.AuthorLink,
		AuthorIcon: a.AuthorIcon,
		Title:      a.Title,
		TitleLink:  a.TitleLink,
		Text:       a.Text,
		Fields:     fields,
	})
	return msg
}
