package http

import (
	"fmt"

	goslack "github.com/slack-go/slack"

	"repoact-notify/internal/route"
)

const helpText = "Usage:\n" +
	"`register --route <id> --repo <owner/name>` posts the repository's activity to this channel\n" +
	"`show --route <id>` shows where a route posts"

// command is a parsed slash-command invocation.
type command struct {
	Name      string
	RouteID   string
	Repo      string
	ChannelID string
	UserID    string
}

func (c command) toRegisterInput() route.RegisterInput {
	return route.RegisterInput{
		RouteID:            c.RouteID,
		RepositoryFullPath: c.Repo,
		ChannelID:          c.ChannelID,
	}
}

func ephemeral(text string) goslack.Msg {
	return goslack.Msg{
		ResponseType: goslack.ResponseTypeEphemeral,
		Text:         text,
	}
}

func newRegisteredReply(r route.Route) goslack.Msg {
	return ephemeral(fmt.Sprintf("Route `%s` now posts `%s` activity to <#%s>", r.ID, r.RepositoryFullPath, r.ChannelID))
}

func newShowReply(r route.Route) goslack.Msg {
	return ephemeral(fmt.Sprintf("Route `%s`: `%s` -> <#%s>", r.ID, r.RepositoryFullPath, r.ChannelID))
}

func newErrorReply(err error) goslack.Msg {
	return ephemeral(fmt.Sprintf("%v\n%s", err, helpText))
}
