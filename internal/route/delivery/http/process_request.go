package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	goslack "github.com/slack-go/slack"
	"github.com/spf13/pflag"

	"repoact-notify/pkg/signature"
)

const maxTimestampSkew = 5 * time.Minute

// processCommandReq verifies the Slack request signature and parses the
// slash command. A verification failure is returned as signature.ErrInvalidSignature.
func (h *handler) processCommandReq(c *gin.Context) (command, error) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return command{}, fmt.Errorf("read body: %w", err)
	}

	if err := h.verify(ctx, body, c.GetHeader("X-Slack-Request-Timestamp"), c.GetHeader("X-Slack-Signature")); err != nil {
		return command{}, err
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	sc, err := goslack.SlashCommandParse(c.Request)
	if err != nil {
		return command{}, fmt.Errorf("parse slash command: %w", err)
	}

	cmd, err := parseCommandText(sc.Text)
	if err != nil {
		return cmd, err
	}
	cmd.ChannelID = sc.ChannelID
	cmd.UserID = sc.UserID
	return cmd, nil
}

func (h *handler) verify(ctx context.Context, body []byte, timestamp, provided string) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return signature.ErrInvalidSignature
	}
	skew := h.now().Sub(time.Unix(ts, 0))
	if skew < 0 {
		skew = -skew
	}
	if skew > maxTimestampSkew {
		return fmt.Errorf("%w: %w", signature.ErrInvalidSignature, errStaleRequest)
	}

	bundle, err := h.secrets.Load(ctx)
	if err != nil {
		return err
	}

	return signature.Check(signature.ModeTimestamped, body, timestamp, provided, []byte(bundle.SlackSigningSecret))
}

// parseCommandText splits the command text into a subcommand and its flags.
func parseCommandText(text string) (command, error) {
	args := strings.Fields(text)
	if len(args) == 0 || args[0] == "help" {
		return command{Name: "help"}, nil
	}

	cmd := command{Name: args[0]}
	fs := pflag.NewFlagSet(cmd.Name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cmd.RouteID, "route", "", "route id")

	switch cmd.Name {
	case "register":
		fs.StringVar(&cmd.Repo, "repo", "", "repository as owner/name")
	case "show":
	default:
		return cmd, fmt.Errorf("%w: %s", errUnknownCommand, cmd.Name)
	}

	if err := fs.Parse(args[1:]); err != nil {
		return cmd, fmt.Errorf("%w: %v", errUnknownCommand, err)
	}
	if cmd.RouteID == "" {
		return cmd, fmt.Errorf("%w: --route", errMissingFlag)
	}
	if cmd.Name == "register" && cmd.Repo == "" {
		return cmd, fmt.Errorf("%w: --repo", errMissingFlag)
	}
	return cmd, nil
}
