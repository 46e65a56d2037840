package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"repoact-notify/pkg/response"
	"repoact-notify/pkg/signature"
)

// Command godoc
// @Summary     Route configurator slash command
// @Description Registers or shows the repository and channel a route id posts to. Requests are signed with the Slack signing secret.
// @Tags        Route
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       X-Slack-Signature         header string true "v0=<hex hmac>"
// @Param       X-Slack-Request-Timestamp header string true "Unix seconds"
// @Success     200 {object} map[string]interface{} "Ephemeral Slack message"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /slack/commands [POST]
func (h *handler) Command(c *gin.Context) {
	ctx := c.Request.Context()

	cmd, err := h.processCommandReq(c)
	if err != nil {
		switch {
		case errors.Is(err, signature.ErrInvalidSignature):
			h.l.Warnf(ctx, "route.http.Command verify: %v", err)
			response.Unauthorized(c)
		case userFacing(err):
			c.JSON(http.StatusOK, newErrorReply(err))
		default:
			h.l.Errorf(ctx, "route.http.Command processCommandReq: %v", err)
			response.InternalError(c, err)
		}
		return
	}

	switch cmd.Name {
	case "register":
		r, err := h.uc.Register(ctx, cmd.toRegisterInput())
		if err != nil {
			h.reply(c, "uc.Register", err)
			return
		}
		h.l.Infof(ctx, "route.http.Command: %s registered route %s", cmd.UserID, r.ID)
		c.JSON(http.StatusOK, newRegisteredReply(r))
	case "show":
		r, err := h.uc.Get(ctx, cmd.RouteID)
		if err != nil {
			h.reply(c, "uc.Get", err)
			return
		}
		c.JSON(http.StatusOK, newShowReply(r))
	default:
		c.JSON(http.StatusOK, ephemeral(helpText))
	}
}

func (h *handler) reply(c *gin.Context, step string, err error) {
	if userFacing(err) {
		c.JSON(http.StatusOK, newErrorReply(err))
		return
	}
	h.l.Errorf(c.Request.Context(), "route.http.Command %s: %v", step, err)
	response.InternalError(c, err)
}
