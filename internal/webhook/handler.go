package webhook

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"repoact-notify/internal/notify"
	pkgResponse "repoact-notify/pkg/response"
)

const (
	headerSignature = "X-Hub-Signature-256"
	headerEvent     = "X-GitHub-Event"
)

var errMissingRoute = errors.New("route_id path parameter is required")

// HandleGitHubWebhook godoc
// @Summary     GitHub webhook receiver
// @Description Verifies, classifies and posts one GitHub webhook delivery to the route's Slack channel.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Param       route_id            path   string true "Route id"
// @Param       X-Hub-Signature-256 header string true "sha256=<hex hmac>"
// @Param       X-GitHub-Event      header string false "Event name"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Malformed payload"
// @Failure     401 {object} response.Resp "Invalid signature"
// @Failure     404 {object} response.Resp "Route not found"
// @Failure     422 {object} response.Resp "Unhandled action"
// @Failure     502 {object} response.Resp "GitHub or Slack failure"
// @Router      /webhook/github/{route_id} [POST]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateIPAddress(c.ClientIP()); err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: %v", err)
		pkgResponse.Forbidden(c)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "Failed to read webhook body: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	out, err := h.notifyUC.Deliver(ctx, notify.DeliverInput{
		RouteID:   c.Param("route_id"),
		Body:      body,
		Signature: c.GetHeader(headerSignature),
		Event:     c.GetHeader(headerEvent),
	})
	if err != nil {
		h.l.Errorf(ctx, "webhook.HandleGitHubWebhook Deliver (state %s): %v", out.State, err)
		pkgResponse.Error(c, h.mapError(err), nil)
		return
	}

	pkgResponse.OK(c, newDeliverResp(out))
}

// HandleInvoke godoc
// @Summary     Function gateway invocation
// @Description Accepts a gateway envelope carrying the webhook headers, the (optionally base64) body and the route id path parameter.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Success     200 {object} gatewayResponse
// @Failure     400 {object} gatewayResponse
// @Router      /invoke [POST]
func (h *Handler) HandleInvoke(c *gin.Context) {
	ctx := c.Request.Context()

	var req gatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "webhook.HandleInvoke bind: %v", err)
		writeGateway(c, http.StatusBadRequest, "invalid envelope")
		return
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			h.l.Warnf(ctx, "webhook.HandleInvoke decode: %v", err)
			writeGateway(c, http.StatusBadRequest, "invalid base64 body")
			return
		}
		body = decoded
	}

	routeID := req.PathParameters["route_id"]
	if routeID == "" {
		writeGateway(c, http.StatusBadRequest, errMissingRoute.Error())
		return
	}

	out, err := h.notifyUC.Deliver(ctx, notify.DeliverInput{
		RouteID:   routeID,
		Body:      body,
		Signature: req.header(headerSignature),
		Event:     req.header(headerEvent),
	})
	if err != nil {
		h.l.Errorf(ctx, "webhook.HandleInvoke Deliver (state %s): %v", out.State, err)
		he := h.mapError(err)
		writeGateway(c, he.StatusCode, he.Message)
		return
	}

	if out.Skipped {
		writeGateway(c, http.StatusOK, out.Reason)
		return
	}
	writeGateway(c, http.StatusOK, out.Response)
}

func writeGateway(c *gin.Context, status int, body string) {
	c.JSON(status, gatewayResponse{
		StatusCode: status,
		Headers:    map[string]string{},
		Body:       body,
	})
}

func newDeliverResp(out notify.DeliverOutput) deliverResp {
	return deliverResp{
		State:   out.State.String(),
		Skipped: out.Skipped,
		Reason:  out.Reason,
		Channel: out.Channel,
	}
}
