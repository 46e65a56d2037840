package webhook

import "strings"

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	AllowedIPs []string // IP or CIDR allowlist, empty allows all
}

// gatewayRequest is the function-gateway invocation envelope.
type gatewayRequest struct {
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
	PathParameters  map[string]string `json:"pathParameters"`
}

// header looks name up case-insensitively.
func (r gatewayRequest) header(name string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

type gatewayResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

type deliverResp struct {
	State   string `json:"state"`
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Channel string `json:"channel,omitempty"`
}
