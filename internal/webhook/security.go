package webhook

import (
	"fmt"
	"net"
	"strings"
)

// SecurityValidator applies transport-level checks before a delivery is
// handed to the notifier. Signatures are verified by the notifier itself.
type SecurityValidator struct {
	config SecurityConfig
	nets   []*net.IPNet
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	v := &SecurityValidator{config: config}
	for _, allowed := range config.AllowedIPs {
		if !strings.Contains(allowed, "/") {
			continue
		}
		if _, ipNet, err := net.ParseCIDR(allowed); err == nil {
			v.nets = append(v.nets, ipNet)
		}
	}
	return v
}

// ValidateIPAddress checks the client IP against the allowlist.
func (v *SecurityValidator) ValidateIPAddress(ip string) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil // No IP restriction
	}

	for _, allowedIP := range v.config.AllowedIPs {
		if ip == allowedIP {
			return nil
		}
	}

	parsed := net.ParseIP(ip)
	if parsed != nil {
		for _, ipNet := range v.nets {
			if ipNet.Contains(parsed) {
				return nil
			}
		}
	}

	return fmt.Errorf("IP %s not whitelisted", ip)
}
