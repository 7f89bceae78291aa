// Package notifications fans order events out to the configured channels.
// Delivery is best effort: a failing channel or recipient never affects the
// others, and nothing is reported back to the order operation.
package notifications

import (
	"strings"
)

// Config selects the active channels and their recipients.
//
// Types is an ordered list of channel names, matched case-insensitively.
// Recipients is keyed by channel name.
type Config struct {
	Types      []string
	Recipients map[string][]string
}

// ParseList splits a comma-separated setting, trimming entries and dropping
// empty ones. A blank input yields an empty list.
func ParseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) recipientsFor(channel string) []string {
	for name, recipients := range c.Recipients {
		if strings.EqualFold(name, channel) {
			return recipients
		}
	}
	return nil
}
