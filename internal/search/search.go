// Package search matches messages against a query and drives the
// scroll-then-highlight sequence that follows picking a result.
package search

import (
	"strings"

	"chat-engine/internal/models"
)

// Match returns messages whose text or file name contains query, ignoring
// case. An empty query matches nothing.
func Match(msgs []models.Message, query string) []models.Message {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []models.Message
	for _, m := range msgs {
		if strings.Contains(strings.ToLower(m.Content.Text), q) ||
			strings.Contains(strings.ToLower(m.Content.FileName), q) {
			out = append(out, m.Clone())
		}
	}
	return out
}
