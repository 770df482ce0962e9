// Package sorting produces the ordered, filtered chat list shown to the user.
package sorting

import (
	"slices"
	"strings"

	"chat-engine/internal/models"
)

// AllCategories disables category partitioning, same as an empty category.
const AllCategories = "all"

type Filter struct {
	Query    string
	Category string
	// Embedded is the single-chat mode; it ignores Category. With ChatID set
	// only that chat is listed.
	Embedded bool
	ChatID   string
}

// Sort puts pinned chats before unpinned ones. There is no secondary key:
// chats with the same pin state keep their collection order.
func Sort(chats []models.Chat) []models.Chat {
	out := slices.Clone(chats)
	slices.SortStableFunc(out, func(a, b models.Chat) int {
		switch {
		case a.IsPinned == b.IsPinned:
			return 0
		case a.IsPinned:
			return -1
		default:
			return 1
		}
	})
	return out
}

func Apply(chats []models.Chat, f Filter) []models.Chat {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	partition := !f.Embedded && f.Category != "" && f.Category != AllCategories

	visible := make([]models.Chat, 0, len(chats))
	for _, c := range chats {
		if f.Embedded && f.ChatID != "" && c.ID != f.ChatID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(c.Name), query) {
			continue
		}
		if partition && c.Category != f.Category {
			continue
		}
		visible = append(visible, c)
	}
	return Sort(visible)
}
