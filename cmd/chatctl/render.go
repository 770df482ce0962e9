package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"chat-engine/internal/models"
	"chat-engine/internal/reaction"

	"github.com/dustin/go-humanize"
)

func preview(m *models.Message) string {
	if m == nil {
		return "no messages yet"
	}
	return describe(*m)
}

func describe(m models.Message) string {
	if m.IsDeleted {
		return "🚫 This message was deleted"
	}
	c := m.Content
	switch c.Kind {
	case models.KindDocument:
		return fmt.Sprintf("📎 %s (%s)", c.FileName, c.FileSize)
	case models.KindImage:
		return "🖼️ Photo"
	case models.KindGIF:
		return "GIF"
	}
	return c.Text
}

func printChat(w io.Writer, c models.Chat) {
	var flags []string
	if c.IsPinned {
		flags = append(flags, "📌")
	}
	if c.IsMuted {
		flags = append(flags, "🔕")
	}
	line := fmt.Sprintf("%-12s %s", c.ID, c.Name)
	if len(flags) > 0 {
		line += " " + strings.Join(flags, "")
	}
	if c.UnreadCount > 0 {
		line += fmt.Sprintf(" (%d unread)", c.UnreadCount)
	}
	fmt.Fprintln(w, line)

	last := preview(c.LastMessage)
	if c.LastMessage != nil && c.LastMessage.CreatedAt > 0 {
		last += ", " + humanize.Time(time.UnixMilli(c.LastMessage.CreatedAt))
	}
	fmt.Fprintf(w, "             %s\n", last)
}

func printMessage(w io.Writer, m models.Message, actor string) {
	line := fmt.Sprintf("[%s] %s: %s", m.Timestamp, m.SenderID, describe(m))
	if m.IsEdited && !m.IsDeleted {
		line += " (edited)"
	}
	if m.ReplyToID != "" {
		line += " ↩ " + m.ReplyToID
	}
	fmt.Fprintf(w, "%-10s %s\n", m.ID, line)

	if groups := reaction.Summarize(m.Reactions, actor); len(groups) > 0 {
		parts := make([]string, 0, len(groups))
		for _, g := range groups {
			p := fmt.Sprintf("%s %d", g.Emoji, g.Count)
			if g.Mine {
				p += "*"
			}
			parts = append(parts, p)
		}
		fmt.Fprintf(w, "%-10s   %s\n", "", strings.Join(parts, "  "))
	}
}
