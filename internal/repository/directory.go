package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"chat-engine/internal/lifecycle"
	"chat-engine/internal/models"
)

// Directory supplies the users and chats the store starts from.
type Directory interface {
	Load(ctx context.Context) ([]models.User, []models.Chat, error)
}

// finish validates a loaded directory and fills the derived fields every
// chat must carry before the store sees it.
func finish(users []models.User, chats []models.Chat) ([]models.User, []models.Chat, error) {
	userIDs := make(map[string]bool, len(users))
	for _, u := range users {
		if u.ID == "" {
			return nil, nil, fmt.Errorf("user %q has no id", u.Name)
		}
		if userIDs[u.ID] {
			return nil, nil, fmt.Errorf("duplicate user id %s", u.ID)
		}
		userIDs[u.ID] = true
	}

	chatIDs := make(map[string]bool, len(chats))
	for i := range chats {
		c := &chats[i]
		if c.ID == "" || chatIDs[c.ID] {
			return nil, nil, fmt.Errorf("chat %q: missing or duplicate id", c.Name)
		}
		chatIDs[c.ID] = true
		if c.Type == "" {
			c.Type = models.ChatIndividual
		}

		msgIDs := make(map[string]bool, len(c.Messages))
		for j := range c.Messages {
			m := &c.Messages[j]
			if m.ID == "" || msgIDs[m.ID] {
				return nil, nil, fmt.Errorf("chat %s: message %d has a missing or duplicate id", c.ID, j)
			}
			msgIDs[m.ID] = true
			if m.Content.Kind == "" {
				m.Content.Kind = models.KindText
			}
			if m.Timestamp == "" && m.CreatedAt > 0 {
				m.Timestamp = time.UnixMilli(m.CreatedAt).Format(lifecycle.TimestampLayout)
			}
		}
		for _, m := range c.Messages {
			if m.ReplyToID != "" && !msgIDs[m.ReplyToID] {
				log.Printf("[DIRECTORY] Chat %s: message %s replies to unknown %s", c.ID, m.ID, m.ReplyToID)
			}
		}
		c.RefreshLastMessage()
	}

	log.Printf("[DIRECTORY] Loaded %d users and %d chats", len(users), len(chats))
	return users, chats, nil
}
