package repository

import (
	"context"
	"fmt"
	"log"

	"chat-engine/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDirectory assembles the directory from the users, chats and
// messages tables.
type PostgresDirectory struct {
	Users    UserRepository
	Chats    ChatRepo
	Messages MessageRepo
}

func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{
		Users:    NewUserRepo(pool),
		Chats:    NewChatRepo(pool),
		Messages: NewMessagesRepo(pool),
	}
}

func (d *PostgresDirectory) Load(ctx context.Context) ([]models.User, []models.Chat, error) {
	users, err := d.Users.ListUsers(ctx)
	if err != nil {
		return nil, nil, err
	}
	chats, members, err := d.Chats.ListChats(ctx)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := d.Messages.FetchAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load messages: %w", err)
	}
	return assemble(users, chats, members, msgs)
}

func assemble(users []models.User, chats []models.Chat, members map[string][]string, msgs map[string][]models.Message) ([]models.User, []models.Chat, error) {
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range chats {
		c := &chats[i]
		for _, id := range members[c.ID] {
			u, ok := byID[id]
			if !ok {
				log.Printf("[DIRECTORY] Chat %s lists unknown participant %s", c.ID, id)
				continue
			}
			c.Participants = append(c.Participants, u)
		}
		c.Messages = msgs[c.ID]
		delete(msgs, c.ID)
	}
	for chatID, orphans := range msgs {
		log.Printf("[DIRECTORY] Ignoring %d messages of unknown chat %s", len(orphans), chatID)
	}
	return finish(users, chats)
}
