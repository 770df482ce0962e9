package repository

import (
	"context"
	"fmt"

	"chat-engine/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatRepo interface {
	// ListChats returns chats in their stored order with participant ids
	// only; the directory resolves them against the user list.
	ListChats(ctx context.Context) ([]models.Chat, map[string][]string, error)
}

type PostgresChatRepo struct {
	pool *pgxpool.Pool
}

func NewChatRepo(pool *pgxpool.Pool) ChatRepo {
	return &PostgresChatRepo{pool: pool}
}

func (r *PostgresChatRepo) ListChats(ctx context.Context) ([]models.Chat, map[string][]string, error) {
	const query = `
		SELECT c.id, c.type, c.name, c.unread_count, c.is_pinned, c.is_muted, c.category,
		       COALESCE(array_agg(p.user_id ORDER BY p.position) FILTER (WHERE p.user_id IS NOT NULL), '{}')
		FROM chats c
		LEFT JOIN chat_participants p ON p.chat_id = c.id
		GROUP BY c.id
		ORDER BY c.position`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []models.Chat
	members := make(map[string][]string)
	for rows.Next() {
		var (
			c   models.Chat
			ids []string
		)
		if err := rows.Scan(&c.ID, &c.Type, &c.Name, &c.UnreadCount, &c.IsPinned, &c.IsMuted, &c.Category, &ids); err != nil {
			return nil, nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, c)
		members[c.ID] = ids
	}
	return chats, members, rows.Err()
}
