package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"chat-engine/internal/lifecycle"
	"chat-engine/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepo interface {
	// FetchAll returns every chat's messages keyed by chat id, each in
	// sequence order.
	FetchAll(ctx context.Context) (map[string][]models.Message, error)
}

type PostgresMessagesRepo struct {
	pool *pgxpool.Pool
}

func NewMessagesRepo(pool *pgxpool.Pool) MessageRepo {
	return &PostgresMessagesRepo{
		pool: pool,
	}
}

func (r *PostgresMessagesRepo) FetchAll(ctx context.Context) (map[string][]models.Message, error) {
	const query = `
        SELECT chat_id, id, sender_id, kind, text, media_url, file_name, file_size,
               created_at, status, COALESCE(reply_to_id, ''), is_edited, is_deleted, reactions
        FROM messages
        ORDER BY chat_id, seq`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Printf("[REPO ERROR] Message fetch failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	byChat := make(map[string][]models.Message)
	for rows.Next() {
		var (
			chatID    string
			m         models.Message
			createdAt time.Time
			status    int16
		)
		err := rows.Scan(
			&chatID,
			&m.ID,
			&m.SenderID,
			&m.Content.Kind,
			&m.Content.Text,
			&m.Content.MediaURL,
			&m.Content.FileName,
			&m.Content.FileSize,
			&createdAt,
			&status,
			&m.ReplyToID,
			&m.IsEdited,
			&m.IsDeleted,
			&m.Reactions,
		)
		if err != nil {
			log.Printf("[REPO ERROR] Scan failed: %v", err)
			return nil, err
		}
		m.CreatedAt = createdAt.UnixMilli()
		m.Timestamp = createdAt.Format(lifecycle.TimestampLayout)
		m.Status = models.MessageStatus(status)
		if m.Reactions == nil {
			m.Reactions = models.Reactions{}
		}
		byChat[chatID] = append(byChat[chatID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return byChat, nil
}
