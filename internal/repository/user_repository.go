package repository

import (
	"context"
	"fmt"

	"chat-engine/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &PostgresUserRepo{
		pool: pool,
	}
}

func (r *PostgresUserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT id, name, role, online, COALESCE(last_seen, '')
		FROM users
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.Online, &u.LastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
