package repository

import (
	"context"
	"log"

	"chat-engine/internal/config"
	"chat-engine/internal/db"
)

// Open picks the directory named by cfg: Postgres when DATABASE_URL is set,
// then a seed file, then the built-in one. The returned func releases any
// connection it opened.
func Open(ctx context.Context, cfg *config.Config) (Directory, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Println("[DIRECTORY] Using Postgres directory")
		return NewPostgresDirectory(pool), pool.Close, nil
	case cfg.SeedFile != "":
		log.Printf("[DIRECTORY] Using seed file %s", cfg.SeedFile)
		return FileDirectory{Path: cfg.SeedFile}, func() {}, nil
	default:
		log.Println("[DIRECTORY] Using built-in directory")
		return StaticDirectory{Actor: cfg.ActorID}, func() {}, nil
	}
}
