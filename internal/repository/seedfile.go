package repository

import (
	"context"
	"fmt"
	"os"

	"chat-engine/internal/models"

	"gopkg.in/yaml.v3"
)

type seed struct {
	Users []models.User `yaml:"users"`
	Chats []models.Chat `yaml:"chats"`
}

// FileDirectory reads users and chats from a YAML seed file.
type FileDirectory struct {
	Path string
}

func (d FileDirectory) Load(_ context.Context) ([]models.User, []models.Chat, error) {
	raw, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) ([]models.User, []models.Chat, error) {
	var s seed
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, nil, fmt.Errorf("parse seed: %w", err)
	}
	return finish(s.Users, s.Chats)
}
