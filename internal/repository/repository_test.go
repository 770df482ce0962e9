package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chat-engine/internal/config"
	"chat-engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticDirectory(t *testing.T) {
	now := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	users, chats, err := StaticDirectory{Actor: "me", Now: func() time.Time { return now }}.Load(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, users)
	assert.Equal(t, "me", users[0].ID)
	require.NotEmpty(t, chats)

	for _, c := range chats {
		assert.True(t, c.HasParticipant("me"), c.ID)
		if len(c.Messages) == 0 {
			assert.Nil(t, c.LastMessage)
			continue
		}
		require.NotNil(t, c.LastMessage)
		assert.Equal(t, c.Messages[len(c.Messages)-1].ID, c.LastMessage.ID)
	}

	newest := chats[0].Messages[len(chats[0].Messages)-1]
	assert.Equal(t, "me", newest.SenderID)
	assert.Equal(t, now.Add(-5*time.Minute).UnixMilli(), newest.CreatedAt)
	assert.Equal(t, "17:55", newest.Timestamp)
}

const seedYAML = `
users:
  - id: me
    name: Me
    role: admin
  - id: ana
    name: Ana
chats:
  - id: c1
    name: Ana
    category: personal
    is_pinned: true
    participants:
      - id: me
      - id: ana
    messages:
      - id: m1
        sender_id: ana
        created_at: 1767261600000
        status: read
        content:
          text: hi there
      - id: m2
        sender_id: me
        timestamp: "10:01"
        reply_to_id: m1
        content:
          kind: document
          file_name: notes.pdf
          file_size: 12 kB
        reactions:
          "👍": [ana]
  - id: c2
    type: group
    name: Empty group
`

func TestParseSeed(t *testing.T) {
	users, chats, err := ParseSeed([]byte(seedYAML))
	require.NoError(t, err)

	assert.Len(t, users, 2)
	require.Len(t, chats, 2)

	c1 := chats[0]
	assert.True(t, c1.IsPinned)
	assert.Equal(t, models.ChatIndividual, c1.Type)
	require.Len(t, c1.Messages, 2)
	assert.Equal(t, models.KindText, c1.Messages[0].Content.Kind)
	assert.Equal(t, models.StatusRead, c1.Messages[0].Status)
	assert.NotEmpty(t, c1.Messages[0].Timestamp)
	assert.Equal(t, "10:01", c1.Messages[1].Timestamp)
	assert.Equal(t, []string{"ana"}, c1.Messages[1].Reactions["👍"])
	require.NotNil(t, c1.LastMessage)
	assert.Equal(t, "m2", c1.LastMessage.ID)

	assert.Equal(t, models.ChatGroup, chats[1].Type)
	assert.Nil(t, chats[1].LastMessage)
}

func TestParseSeedRejectsDuplicates(t *testing.T) {
	_, _, err := ParseSeed([]byte(`
chats:
  - id: c1
    name: A
  - id: c1
    name: B
`))
	assert.Error(t, err)

	_, _, err = ParseSeed([]byte(`
chats:
  - id: c1
    name: A
    messages:
      - id: m1
      - id: m1
`))
	assert.Error(t, err)

	_, _, err = ParseSeed([]byte("users: [: broken"))
	assert.Error(t, err)
}

func TestFileDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	_, chats, err := FileDirectory{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, chats, 2)

	_, _, err = FileDirectory{Path: filepath.Join(t.TempDir(), "missing.yaml")}.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type fakeUsers []models.User

func (f fakeUsers) ListUsers(context.Context) ([]models.User, error) { return f, nil }

type fakeChats struct {
	chats   []models.Chat
	members map[string][]string
}

func (f fakeChats) ListChats(context.Context) ([]models.Chat, map[string][]string, error) {
	return f.chats, f.members, nil
}

type fakeMessages map[string][]models.Message

func (f fakeMessages) FetchAll(context.Context) (map[string][]models.Message, error) { return f, nil }

func TestPostgresDirectoryAssembles(t *testing.T) {
	d := &PostgresDirectory{
		Users: fakeUsers{{ID: "me"}, {ID: "ana"}},
		Chats: fakeChats{
			chats:   []models.Chat{{ID: "c1", Name: "Ana"}, {ID: "c2", Name: "Quiet"}},
			members: map[string][]string{"c1": {"me", "ana", "ghost"}},
		},
		Messages: fakeMessages{
			"c1":     {{ID: "m1", SenderID: "ana", Content: models.TextContent("yo")}},
			"orphan": {{ID: "x"}},
		},
	}

	_, chats, err := d.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, chats, 2)

	assert.Len(t, chats[0].Participants, 2)
	require.NotNil(t, chats[0].LastMessage)
	assert.Equal(t, "m1", chats[0].LastMessage.ID)
	assert.Empty(t, chats[1].Messages)
}

func TestOpenFallsBackToStatic(t *testing.T) {
	dir, release, err := Open(context.Background(), &config.Config{ActorID: "zoe"})
	require.NoError(t, err)
	defer release()

	users, _, err := dir.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "zoe", users[0].ID)

	dir, release, err = Open(context.Background(), &config.Config{SeedFile: "seed.yaml"})
	require.NoError(t, err)
	defer release()
	assert.Equal(t, FileDirectory{Path: "seed.yaml"}, dir)
}
