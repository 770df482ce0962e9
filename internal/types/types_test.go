package types

import (
	"encoding/json"
	"testing"
	"time"

	"chat-engine/internal/identity"
	"chat-engine/internal/models"
	"chat-engine/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandDecoding(t *testing.T) {
	raw := `{"type":"forward","ids":["m1","m2"],"targets":["a","b"]}`

	var cmd Command
	require.NoError(t, json.Unmarshal([]byte(raw), &cmd))

	assert.Equal(t, CmdForward, cmd.Type)
	assert.Equal(t, []string{"m1", "m2"}, cmd.IDs)
	assert.Equal(t, []string{"a", "b"}, cmd.Targets)
	assert.Nil(t, cmd.Content)
}

func TestSnapshotFollowsActiveChat(t *testing.T) {
	chats := []models.Chat{
		{ID: "c1", Name: "One", Messages: []models.Message{{ID: "m1", SenderID: "ana", Content: models.TextContent("hi")}}},
		{ID: "c2", Name: "Two", IsPinned: true},
	}
	s := store.New(nil, chats, store.Options{Actor: identity.Static("me")})

	ev := Snapshot(s)
	assert.Equal(t, EventState, ev.Type)
	assert.Empty(t, ev.ActiveChat)
	assert.Empty(t, ev.Messages)
	require.Len(t, ev.Chats, 2)
	assert.Equal(t, "c2", ev.Chats[0].ID)

	require.NoError(t, s.SetActiveChat("c1"))
	ev = Snapshot(s)
	assert.Equal(t, "c1", ev.ActiveChat)
	require.Len(t, ev.Messages, 1)
	require.NotNil(t, ev.Selection)
	assert.False(t, ev.Selection.Active)

	body, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"activeChat":"c1"`)
}

func TestSnapshotCarriesReactionsAndEditableIDs(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	theirs := models.Message{ID: "m1", SenderID: "ana", Content: models.TextContent("hi"), CreatedAt: now.UnixMilli()}
	theirs.Reactions = models.Reactions{"👍": {"ana", "me"}}
	mine := models.Message{ID: "m2", SenderID: "me", Content: models.TextContent("hello"), CreatedAt: now.UnixMilli()}
	chats := []models.Chat{{ID: "c1", Name: "One", Messages: []models.Message{theirs, mine}}}
	s := store.New(nil, chats, store.Options{
		Actor: identity.Static("me"),
		Clock: func() time.Time { return now.Add(time.Minute) },
	})
	require.NoError(t, s.SetActiveChat("c1"))

	ev := Snapshot(s)
	require.Len(t, ev.Reactions["m1"], 1)
	group := ev.Reactions["m1"][0]
	assert.Equal(t, "👍", group.Emoji)
	assert.Equal(t, 2, group.Count)
	assert.True(t, group.Mine)
	assert.NotContains(t, ev.Reactions, "m2")
	assert.Equal(t, []string{"m2"}, ev.Editable)

	body, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"reactions":{"m1":[{"emoji":"👍","count":2`)
	assert.Contains(t, string(body), `"editable":["m2"]`)
}

func TestErrorEvent(t *testing.T) {
	ev := ErrorEvent(store.ErrNoActiveChat)
	assert.Equal(t, EventError, ev.Type)
	assert.Equal(t, "no active chat", ev.Error)
}
