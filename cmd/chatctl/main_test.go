package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SEED_FILE", "")
	t.Setenv("ACTOR_ID", "me")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestChatsListsPinnedFirst(t *testing.T) {
	out, err := run(t, "chats")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "chat-team"), lines[0])
	assert.Contains(t, lines[0], "📌")
}

func TestChatsFilters(t *testing.T) {
	out, err := run(t, "chats", "--category", "work", "-q", "dev")
	require.NoError(t, err)
	assert.Contains(t, out, "chat-dev")
	assert.NotContains(t, out, "chat-team")

	out, err = run(t, "chats", "-q", "nobody-has-this-name")
	require.NoError(t, err)
	assert.Contains(t, out, "no chats match")
}

func TestShowRendersReactionsAndDocuments(t *testing.T) {
	out, err := run(t, "show", "chat-team")
	require.NoError(t, err)
	assert.Contains(t, out, "📎 roadmap-q3.pdf (1.2 MB)")
	assert.Contains(t, out, "🎉 2")
}

func TestSearch(t *testing.T) {
	out, err := run(t, "search", "chat-ana", "THURSDAY")
	require.NoError(t, err)
	assert.Contains(t, out, "1 result(s)")
	assert.Contains(t, out, "ana-1")
}

func TestSendTextAndFile(t *testing.T) {
	out, err := run(t, "send", "chat-dev", "/shrug", "whatever")
	require.NoError(t, err)
	assert.Contains(t, out, "me: whatever ¯\\_(ツ)_/¯")

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	out, err = run(t, "send", "chat-dev", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "📎 notes.txt (5 B)")

	_, err = run(t, "send", "chat-dev")
	assert.Error(t, err, "empty message")
}

func TestReactAndPicker(t *testing.T) {
	out, err := run(t, "react", "chat-ana", "ana-1", "❤️")
	require.NoError(t, err)
	assert.Contains(t, out, "❤️ 1*")

	out, err = run(t, "react", "chat-ana", "ana-1", "+")
	require.NoError(t, err)
	assert.Contains(t, out, "pick an emoji")
}

func TestForward(t *testing.T) {
	out, err := run(t, "forward", "chat-ana", "--ids", "ana-1,ana-2", "--to", "chat-ben,chat-dev")
	require.NoError(t, err)
	assert.Contains(t, out, "forwarded 4 message(s)")
}

func TestUnknownChat(t *testing.T) {
	_, err := run(t, "show", "nope")
	assert.ErrorContains(t, err, "chat not found")
}

func TestSeedFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	seed := "users:\n  - id: me\n    name: Me\nchats:\n  - id: solo\n    name: Notes to self\n"
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	out, err := run(t, "--seed", path, "chats")
	require.NoError(t, err)
	assert.Contains(t, out, "Notes to self")
}
