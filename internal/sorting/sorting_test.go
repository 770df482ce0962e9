package sorting

import (
	"testing"

	"chat-engine/internal/models"

	"github.com/stretchr/testify/assert"
)

func ids(chats []models.Chat) []string {
	out := make([]string, 0, len(chats))
	for _, c := range chats {
		out = append(out, c.ID)
	}
	return out
}

func TestSortPinnedFirstKeepsCollectionOrder(t *testing.T) {
	chats := []models.Chat{
		{ID: "1", IsPinned: false},
		{ID: "2", IsPinned: true},
		{ID: "3", IsPinned: false},
	}

	assert.Equal(t, []string{"2", "1", "3"}, ids(Sort(chats)))
	assert.Equal(t, []string{"1", "2", "3"}, ids(chats), "input must not be reordered")
}

func TestSortIgnoresRecency(t *testing.T) {
	chats := []models.Chat{
		{ID: "old", LastMessage: &models.Message{CreatedAt: 1}},
		{ID: "new", LastMessage: &models.Message{CreatedAt: 100}},
		{ID: "p1", IsPinned: true},
		{ID: "p2", IsPinned: true},
	}

	assert.Equal(t, []string{"p1", "p2", "old", "new"}, ids(Sort(chats)))
}

func TestApplyFilters(t *testing.T) {
	chats := []models.Chat{
		{ID: "a", Name: "Design Team", Category: "work"},
		{ID: "b", Name: "Alice", Category: "friends", IsPinned: true},
		{ID: "c", Name: "design review", Category: "work", IsPinned: true},
		{ID: "d", Name: "Bob", Category: "friends"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"b", "c", "a", "d"}},
		{"all category", Filter{Category: AllCategories}, []string{"b", "c", "a", "d"}},
		{"query is case insensitive", Filter{Query: "DESIGN"}, []string{"c", "a"}},
		{"category partition", Filter{Category: "friends"}, []string{"b", "d"}},
		{"query and category", Filter{Query: "design", Category: "friends"}, []string{}},
		{"embedded bypasses category", Filter{Category: "friends", Embedded: true}, []string{"b", "c", "a", "d"}},
		{"embedded shows only its chat", Filter{Category: "work", Embedded: true, ChatID: "d"}, []string{"d"}},
		{"chat id needs embedded mode", Filter{ChatID: "d"}, []string{"b", "c", "a", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(chats, tt.filter)))
		})
	}
}
