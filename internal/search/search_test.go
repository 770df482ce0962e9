package search

import (
	"testing"

	"chat-engine/internal/models"

	"github.com/stretchr/testify/assert"
)

func history() []models.Message {
	return []models.Message{
		{ID: "1", Content: models.TextContent("Lunch at noon?")},
		{ID: "2", Content: models.Content{Kind: models.KindDocument, FileName: "Q3-Report.pdf", FileSize: "1.2 MB"}},
		{ID: "3", Content: models.TextContent("the report looks fine")},
		{ID: "4", Content: models.Content{Kind: models.KindImage, MediaURL: "https://img/report.png"}},
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"REPORT", []string{"2", "3"}},
		{"noon", []string{"1"}},
		{"", nil},
		{"   ", nil},
		{"absent", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []string
			for _, m := range Match(history(), tt.query) {
				got = append(got, m.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmptyQueryMatchesNothingEvenWithContent(t *testing.T) {
	assert.Empty(t, Match(history(), ""))
}
