package repository

import (
	"context"
	"time"

	"chat-engine/internal/lifecycle"
	"chat-engine/internal/models"
)

// StaticDirectory is the built-in demo directory. Message times are laid out
// relative to Now so the newest message of the actor is still editable.
type StaticDirectory struct {
	Actor string
	Now   func() time.Time
}

func (d StaticDirectory) Load(_ context.Context) ([]models.User, []models.Chat, error) {
	actor := d.Actor
	if actor == "" {
		actor = "me"
	}
	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}
	at := func(minutesAgo int) (int64, string) {
		t := now.Add(-time.Duration(minutesAgo) * time.Minute)
		return t.UnixMilli(), t.Format(lifecycle.TimestampLayout)
	}
	msg := func(id, sender string, minutesAgo int, content models.Content) models.Message {
		ms, ts := at(minutesAgo)
		return models.Message{ID: id, SenderID: sender, Content: content, CreatedAt: ms, Timestamp: ts, Status: models.StatusRead}
	}

	me := models.User{ID: actor, Name: "You", Role: models.RoleAdmin, Online: true}
	ana := models.User{ID: "ana", Name: "Ana Ruiz", Role: models.RoleMember, Online: true}
	ben := models.User{ID: "ben", Name: "Ben Okafor", Role: models.RoleMember, LastSeen: "yesterday"}
	chloe := models.User{ID: "chloe", Name: "Chloe Park", Role: models.RoleMember, Online: true}
	dev := models.User{ID: "dev", Name: "Dev Patel", Role: models.RoleMember, LastSeen: "2h ago"}

	withAna := []models.Message{
		msg("ana-1", "ana", 180, models.TextContent("Are we still on for Thursday?")),
		msg("ana-2", actor, 175, models.TextContent("Yes! 7pm at the usual place")),
		msg("ana-3", "ana", 20, models.TextContent("Perfect, see you there")),
		msg("ana-4", actor, 5, models.TextContent("Bring the photos from the trip")),
	}
	withAna[1].Reactions = models.Reactions{"👍": {"ana"}}
	withAna[2].ReplyToID = "ana-2"
	withAna[3].Status = models.StatusDelivered

	team := []models.Message{
		msg("team-1", "chloe", 300, models.TextContent("Standup moved to 10:30")),
		msg("team-2", "dev", 240, models.Content{Kind: models.KindDocument, FileName: "roadmap-q3.pdf", FileSize: "1.2 MB", MediaURL: "https://files.example.com/roadmap-q3.pdf"}),
		msg("team-3", actor, 60, models.TextContent("Reviewed the roadmap, looks good")),
		msg("team-4", "chloe", 30, models.Content{Kind: models.KindGIF, MediaURL: "https://media.example.com/party.gif"}),
	}
	team[2].Reactions = models.Reactions{"🎉": {"chloe", "dev"}}

	withBen := []models.Message{
		msg("ben-1", "ben", 1500, models.TextContent("Can you send me the invoice?")),
		msg("ben-2", actor, 1440, models.Content{Kind: models.KindImage, MediaURL: "https://media.example.com/invoice.png"}),
	}

	users := []models.User{me, ana, ben, chloe, dev}
	chats := []models.Chat{
		{ID: "chat-ana", Type: models.ChatIndividual, Name: ana.Name, Participants: []models.User{me, ana}, Messages: withAna, UnreadCount: 1, Category: "personal"},
		{ID: "chat-team", Type: models.ChatGroup, Name: "Product Team", Participants: []models.User{me, chloe, dev}, Messages: team, UnreadCount: 2, IsPinned: true, Category: "work"},
		{ID: "chat-ben", Type: models.ChatIndividual, Name: ben.Name, Participants: []models.User{me, ben}, Messages: withBen, IsMuted: true, Category: "personal"},
		{ID: "chat-dev", Type: models.ChatIndividual, Name: dev.Name, Participants: []models.User{me, dev}, Category: "work"},
	}
	return finish(users, chats)
}
