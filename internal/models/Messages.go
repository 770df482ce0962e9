package models

import (
	"fmt"
	"slices"
)

type ContentKind string

const (
	KindText     ContentKind = "text"
	KindGIF      ContentKind = "gif"
	KindImage    ContentKind = "image"
	KindDocument ContentKind = "document"
)

type MessageStatus int

const (
	StatusSent MessageStatus = iota
	StatusDelivered
	StatusRead
)

var statusNames = [...]string{"sent", "delivered", "read"}

func (s MessageStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

func (s MessageStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *MessageStatus) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = MessageStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown message status %q", string(b))
}

// Content is the payload variant of a message. Only the fields matching
// Kind are meaningful.
type Content struct {
	Kind     ContentKind `json:"kind" yaml:"kind"`
	Text     string      `json:"text,omitempty" yaml:"text"`
	MediaURL string      `json:"mediaUrl,omitempty" yaml:"media_url"`
	FileName string      `json:"fileName,omitempty" yaml:"file_name"`
	FileSize string      `json:"fileSize,omitempty" yaml:"file_size"`
}

func TextContent(text string) Content {
	return Content{Kind: KindText, Text: text}
}

// Reactions maps an emoji token to the ordered, duplicate-free actor ids
// that reacted with it.
type Reactions map[string][]string

func (r Reactions) Clone() Reactions {
	out := make(Reactions, len(r))
	for emoji, actors := range r {
		out[emoji] = slices.Clone(actors)
	}
	return out
}

type Message struct {
	ID        string        `json:"id" yaml:"id"`
	SenderID  string        `json:"senderId" yaml:"sender_id"`
	Content   Content       `json:"content" yaml:"content"`
	Timestamp string        `json:"timestamp" yaml:"timestamp"`
	CreatedAt int64         `json:"createdAt" yaml:"created_at"`
	Status    MessageStatus `json:"status" yaml:"status"`
	ReplyToID string        `json:"replyToId,omitempty" yaml:"reply_to_id"`
	IsEdited  bool          `json:"isEdited" yaml:"is_edited"`
	IsDeleted bool          `json:"isDeleted" yaml:"is_deleted"`
	Reactions Reactions     `json:"reactions" yaml:"reactions"`
}

func (m Message) Clone() Message {
	m.Reactions = m.Reactions.Clone()
	return m
}

func CloneMessages(msgs []Message) []Message {
	if msgs == nil {
		return nil
	}
	out := make([]Message, len(msgs))
	for i := range msgs {
		out[i] = msgs[i].Clone()
	}
	return out
}

// IndexOf returns the position of the message with the given id, or -1.
func IndexOf(msgs []Message, id string) int {
	return slices.IndexFunc(msgs, func(m Message) bool { return m.ID == id })
}
