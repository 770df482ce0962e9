// Package attachment turns a local file into something a message can carry:
// a retrievable reference and a human readable size.
package attachment

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"chat-engine/internal/models"

	"github.com/dustin/go-humanize"
)

type Attachment struct {
	Reference string
	Name      string
	Size      string
	Kind      models.ContentKind
}

// FromFile stats path and describes it. Directories are rejected.
func FromFile(path string) (Attachment, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Attachment{}, fmt.Errorf("stat attachment: %w", err)
	}
	if info.IsDir() {
		return Attachment{}, fmt.Errorf("attachment %s is a directory", path)
	}

	ref := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return Attachment{
		Reference: ref.String(),
		Name:      info.Name(),
		Size:      humanize.Bytes(uint64(info.Size())),
		Kind:      KindFor(info.Name()),
	}, nil
}

// KindFor guesses the content variant from a file extension.
func KindFor(name string) models.ContentKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gif":
		return models.KindGIF
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp":
		return models.KindImage
	default:
		return models.KindDocument
	}
}

// Content is the message payload for the attachment. Media kinds carry the
// reference as their URL; documents carry name and size.
func (a Attachment) Content() models.Content {
	switch a.Kind {
	case models.KindGIF, models.KindImage:
		return models.Content{Kind: a.Kind, MediaURL: a.Reference}
	default:
		return models.Content{Kind: models.KindDocument, MediaURL: a.Reference, FileName: a.Name, FileSize: a.Size}
	}
}
