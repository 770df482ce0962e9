// Package clipboard holds the text produced by bulk copy until the
// presentation layer picks it up.
package clipboard

import "sync"

type Buffer struct {
	mu   sync.Mutex
	text string
}

func (b *Buffer) Copy(text string) error {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
	return nil
}

func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Take returns the buffered text and empties the buffer.
func (b *Buffer) Take() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := b.text
	b.text = ""
	return t
}
