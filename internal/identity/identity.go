// Package identity supplies the id of the single local actor issuing
// commands.
package identity

type Source interface {
	CurrentActor() string
}

// Static is a Source that always reports the same actor.
type Static string

func (s Static) CurrentActor() string { return string(s) }
