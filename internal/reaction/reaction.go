// Package reaction applies the one-reaction-per-actor rule to a message's
// reaction map.
package reaction

import (
	"cmp"
	"slices"

	"chat-engine/internal/models"
)

// OpenPicker is the token the presentation layer sends when the user asks
// for the emoji picker. It is never stored as a reaction.
const OpenPicker = "+"

type Outcome struct {
	Reactions models.Reactions
	// PickerRequested is set when the caller asked for the picker; Reactions
	// is then the unchanged input.
	PickerRequested bool
	Changed         bool
}

// Toggle applies emoji for actorID. The actor is first removed from every
// other bucket; if it was already in the emoji bucket the net effect is a
// removal, otherwise it is appended. Empty buckets are pruned. The input map
// is not modified.
func Toggle(current models.Reactions, actorID, emoji string) Outcome {
	if emoji == OpenPicker {
		return Outcome{Reactions: current, PickerRequested: true}
	}
	if emoji == "" || actorID == "" {
		return Outcome{Reactions: current}
	}

	out := make(models.Reactions, len(current)+1)
	held := false
	for e, actors := range current {
		kept := make([]string, 0, len(actors))
		for _, a := range actors {
			if a == actorID {
				if e == emoji {
					held = true
				}
				continue
			}
			kept = append(kept, a)
		}
		if len(kept) > 0 {
			out[e] = kept
		}
	}
	if !held {
		out[emoji] = append(out[emoji], actorID)
	}

	return Outcome{Reactions: out, Changed: true}
}

// HeldBy returns the emoji the actor currently reacted with, if any.
func HeldBy(r models.Reactions, actorID string) (string, bool) {
	for emoji, actors := range r {
		if slices.Contains(actors, actorID) {
			return emoji, true
		}
	}
	return "", false
}

type Group struct {
	Emoji string   `json:"emoji"`
	Count int      `json:"count"`
	Users []string `json:"users"`
	Mine  bool     `json:"mine"`
}

// Summarize flattens the map for rendering: most used first, ties broken by
// emoji so the order is stable between calls.
func Summarize(r models.Reactions, actorID string) []Group {
	groups := make([]Group, 0, len(r))
	for emoji, actors := range r {
		groups = append(groups, Group{
			Emoji: emoji,
			Count: len(actors),
			Users: slices.Clone(actors),
			Mine:  slices.Contains(actors, actorID),
		})
	}
	slices.SortFunc(groups, func(a, b Group) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Emoji, b.Emoji)
	})
	return groups
}
