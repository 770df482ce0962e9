// Package metrics exposes prometheus counters for engine commands.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "chat_engine"

var (
	MessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Messages appended by send.",
	})
	MessagesEdited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_edited_total",
		Help:      "Successful edits.",
	})
	MessagesDeleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_deleted_total",
		Help:      "Deleted messages by mode (soft, hard, clear).",
	}, []string{"mode"})
	MessagesForwarded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_forwarded_total",
		Help:      "Copies created by forwarding.",
	})
	ReactionsToggled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reactions_toggled_total",
		Help:      "Reaction applications that changed a message.",
	})
	Refusals = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "command_refusals_total",
		Help:      "Commands turned into no-ops by policy.",
	}, []string{"command"})
	ChatsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "groups_created_total",
		Help:      "Group chats created.",
	})
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		MessagesSent, MessagesEdited, MessagesDeleted, MessagesForwarded,
		ReactionsToggled, Refusals, ChatsCreated,
	}
}

// Register adds every engine collector to reg. Collectors that are already
// registered are skipped.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}
