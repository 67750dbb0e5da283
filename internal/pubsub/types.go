package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/vmihailenco/msgpack/v5"
)

type client struct {
	client      *pubsub.Client
	topicPrefix string
	teardown    func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventPlayerRegistered    EventType = "player-registered"
	EventMatchReported       EventType = "match-reported"
	EventTournamentCompleted EventType = "tournament-completed"
	EventPostAdded           EventType = "post-added"
)

// Event is the envelope published for every EventType.
type Event struct {
	Type       EventType `msgpack:"type"`
	OccurredAt time.Time `msgpack:"occurred_at"`
	Payload    any       `msgpack:"payload"`
}

// rawEvent is Event with the payload left encoded until the type is known.
type rawEvent struct {
	Type       EventType          `msgpack:"type"`
	OccurredAt time.Time          `msgpack:"occurred_at"`
	Payload    msgpack.RawMessage `msgpack:"payload"`
}
