package pubsub

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Google Cloud Pub/Sub. Topics are named "<prefix>-<event type>".
func New(ctx context.Context, projectID, topicPrefix string) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	teardown := func() {
		if err := pubSubC.Close(); err != nil {
			log.Error("Failed to close pubsub client", "error", err)
		}
	}

	return &client{
		client:      pubSubC,
		topicPrefix: topicPrefix,
		teardown:    teardown,
	}, nil
}

// Encode wraps data in an Event envelope and serialises it with MessagePack.
func Encode(topic EventType, data any) ([]byte, error) {
	return msgpack.Marshal(Event{
		Type:       topic,
		OccurredAt: time.Now().UTC(),
		Payload:    data,
	})
}

// Decode reverses Encode, unpacking the payload into v.
func Decode(data []byte, v any) (EventType, error) {
	var raw rawEvent
	if err := msgpack.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("failed to decode event: %w", err)
	}
	if err := msgpack.Unmarshal(raw.Payload, v); err != nil {
		return raw.Type, fmt.Errorf("failed to decode %s payload: %w", raw.Type, err)
	}
	return raw.Type, nil
}

func (c *client) topicName(topic EventType) string {
	if c.topicPrefix == "" {
		return string(topic)
	}
	return c.topicPrefix + "-" + string(topic)
}

func (c *client) SendMessage(topic EventType, data any) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msgpackData, err := Encode(topic, data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{"type": string(topic)},
	}
	name := c.topicName(topic)
	result := c.client.Topic(name).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", name)
		return err
	}
	log.Debug("SendMessage", "serverID", serverID, "topic", name)
	return nil
}

func (c *client) Close() {
	c.teardown()
}

// Discard is a PubSubClient that only logs. It is used when no project is configured.
type Discard struct{}

func (Discard) SendMessage(topic EventType, data any) error {
	log.Debug("Pubsub disabled, dropping event", "topic", topic)
	return nil
}

func (Discard) Close() {}
