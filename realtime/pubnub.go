package realtime

import (
	"log/slog"

	pubnub "github.com/pubnub/go/v7"

	"ticket-marketplace/models"
)

// PubNubSink mirrors the live feed onto PubNub channels named after the
// topics, for observers outside the process. Publishing is fire-and-forget.
type PubNubSink struct {
	pn *pubnub.PubNub
}

func NewPubNubSink(pn *pubnub.PubNub) *PubNubSink {
	return &PubNubSink{pn: pn}
}

func (s *PubNubSink) Publish(topic string, update models.Update) {
	go func() {
		_, _, err := s.pn.Publish().
			Channel(topic).
			Message(map[string]any{
				"type":      string(update.Type),
				"message":   update.Message,
				"details":   update.Details,
				"timestamp": update.Timestamp,
			}).
			Execute()
		if err != nil {
			slog.Error("pubnub publish failed", "topic", topic, "error", err)
		}
	}()
}
