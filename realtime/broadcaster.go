package realtime

import (
	"sync"

	"ticket-marketplace/models"
)

// The two logical topics on the live feed.
const (
	TopicSystem  = "system-updates"
	TopicTickets = "ticket-updates"
)

// Broadcaster is the write-only sink the core publishes into. Delivery is
// best-effort: implementations must never block and never return failure
// into the caller.
type Broadcaster interface {
	Publish(topic string, update models.Update)
}

// Fanout forwards every update to each sink in order.
type Fanout []Broadcaster

func (f Fanout) Publish(topic string, update models.Update) {
	for _, sink := range f {
		sink.Publish(topic, update)
	}
}

// Recorder captures published updates for inspection in tests.
type Recorder struct {
	mu      sync.Mutex
	byTopic map[string][]models.Update
}

func NewRecorder() *Recorder {
	return &Recorder{byTopic: make(map[string][]models.Update)}
}

func (r *Recorder) Publish(topic string, update models.Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTopic[topic] = append(r.byTopic[topic], update)
}

// Updates returns a copy of everything published on a topic so far.
func (r *Recorder) Updates(topic string) []models.Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Update, len(r.byTopic[topic]))
	copy(out, r.byTopic[topic])
	return out
}

// Count reports how many updates of a given type were seen on a topic.
func (r *Recorder) Count(topic string, t models.UpdateType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.byTopic[topic] {
		if u.Type == t {
			n++
		}
	}
	return n
}
