package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ticket-marketplace/models"
)

func TestFanout_ForwardsToEverySink(t *testing.T) {
	first := NewRecorder()
	second := NewRecorder()
	fanout := Fanout{first, second}

	fanout.Publish(TopicSystem, models.NewUpdate(models.UpdateSystemStart, "started", nil))
	fanout.Publish(TopicTickets, models.NewUpdate(models.UpdateTicketPurchase, "purchase", nil))

	assert.Equal(t, 1, first.Count(TopicSystem, models.UpdateSystemStart))
	assert.Equal(t, 1, second.Count(TopicSystem, models.UpdateSystemStart))
	assert.Equal(t, 1, first.Count(TopicTickets, models.UpdateTicketPurchase))
	assert.Len(t, first.Updates(TopicSystem), 1)
}

func TestRecorder_KeepsTopicsSeparate(t *testing.T) {
	recorder := NewRecorder()

	recorder.Publish(TopicSystem, models.NewUpdate(models.UpdateSystemStatus, "one", nil))
	recorder.Publish(TopicSystem, models.NewUpdate(models.UpdateSystemStatus, "two", nil))

	assert.Len(t, recorder.Updates(TopicSystem), 2)
	assert.Empty(t, recorder.Updates(TopicTickets))

	updates := recorder.Updates(TopicSystem)
	assert.Equal(t, "one", updates[0].Message)
	assert.Equal(t, "two", updates[1].Message)
	assert.NotEmpty(t, updates[0].Timestamp)
}
