package coordinator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fooddash/fooddash-go/models"
)

func orderFrame(event string, order models.Order) models.PushFrame {
	data, _ := json.Marshal(order)
	return models.PushFrame{
		Channel: models.ChannelOrder,
		Scope:   "1",
		Event:   event,
		Data:    data,
	}
}

func statusFrame(orderID uint, status string) models.PushFrame {
	data, _ := json.Marshal(map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return models.PushFrame{
		Channel: models.ChannelOrder,
		Scope:   "1",
		Event:   models.EventOrderUpdate,
		Data:    data,
	}
}

func TestApplyPollIsIdempotent(t *testing.T) {
	feed := NewFeed()
	result := []models.Order{
		{ID: 1, Status: models.StatusPendingApproval},
		{ID: 2, Status: models.StatusApproved},
	}

	feed.ApplyPoll(result)
	feed.ApplyPoll(result)

	assert.Equal(t, 2, feed.Len())
	orders := feed.Orders()
	assert.Equal(t, uint(1), orders[0].ID)
	assert.Equal(t, uint(2), orders[1].ID)
}

func TestApplyPollOverwritesInPlace(t *testing.T) {
	feed := NewFeed()
	feed.ApplyPoll([]models.Order{
		{ID: 1, Status: models.StatusPendingApproval},
		{ID: 2, Status: models.StatusPendingApproval},
	})

	feed.ApplyPoll([]models.Order{{ID: 1, Status: models.StatusApproved}})

	orders := feed.Orders()
	assert.Equal(t, uint(1), orders[0].ID)
	assert.Equal(t, models.StatusApproved, orders[0].Status)
	assert.Equal(t, uint(2), orders[1].ID)
}

func TestApplyPollDropsOrdersWithoutID(t *testing.T) {
	feed := NewFeed()
	feed.ApplyPoll([]models.Order{{Status: models.StatusApproved}})
	assert.Equal(t, 0, feed.Len())
}

func TestPushNewOrderPrepends(t *testing.T) {
	feed := NewFeed()
	feed.ApplyPoll([]models.Order{{ID: 1, Status: models.StatusApproved}})

	feed.ApplyPush(orderFrame(models.EventNewOrder, models.Order{ID: 2, Status: models.StatusPendingApproval}))

	orders := feed.Orders()
	assert.Len(t, orders, 2)
	assert.Equal(t, uint(2), orders[0].ID)
	assert.Equal(t, uint(1), orders[1].ID)
}

func TestPushNewOrderIgnoredForKnownID(t *testing.T) {
	feed := NewFeed()
	feed.ApplyPoll([]models.Order{{ID: 1, Status: models.StatusApproved, TotalPrice: 10}})

	feed.ApplyPush(orderFrame(models.EventNewOrder, models.Order{ID: 1, Status: models.StatusPendingApproval}))

	assert.Equal(t, 1, feed.Len())
	got, ok := feed.Get(1)
	assert.True(t, ok)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, 10.0, got.TotalPrice)
}

func TestPushThenPollDeduplicates(t *testing.T) {
	feed := NewFeed()

	feed.ApplyPush(orderFrame(models.EventNewOrder, models.Order{ID: 5, Status: models.StatusPendingApproval}))
	feed.ApplyPoll([]models.Order{{ID: 5, Status: models.StatusPendingApproval, TotalPrice: 42}})

	assert.Equal(t, 1, feed.Len())
	got, _ := feed.Get(5)
	assert.Equal(t, 42.0, got.TotalPrice)
}

func TestStatusUpdatePatchesKnownOrder(t *testing.T) {
	feed := NewFeed()
	feed.ApplyPoll([]models.Order{{ID: 10, Status: models.StatusApproved, TotalPrice: 20}})

	feed.ApplyPush(statusFrame(10, "picked_up"))

	got, _ := feed.Get(10)
	assert.Equal(t, models.StatusPickedUp, got.Status)
	assert.Equal(t, 20.0, got.TotalPrice)
}

func TestStatusUpdateForUnknownOrderIsIgnored(t *testing.T) {
	feed := NewFeed()
	feed.ApplyPoll([]models.Order{{ID: 10, Status: models.StatusApproved}})

	feed.ApplyPush(statusFrame(99, "picked_up"))

	assert.Equal(t, 1, feed.Len())
	_, ok := feed.Get(99)
	assert.False(t, ok)
}

// A poll that still carries the pre-push status wins over the pushed one.
// Polls are authoritative; push is only a low-latency hint.
func TestPollOverridesPushedStatus(t *testing.T) {
	feed := NewFeed()
	feed.ApplyPoll([]models.Order{{ID: 10, Status: models.StatusApproved}})

	feed.ApplyPush(statusFrame(10, "picked_up"))
	got, _ := feed.Get(10)
	assert.Equal(t, models.StatusPickedUp, got.Status)

	feed.ApplyPoll([]models.Order{{ID: 10, Status: models.StatusApproved}})
	got, _ = feed.Get(10)
	assert.Equal(t, models.StatusApproved, got.Status)
}

func TestMalformedPushesAreDropped(t *testing.T) {
	feed := NewFeed()
	feed.ApplyPoll([]models.Order{{ID: 1, Status: models.StatusApproved}})

	// Status update without an order id.
	feed.ApplyPush(models.PushFrame{
		Channel: models.ChannelOrder,
		Event:   models.EventOrderUpdate,
		Data:    json.RawMessage(`{"status":"approved"}`),
	})
	// Status update with an unknown status value.
	feed.ApplyPush(statusFrame(1, "teleported"))
	// New order without an id.
	feed.ApplyPush(orderFrame(models.EventNewOrder, models.Order{Status: models.StatusPendingApproval}))
	// Chat events do not touch the feed.
	feed.ApplyPush(models.PushFrame{
		Channel: models.ChannelChat,
		Event:   models.EventChatMessage,
		Data:    json.RawMessage(`{"conversation_id":1}`),
	})

	assert.Equal(t, 1, feed.Len())
	got, _ := feed.Get(1)
	assert.Equal(t, models.StatusApproved, got.Status)
}
