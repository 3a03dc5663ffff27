package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_QueuesEncodedEvent(t *testing.T) {
	h := NewHub()

	h.Publish(Event{
		Type:    EventSaleRecorded,
		Action:  "sale_created",
		Message: "Ana sold 5 units of 'Laptop'",
		Data:    map[string]interface{}{"quantity": 5},
		User:    &Actor{ID: "user-1", Name: "Ana"},
	})

	require.Len(t, h.Broadcast, 1)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(<-h.Broadcast, &got))
	assert.Equal(t, EventSaleRecorded, got["type"])
	assert.Equal(t, "sale_created", got["action"])
	assert.EqualValues(t, 5, got["data"].(map[string]interface{})["quantity"])
	assert.Equal(t, "Ana", got["user"].(map[string]interface{})["name"])
}

func TestPublish_DropsWhenQueueFull(t *testing.T) {
	h := NewHub()
	for i := 0; i < cap(h.Broadcast)+10; i++ {
		h.Publish(Event{Type: EventStockUpdate})
	}
	assert.Len(t, h.Broadcast, cap(h.Broadcast))
	assert.Zero(t, h.ClientCount())
}

func TestRun_StopsJoinAndLeaveAfterShutdown(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	// While running, Leave of an unknown connection is accepted and ignored.
	h.Leave(nil)
	assert.Zero(t, h.ClientCount())

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	returned := make(chan bool, 1)
	go func() {
		h.Leave(nil)
		returned <- h.Join(nil)
	}()
	select {
	case joined := <-returned:
		assert.False(t, joined)
	case <-time.After(time.Second):
		t.Fatal("Join/Leave blocked after the hub stopped")
	}

	select {
	case <-h.Done():
	default:
		t.Fatal("Done not closed")
	}
}
