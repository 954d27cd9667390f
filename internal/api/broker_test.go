package api

import (
    "testing"
    "time"
)

func TestBrokerPublishSubscribe(t *testing.T) {
    b := NewBroker()
    ch := b.Subscribe(TopicQuotes)

    evt := Event{Type: "quote.priced", Data: map[string]any{"total": 167.60}}
    b.Publish(TopicQuotes, evt)

    select {
    case got := <-ch:
        if got.Type != evt.Type { t.Fatalf("got type %s, want %s", got.Type, evt.Type) }
        if got.Data["total"].(float64) != 167.60 { t.Fatalf("bad payload: %+v", got.Data) }
    case <-time.After(200 * time.Millisecond):
        t.Fatal("timeout waiting for event")
    }

    b.Unsubscribe(TopicQuotes, ch)
    select {
    case _, ok := <-ch:
        if ok { t.Fatal("channel should be closed after unsubscribe") }
    case <-time.After(50 * time.Millisecond):
        // acceptable if already drained and closed
    }
}

func TestBrokerDropsWhenSubscriberFull(t *testing.T) {
    b := NewBroker()
    ch := b.Subscribe(TopicQuotes)
    defer b.Unsubscribe(TopicQuotes, ch)

    // Fill the buffer and then some; Publish must never block.
    for i := 0; i < 20; i++ {
        b.Publish(TopicQuotes, Event{Type: "quote.priced"})
    }
}
