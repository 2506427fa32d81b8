package realtime

import (
	"testing"
	"time"

	"github.com/kashala/atm-finder-go/internal/models"
)

func TestHubDeliversToAllSubscribers(t *testing.T) {
	h := NewHub()
	a := h.Subscribe()
	b := h.Subscribe()

	ev := models.ChangeEvent{Event: "update", ATMID: "rawbank_1", IsAvailable: true, LastUpdated: time.Now()}
	h.Notify(ev)

	for _, ch := range []chan models.ChangeEvent{a, b} {
		select {
		case got := <-ch:
			if got.ATMID != "rawbank_1" {
				t.Errorf("got event for %q, want rawbank_1", got.ATMID)
			}
		default:
			t.Error("subscriber did not receive the event")
		}
	}
}

func TestHubSkipsSlowSubscriber(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()

	// Fill the buffer and then some; Notify must never block.
	for i := 0; i < cap(ch)+5; i++ {
		h.Notify(models.ChangeEvent{Event: "update", ATMID: "tmb_1"})
	}

	if len(ch) != cap(ch) {
		t.Errorf("buffered %d events, want a full buffer of %d", len(ch), cap(ch))
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	h.Unsubscribe(ch)

	if _, open := <-ch; open {
		t.Error("channel still open after Unsubscribe")
	}

	// Double unsubscribe must not panic on the already-closed channel.
	h.Unsubscribe(ch)

	h.Notify(models.ChangeEvent{Event: "update", ATMID: "bcdc_1"})
}
