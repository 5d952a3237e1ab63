package hub

import (
	"testing"
	"time"
)

func TestBroadcastJSON(t *testing.T) {
	h := New("status", nil)

	if err := h.BroadcastJSON(map[string]int{"reps": 3}); err != nil {
		t.Fatalf("BroadcastJSON: %v", err)
	}
	msg := <-h.broadcast
	if msg.Type != JSONMessage {
		t.Errorf("Type = %v, want JSONMessage", msg.Type)
	}
	if string(msg.Data) != `{"reps":3}` {
		t.Errorf("Data = %s", msg.Data)
	}

	if err := h.BroadcastJSON(make(chan int)); err == nil {
		t.Error("expected marshal error for channel value")
	}
}

func TestBroadcastDropsWhenFull(t *testing.T) {
	h := New("frames", nil)
	for i := 0; i < cap(h.broadcast)+10; i++ {
		h.BroadcastBinary([]byte{0xff})
	}
	if got := len(h.broadcast); got != cap(h.broadcast) {
		t.Errorf("queue length = %d, want %d", got, cap(h.broadcast))
	}
}

func TestSlowClientDropRacesNoReader(t *testing.T) {
	h := New("frames", nil)
	go h.Run()

	// A client that never drains its send buffer.
	slow := &Client{hub: h, send: make(chan Message, 1)}
	h.register <- slow

	// Hammer the read path while broadcasts evict the slow client.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			h.ClientCount()
		}
	}()
	for i := 0; i < 16; i++ {
		h.Broadcast(Message{Type: BinaryMessage, Data: []byte{0x01}})
	}
	<-done

	deadline := time.After(2 * time.Second)
	for h.ClientCount() != 0 {
		select {
		case <-deadline:
			t.Fatal("slow client was never dropped")
		case <-time.After(10 * time.Millisecond):
		}
	}
	if _, ok := <-slow.send; ok {
		// Drain until the hub's close is observed.
		for range slow.send {
		}
	}
}

func TestClientCountEmpty(t *testing.T) {
	h := New("status", nil)
	if h.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0", h.ClientCount())
	}
}
