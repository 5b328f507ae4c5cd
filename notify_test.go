package main

import (
	"testing"
	"time"
)

func TestNotifierDeliversSnapshots(t *testing.T) {
	n := newNotifier()
	updates, cancel := n.Subscribe("ABCDEF")
	defer cancel()

	n.Publish(RoomSnapshot{Code: "ABCDEF", Phase: PhaseActive})

	select {
	case snap := <-updates:
		if snap.Phase != PhaseActive {
			t.Errorf("received phase %v, want active", snap.Phase)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestNotifierIgnoresOtherRooms(t *testing.T) {
	n := newNotifier()
	updates, cancel := n.Subscribe("ABCDEF")
	defer cancel()

	n.Publish(RoomSnapshot{Code: "GGGGGG", Phase: PhaseActive})

	select {
	case snap := <-updates:
		t.Errorf("received snapshot for unrelated room: %+v", snap)
	default:
	}
}

// TestNotifierReplacesUndrainedSnapshot checks that a slow subscriber gets
// the latest snapshot instead of blocking the publisher.
func TestNotifierReplacesUndrainedSnapshot(t *testing.T) {
	n := newNotifier()
	updates, cancel := n.Subscribe("ABCDEF")
	defer cancel()

	n.Publish(RoomSnapshot{Code: "ABCDEF", Phase: PhaseWaiting})
	n.Publish(RoomSnapshot{Code: "ABCDEF", Phase: PhaseActive})
	n.Publish(RoomSnapshot{Code: "ABCDEF", Phase: PhaseWon})

	select {
	case snap := <-updates:
		if snap.Phase != PhaseWon {
			t.Errorf("received phase %v, want latest (won)", snap.Phase)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestNotifierCancel(t *testing.T) {
	n := newNotifier()
	updates, cancel := n.Subscribe("ABCDEF")
	cancel()

	if _, ok := <-updates; ok {
		t.Error("channel should be closed after cancel")
	}
	// Cancelling twice must not panic.
	cancel()
	// Publishing to a room with no subscribers is a no-op.
	n.Publish(RoomSnapshot{Code: "ABCDEF", Phase: PhaseActive})
}

func TestNotifierCloseRoom(t *testing.T) {
	n := newNotifier()
	updates, cancel := n.Subscribe("ABCDEF")

	n.CloseRoom("ABCDEF")
	if _, ok := <-updates; ok {
		t.Error("channel should be closed when the room closes")
	}
	// Cancel after CloseRoom must not double-close.
	cancel()
}
