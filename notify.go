package main

import "sync"

// notifier fans room snapshots out to subscribers. It stands between the
// reducer and whatever transport carries updates (SSE stream, polling, or a
// future peer channel): the reducer only publishes, subscribers only receive
// plain state-replace events.
type notifier struct {
	mu   sync.Mutex
	subs map[string]map[int]chan RoomSnapshot
	next int
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[int]chan RoomSnapshot)}
}

// Subscribe registers for snapshots of one room. The returned cancel func
// must be called when the subscriber goes away.
func (n *notifier) Subscribe(code string) (<-chan RoomSnapshot, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[code] == nil {
		n.subs[code] = make(map[int]chan RoomSnapshot)
	}
	id := n.next
	n.next++
	ch := make(chan RoomSnapshot, 1)
	n.subs[code][id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if subs, ok := n.subs[code]; ok {
			if _, ok := subs[id]; ok {
				delete(subs, id)
				close(ch)
			}
			if len(subs) == 0 {
				delete(n.subs, code)
			}
		}
	}
	return ch, cancel
}

// Publish delivers a snapshot to every subscriber of its room. Delivery is
// best-effort: a subscriber that has not drained its previous snapshot gets
// it replaced with the latest one instead of blocking the reducer.
func (n *notifier) Publish(snapshot RoomSnapshot) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[snapshot.Code] {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// CloseRoom drops all subscribers of a room, used when the room is deleted.
func (n *notifier) CloseRoom(code string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[code] {
		close(ch)
	}
	delete(n.subs, code)
}
