package main

import (
	"errors"
	"sync"
)

// ErrRoomNotFound is returned when a room code resolves to nothing.
var ErrRoomNotFound = errors.New("room not found")

// RoomStore is the discovery/persistence collaborator: a mapping from room
// code to the canonical Room record and a parallel mapping to the latest
// published snapshot. No atomicity or versioning is guaranteed beyond
// last-write-wins; the host is the sole canonical writer in the intended flow.
type RoomStore interface {
	GetRoom(code string) (*Room, error)
	PutRoom(room *Room) error
	DeleteRoom(code string) error
	GetSnapshot(code string) (*RoomSnapshot, error)
	PutSnapshot(snapshot *RoomSnapshot) error
	DeleteSnapshot(code string) error
}

// MemoryRoomStore keeps rooms and snapshots in process memory. Rooms are
// copied on the way in and out so callers never alias stored state.
type MemoryRoomStore struct {
	mu        sync.RWMutex
	rooms     map[string]*Room
	snapshots map[string]*RoomSnapshot
}

// NewMemoryRoomStore returns an empty in-memory store.
func NewMemoryRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{
		rooms:     make(map[string]*Room),
		snapshots: make(map[string]*RoomSnapshot),
	}
}

func (s *MemoryRoomStore) GetRoom(code string) (*Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.clone(), nil
}

func (s *MemoryRoomStore) PutRoom(room *Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Code] = room.clone()
	return nil
}

func (s *MemoryRoomStore) DeleteRoom(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
	return nil
}

func (s *MemoryRoomStore) GetSnapshot(code string) (*RoomSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	c := *snap
	return &c, nil
}

func (s *MemoryRoomStore) PutSnapshot(snapshot *RoomSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *snapshot
	s.snapshots[snapshot.Code] = &c
	return nil
}

func (s *MemoryRoomStore) DeleteSnapshot(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, code)
	return nil
}
