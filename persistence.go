package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileRoomStore persists rooms and snapshots as JSON files under a data
// directory, one file per room code. Unreadable or structurally invalid
// records are discarded on read rather than surfaced to the caller.
type FileRoomStore struct {
	roomDir     string
	snapshotDir string
}

// NewFileRoomStore creates the backing directories if needed.
func NewFileRoomStore(dataDir string) (*FileRoomStore, error) {
	s := &FileRoomStore{
		roomDir:     filepath.Join(dataDir, "rooms"),
		snapshotDir: filepath.Join(dataDir, "snapshots"),
	}
	for _, dir := range []string{s.roomDir, s.snapshotDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logWarn("Failed to create store directory %s: %v", dir, err)
			return nil, err
		}
	}
	return s, nil
}

func (s *FileRoomStore) GetRoom(code string) (*Room, error) {
	if !isRoomCode(code) {
		return nil, ErrRoomNotFound
	}
	path := filepath.Join(s.roomDir, code+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	var room Room
	if err := json.Unmarshal(data, &room); err != nil {
		logWarn("Room file %s is corrupted, removing: %v", path, err)
		os.Remove(path)
		return nil, ErrRoomNotFound
	}
	if room.Code != code || room.WordLength != len(room.Word) {
		logWarn("Room file %s has invalid structure (code: %q, word length: %d), removing", path, room.Code, room.WordLength)
		os.Remove(path)
		return nil, ErrRoomNotFound
	}
	return &room, nil
}

func (s *FileRoomStore) PutRoom(room *Room) error {
	if !isRoomCode(room.Code) {
		logWarn("Skipping save for invalid room code: %s", room.Code)
		return nil
	}
	return writeJSONFile(filepath.Join(s.roomDir, room.Code+".json"), room)
}

func (s *FileRoomStore) DeleteRoom(code string) error {
	if !isRoomCode(code) {
		return nil
	}
	err := os.Remove(filepath.Join(s.roomDir, code+".json"))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileRoomStore) GetSnapshot(code string) (*RoomSnapshot, error) {
	if !isRoomCode(code) {
		return nil, ErrRoomNotFound
	}
	path := filepath.Join(s.snapshotDir, code+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	var snap RoomSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logWarn("Snapshot file %s is corrupted, removing: %v", path, err)
		os.Remove(path)
		return nil, ErrRoomNotFound
	}
	return &snap, nil
}

func (s *FileRoomStore) PutSnapshot(snapshot *RoomSnapshot) error {
	if !isRoomCode(snapshot.Code) {
		logWarn("Skipping save for invalid snapshot code: %s", snapshot.Code)
		return nil
	}
	return writeJSONFile(filepath.Join(s.snapshotDir, snapshot.Code+".json"), snapshot)
}

func (s *FileRoomStore) DeleteSnapshot(code string) error {
	if !isRoomCode(code) {
		return nil
	}
	err := os.Remove(filepath.Join(s.snapshotDir, code+".json"))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Cleanup removes room and snapshot files older than maxAge. Returns the
// number of files removed.
func (s *FileRoomStore) Cleanup(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, dir := range []string{s.roomDir, s.snapshotDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			logWarn("Failed to read store directory %s: %v", dir, err)
			return removed, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				logWarn("Failed to stat %s: %v", entry.Name(), err)
				continue
			}
			if info.ModTime().Before(cutoff) {
				path := filepath.Join(dir, entry.Name())
				if err := os.Remove(path); err != nil {
					logWarn("Failed to remove stale file %s: %v", path, err)
				} else {
					logInfo("Removed stale room file: %s (age: %v)", path, time.Since(info.ModTime()).Round(time.Second))
					removed++
				}
			}
		}
	}
	return removed, nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logWarn("Failed to marshal %s: %v", path, err)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		logWarn("Failed to write %s: %v", path, err)
		return err
	}
	return nil
}
