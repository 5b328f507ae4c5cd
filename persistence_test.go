package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileRoomStoreRoundtrip(t *testing.T) {
	store, err := NewFileRoomStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRoomStore: %v", err)
	}

	room := testRoom("ABCDEF")
	if err := store.PutRoom(room); err != nil {
		t.Fatalf("PutRoom: %v", err)
	}
	got, err := store.GetRoom("ABCDEF")
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if got.Code != "ABCDEF" || got.Word != "CRANE" || len(got.Players) != 1 {
		t.Errorf("loaded room = %+v", got)
	}

	snap := makeSnapshot(room, PhaseWaiting)
	if err := store.PutSnapshot(&snap); err != nil {
		t.Fatalf("PutSnapshot: %v", err)
	}
	loaded, err := store.GetSnapshot("ABCDEF")
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if loaded.Word != "" {
		t.Error("waiting-phase snapshot must not expose the target word")
	}

	if err := store.DeleteRoom("ABCDEF"); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	if _, err := store.GetRoom("ABCDEF"); !errors.Is(err, ErrRoomNotFound) {
		t.Error("room still readable after delete")
	}
	// Deleting twice is fine.
	if err := store.DeleteRoom("ABCDEF"); err != nil {
		t.Errorf("second DeleteRoom: %v", err)
	}
}

func TestFileRoomStoreDiscardsCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileRoomStore(dir)
	if err != nil {
		t.Fatalf("NewFileRoomStore: %v", err)
	}

	path := filepath.Join(dir, "rooms", "ABCDEF.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := store.GetRoom("ABCDEF"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("corrupt room: got %v, want ErrRoomNotFound", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt room file should have been removed")
	}
}

func TestFileRoomStoreDiscardsInvalidStructure(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileRoomStore(dir)
	if err != nil {
		t.Fatalf("NewFileRoomStore: %v", err)
	}

	// Valid JSON, but the word length does not match the word.
	bad := testRoom("ABCDEF")
	bad.WordLength = 7
	if err := writeJSONFile(filepath.Join(dir, "rooms", "ABCDEF.json"), bad); err != nil {
		t.Fatalf("writeJSONFile: %v", err)
	}

	if _, err := store.GetRoom("ABCDEF"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("invalid room: got %v, want ErrRoomNotFound", err)
	}
}

func TestFileRoomStoreRejectsBadCodes(t *testing.T) {
	store, err := NewFileRoomStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRoomStore: %v", err)
	}
	for _, code := range []string{"", "ab", "../../etc", "ABCDEF0", "ABC DE"} {
		if _, err := store.GetRoom(code); !errors.Is(err, ErrRoomNotFound) {
			t.Errorf("GetRoom(%q): got %v, want ErrRoomNotFound", code, err)
		}
	}
}

func TestFileRoomStoreCleanup(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileRoomStore(dir)
	if err != nil {
		t.Fatalf("NewFileRoomStore: %v", err)
	}

	stale := testRoom("AAAAAA")
	fresh := testRoom("BBBBBB")
	if err := store.PutRoom(stale); err != nil {
		t.Fatalf("PutRoom: %v", err)
	}
	if err := store.PutRoom(fresh); err != nil {
		t.Fatalf("PutRoom: %v", err)
	}

	stalePath := filepath.Join(dir, "rooms", "AAAAAA.json")
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stalePath, old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	removed, err := store.Cleanup(24 * time.Hour)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if removed != 1 {
		t.Errorf("Cleanup removed %d files, want 1", removed)
	}
	if _, err := store.GetRoom("AAAAAA"); !errors.Is(err, ErrRoomNotFound) {
		t.Error("stale room survived cleanup")
	}
	if _, err := store.GetRoom("BBBBBB"); err != nil {
		t.Errorf("fresh room removed by cleanup: %v", err)
	}
}
