package main

import (
	"testing"
	"time"
)

func TestGetSessionCreatesAndCaches(t *testing.T) {
	app := testApp("CRANE")

	first := app.getSession("session-cache-test")
	if first.Phase != PhaseWaiting || first.Room != nil {
		t.Errorf("new session not in initial state: %+v", first)
	}

	first.CurrentAttempt = "CR"
	second := app.getSession("session-cache-test")
	if second != first {
		t.Error("getSession should return the cached session")
	}
	if second.CurrentAttempt != "CR" {
		t.Error("cached session lost state")
	}
}

func TestGetSessionUpdatesLastAccessTime(t *testing.T) {
	app := testApp("CRANE")
	session := app.getSession("session-access-test")
	session.LastAccessTime = time.Now().Add(-time.Hour)

	again := app.getSession("session-access-test")
	if time.Since(again.LastAccessTime) > time.Minute {
		t.Error("getSession did not refresh LastAccessTime")
	}
}

func TestCleanupSessions(t *testing.T) {
	app := testApp("CRANE")

	idle := app.getSession("cleanup-idle")
	idle.LastAccessTime = time.Now().Add(-3 * time.Hour)

	fresh := app.getSession("cleanup-fresh")
	fresh.LastAccessTime = time.Now()

	inRoom := app.getSession("cleanup-in-room")
	inRoom.LastAccessTime = time.Now().Add(-3 * time.Hour)
	if err := app.CreateRoom(inRoom, "Ada", 5, 2, false); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	removed := app.cleanupSessions(2 * time.Hour)
	if removed != 1 {
		t.Errorf("cleanup removed %d sessions, want 1", removed)
	}

	app.SessionMutex.RLock()
	_, idleExists := app.Sessions["cleanup-idle"]
	_, freshExists := app.Sessions["cleanup-fresh"]
	_, inRoomExists := app.Sessions["cleanup-in-room"]
	app.SessionMutex.RUnlock()

	if idleExists {
		t.Error("idle session survived cleanup")
	}
	if !freshExists {
		t.Error("fresh session removed by cleanup")
	}
	if !inRoomExists {
		t.Error("session attached to a room must not be cleaned up")
	}
}
