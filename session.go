package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", app.IsProduction, true)
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// getSession retrieves or creates the Session for a session ID.
func (app *App) getSession(sessionID string) *Session {
	app.SessionMutex.RLock()
	session, exists := app.Sessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		session.LastAccessTime = time.Now()
		return session
	}

	session = newSession(sessionID)
	app.SessionMutex.Lock()
	app.Sessions[sessionID] = session
	app.SessionMutex.Unlock()
	logInfo("Created new game session: %s", sessionID)
	return session
}

// cleanupSessions drops in-memory sessions idle longer than maxAge. Sessions
// still attached to a room are left to LeaveRoom so host reassignment runs.
func (app *App) cleanupSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	app.SessionMutex.Lock()
	for id, session := range app.Sessions {
		if session.LastAccessTime.Before(cutoff) && session.Room == nil {
			delete(app.Sessions, id)
			removed++
		}
	}
	app.SessionMutex.Unlock()
	if removed > 0 {
		logInfo("Session cleanup removed %d idle sessions", removed)
	}
	return removed
}
