package main

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// sessionView is the read-only state snapshot returned to clients. The room
// is rendered through its snapshot so the target word stays hidden until the
// round is over.
type sessionView struct {
	Room           *RoomSnapshot           `json:"room"`
	Player         *Player                 `json:"player"`
	CurrentAttempt string                  `json:"currentAttempt"`
	Attempts       []string                `json:"attempts"`
	Evaluations    [][]LetterStatus        `json:"evaluations"`
	KeyboardStatus map[string]LetterStatus `json:"keyboardStatus"`
	Phase          GamePhase               `json:"phase"`
	TargetWord     string                  `json:"targetWord,omitempty"`
	Error          string                  `json:"error,omitempty"`
}

func viewOf(session *Session) sessionView {
	view := sessionView{
		Player:         session.Player,
		CurrentAttempt: session.CurrentAttempt,
		Attempts:       session.Attempts,
		Evaluations:    session.Evaluations,
		KeyboardStatus: session.KeyboardStatus,
		Phase:          session.Phase,
		TargetWord:     session.TargetWord,
		Error:          session.LastError,
	}
	if session.Room != nil {
		snap := makeSnapshot(session.Room, session.Phase)
		view.Room = &snap
	}
	return view
}

type createRoomRequest struct {
	PlayerName string `json:"playerName"`
	WordLength int    `json:"wordLength"`
	MaxPlayers int    `json:"maxPlayers"`
	Solo       bool   `json:"solo"`
}

type joinRoomRequest struct {
	PlayerName string `json:"playerName"`
}

type letterRequest struct {
	Letter string `json:"letter"`
}

// statusForError maps reducer errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSoloRoomUnjoinable), errors.Is(err, ErrDuplicateName), errors.Is(err, ErrRoomFull):
		return http.StatusConflict
	case errors.Is(err, ErrIncompleteGuess), errors.Is(err, ErrLengthMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// createRoomHandler creates a room (solo or multiplayer) for the caller.
func (app *App) createRoomHandler(c *gin.Context) {
	session := app.getSession(app.getOrCreateSession(c))

	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.PlayerName = strings.TrimSpace(req.PlayerName)
	if req.PlayerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player name is required"})
		return
	}

	if err := app.CreateRoom(session, req.PlayerName, req.WordLength, req.MaxPlayers, req.Solo); err != nil {
		c.JSON(statusForError(err), viewOf(session))
		return
	}
	c.JSON(http.StatusCreated, viewOf(session))
}

// joinRoomHandler adds the caller to an existing room by code.
func (app *App) joinRoomHandler(c *gin.Context) {
	session := app.getSession(app.getOrCreateSession(c))

	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.PlayerName = strings.TrimSpace(req.PlayerName)
	if req.PlayerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player name is required"})
		return
	}

	if err := app.JoinRoom(session, c.Param("code"), req.PlayerName); err != nil {
		c.JSON(statusForError(err), viewOf(session))
		return
	}
	c.JSON(http.StatusOK, viewOf(session))
}

// stateHandler returns the caller's current session state, reconciled with
// the stored room so roster changes made by other participants show up.
func (app *App) stateHandler(c *gin.Context) {
	session := app.getSession(app.getOrCreateSession(c))
	app.syncRoom(session)
	c.JSON(http.StatusOK, viewOf(session))
}

// addLetterHandler appends a letter to the current attempt.
func (app *App) addLetterHandler(c *gin.Context) {
	session := app.getSession(app.getOrCreateSession(c))

	var req letterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	app.AddLetter(session, req.Letter)
	c.JSON(http.StatusOK, viewOf(session))
}

// removeLetterHandler removes the last letter of the current attempt.
func (app *App) removeLetterHandler(c *gin.Context) {
	session := app.getSession(app.getOrCreateSession(c))
	app.RemoveLetter(session)
	c.JSON(http.StatusOK, viewOf(session))
}

// guessHandler submits the current attempt for evaluation.
func (app *App) guessHandler(c *gin.Context) {
	session := app.getSession(app.getOrCreateSession(c))
	if err := app.SubmitGuess(session); err != nil {
		c.JSON(statusForError(err), viewOf(session))
		return
	}
	c.JSON(http.StatusOK, viewOf(session))
}

// resetHandler starts a new round in the caller's room.
func (app *App) resetHandler(c *gin.Context) {
	session := app.getSession(app.getOrCreateSession(c))
	app.ResetRound(session)
	c.JSON(http.StatusOK, viewOf(session))
}

// leaveHandler removes the caller from their room and clears the session.
func (app *App) leaveHandler(c *gin.Context) {
	session := app.getSession(app.getOrCreateSession(c))
	app.LeaveRoom(session)
	c.JSON(http.StatusOK, viewOf(session))
}

// roomSnapshotHandler is the polling read: the latest published snapshot of
// a room.
func (app *App) roomSnapshotHandler(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	snap, err := app.Rooms.GetSnapshot(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrRoomNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// roomEventsHandler streams room snapshots over SSE until the client goes
// away or the room is deleted.
func (app *App) roomEventsHandler(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if _, err := app.Rooms.GetRoom(code); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrRoomNotFound.Error()})
		return
	}

	updates, cancel := app.Notify.Subscribe(code)
	defer cancel()

	if snap, err := app.Rooms.GetSnapshot(code); err == nil {
		c.SSEvent("snapshot", snap)
		c.Writer.Flush()
	}

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		case <-clientGone:
			return false
		}
	})
}

// validateWordHandler reports dictionary validity of a word. Validity is
// advisory only: guesses are accepted regardless.
func (app *App) validateWordHandler(c *gin.Context) {
	word := strings.ToUpper(strings.TrimSpace(c.Query("word")))
	if word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word query parameter is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"word":  word,
		"valid": app.Words.IsValid(word),
	})
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	app.SessionMutex.RLock()
	sessionCount := len(app.Sessions)
	app.SessionMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"env":          map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"word_lengths": app.Words.Lengths(),
		"sessions":     sessionCount,
		"uptime":       formatUptime(time.Since(app.StartTime)),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}
