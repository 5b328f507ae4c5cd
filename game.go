package main

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Reducer error taxonomy. All of these are recoverable: handlers map them to
// a user-visible message on the session state, never a crashed session.
var (
	ErrSoloRoomUnjoinable = errors.New("this is a solo game and cannot be joined")
	ErrDuplicateName      = errors.New("a player with this name is already in the room")
	ErrRoomFull           = errors.New("room is full")
	ErrIncompleteGuess    = errors.New("guess must use the full word length")
)

// generateRoomCode draws RoomCodeLength characters from the unambiguous
// alphabet using crypto/rand, falling back to the first character on a
// failed draw.
func generateRoomCode() string {
	code := make([]byte, RoomCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(RoomCodeAlphabet))))
		if err != nil {
			logWarn("Error generating room code character: %v, using fallback", err)
			code[i] = RoomCodeAlphabet[0]
			continue
		}
		code[i] = RoomCodeAlphabet[n.Int64()]
	}
	return string(code)
}

// isRoomCode reports whether s is a well-formed room code.
func isRoomCode(s string) bool {
	if len(s) != RoomCodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(RoomCodeAlphabet, rune(s[i])) {
			return false
		}
	}
	return true
}

func newPlayer(name string, host bool) Player {
	return Player{
		ID:     uuid.NewString(),
		Name:   name,
		IsHost: host,
	}
}

// CreateRoom draws a target word, makes the caller host of a fresh room, and
// publishes the room for discovery unless it is solo. Solo rooms live only in
// the creator's session and start active immediately.
func (app *App) CreateRoom(session *Session, playerName string, wordLength, maxPlayers int, solo bool) error {
	word := app.Words.RandomWord(wordLength)
	if len(word) != wordLength {
		logWarn("No word list for length %d, using length %d instead", wordLength, len(word))
		wordLength = len(word)
	}

	if solo {
		maxPlayers = 1
	} else if maxPlayers < 2 {
		maxPlayers = 2
	} else if maxPlayers > MaxRoomCapacity {
		maxPlayers = MaxRoomCapacity
	}

	player := newPlayer(playerName, true)
	room := &Room{
		Code:       generateRoomCode(),
		HostID:     player.ID,
		Players:    []Player{player},
		MaxPlayers: maxPlayers,
		Status:     RoomWaiting,
		Word:       word,
		WordLength: wordLength,
		CreatedAt:  time.Now(),
		Solo:       solo,
	}
	if solo {
		room.Status = RoomActive
	}

	session.clearRound()
	session.Room = room
	session.Player = &player
	if solo {
		session.Phase = PhaseActive
	} else {
		session.Phase = PhaseWaiting
		if err := app.Rooms.PutRoom(room); err != nil {
			logWarn("Failed to persist room %s: %v", room.Code, err)
		}
		app.publishRoom(room, session.Phase)
	}

	logInfo("Room %s created by %s (length %d, capacity %d, solo %v)", room.Code, playerName, wordLength, maxPlayers, solo)
	return nil
}

// JoinRoom looks a room up by code and adds the caller as a non-host player.
// The room flips to active once at least two players are present.
func (app *App) JoinRoom(session *Session, roomCode, playerName string) error {
	room, err := app.Rooms.GetRoom(strings.ToUpper(strings.TrimSpace(roomCode)))
	if err != nil {
		session.LastError = ErrRoomNotFound.Error()
		return ErrRoomNotFound
	}
	if room.MaxPlayers == 1 {
		session.LastError = ErrSoloRoomUnjoinable.Error()
		return ErrSoloRoomUnjoinable
	}
	if lo.SomeBy(room.Players, func(p Player) bool { return p.Name == playerName }) {
		session.LastError = ErrDuplicateName.Error()
		return ErrDuplicateName
	}
	if len(room.Players) >= room.MaxPlayers {
		session.LastError = ErrRoomFull.Error()
		return ErrRoomFull
	}

	player := newPlayer(playerName, false)
	room.Players = append(room.Players, player)
	if len(room.Players) >= 2 {
		room.Status = RoomActive
	}
	if err := app.Rooms.PutRoom(room); err != nil {
		logWarn("Failed to persist room %s: %v", room.Code, err)
	}

	session.clearRound()
	session.Room = room
	session.Player = &player
	if room.Status == RoomActive {
		session.Phase = PhaseActive
	} else {
		session.Phase = PhaseWaiting
	}
	app.publishRoom(room, session.Phase)

	logInfo("Player %s joined room %s (%d/%d players)", playerName, room.Code, len(room.Players), room.MaxPlayers)
	return nil
}

// syncRoom replaces the session's room with the stored record so local
// mutations never overwrite changes other participants have persisted
// (joins, departures, host reassignment). The session's player is re-bound
// to its entry in the fresh roster, and a waiting session goes active once
// the room does.
func (app *App) syncRoom(session *Session) {
	room := session.Room
	if room == nil || room.Solo || session.Player == nil {
		return
	}
	stored, err := app.Rooms.GetRoom(room.Code)
	if err != nil {
		return
	}
	i := stored.findPlayer(session.Player.ID)
	if i < 0 {
		return
	}
	session.Room = stored
	session.Player = &stored.Players[i]
	if session.Phase == PhaseWaiting && stored.Status == RoomActive {
		session.Phase = PhaseActive
	}
}

// acceptsInput reports whether the session is in a phase where letter entry
// and guess submission are allowed.
func (s *Session) acceptsInput() bool {
	return s.Room != nil && (s.Phase == PhaseWaiting || s.Phase == PhaseActive)
}

// AddLetter appends one upper-cased letter to the current attempt. Out of
// phase or over length it is a deliberate no-op, since the UI may fire key
// events regardless of state.
func (app *App) AddLetter(session *Session, letter string) {
	if !session.acceptsInput() {
		return
	}
	if len(session.CurrentAttempt) >= session.Room.WordLength {
		return
	}
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return
	}
	session.CurrentAttempt += letter
}

// RemoveLetter removes the last character of the current attempt, if any.
func (app *App) RemoveLetter(session *Session) {
	if !session.acceptsInput() || len(session.CurrentAttempt) == 0 {
		return
	}
	session.CurrentAttempt = session.CurrentAttempt[:len(session.CurrentAttempt)-1]
}

// SubmitGuess evaluates the current attempt against the room's target word,
// upgrades the keyboard aggregate, scores a win, and advances the phase.
// An attempt shorter than the word length is rejected without state change.
func (app *App) SubmitGuess(session *Session) error {
	if !session.acceptsInput() {
		return nil
	}
	app.syncRoom(session)
	room := session.Room
	if len(session.CurrentAttempt) != room.WordLength {
		logWarn("Session %s submitted incomplete guess: %q (%d/%d letters)", session.ID, session.CurrentAttempt, len(session.CurrentAttempt), room.WordLength)
		session.LastError = ErrIncompleteGuess.Error()
		return ErrIncompleteGuess
	}

	guess := session.CurrentAttempt
	evaluation, err := evaluateGuess(guess, room.Word)
	if err != nil {
		session.LastError = err.Error()
		return err
	}

	for i := range guess {
		letter := string(guess[i])
		session.KeyboardStatus[letter] = mergeStatus(session.KeyboardStatus[letter], evaluation[i])
	}

	session.Attempts = append(session.Attempts, guess)
	session.Evaluations = append(session.Evaluations, evaluation)
	session.CurrentAttempt = ""
	session.LastError = ""
	session.Player.GuessCount++

	won := allCorrect(evaluation)
	switch {
	case won:
		session.Player.Score += scoreForWin(len(session.Attempts))
		session.Phase = PhaseWon
		session.TargetWord = room.Word
		logInfo("Session %s won room %s in %d attempts", session.ID, room.Code, len(session.Attempts))
	case len(session.Attempts) >= MaxGuesses:
		session.Phase = PhaseLost
		session.TargetWord = room.Word
		logInfo("Session %s lost room %s, target word was %s", session.ID, room.Code, room.Word)
	default:
		session.Phase = PhaseActive
	}

	if i := room.findPlayer(session.Player.ID); i >= 0 {
		room.Players[i] = *session.Player
	}
	if !room.Solo {
		if err := app.Rooms.PutRoom(room); err != nil {
			logWarn("Failed to persist room %s: %v", room.Code, err)
		}
		app.publishRoom(room, session.Phase)
	}
	return nil
}

// ResetRound draws a new word of the same length, clears every player's
// guess count, and restarts the round.
func (app *App) ResetRound(session *Session) {
	if session.Room == nil {
		return
	}
	app.syncRoom(session)
	room := session.Room

	room.Word = app.Words.RandomWord(room.WordLength)
	room.Players = lo.Map(room.Players, func(p Player, _ int) Player {
		p.GuessCount = 0
		return p
	})

	session.clearRound()
	session.Phase = PhaseActive
	if i := room.findPlayer(session.Player.ID); i >= 0 {
		session.Player = &room.Players[i]
	}

	if !room.Solo {
		if err := app.Rooms.PutRoom(room); err != nil {
			logWarn("Failed to persist room %s: %v", room.Code, err)
		}
		app.publishRoom(room, session.Phase)
	}
	logInfo("Round reset in room %s", room.Code)
}

// LeaveRoom removes the caller from the room, reassigning the host to the
// first remaining player or deleting the room when it empties, then clears
// the local session. Solo rooms were never published, so only the local
// session is touched.
func (app *App) LeaveRoom(session *Session) {
	room := session.Room
	if room != nil && !room.Solo && session.Player != nil {
		stored, err := app.Rooms.GetRoom(room.Code)
		if err == nil {
			departing := session.Player.ID
			remaining := lo.Filter(stored.Players, func(p Player, _ int) bool {
				return p.ID != departing
			})
			if len(remaining) == 0 {
				if err := app.Rooms.DeleteRoom(stored.Code); err != nil {
					logWarn("Failed to delete room %s: %v", stored.Code, err)
				}
				if err := app.Rooms.DeleteSnapshot(stored.Code); err != nil {
					logWarn("Failed to delete snapshot for room %s: %v", stored.Code, err)
				}
				app.Notify.CloseRoom(stored.Code)
				logInfo("Room %s deleted, last player left", stored.Code)
			} else {
				if stored.HostID == departing {
					remaining[0].IsHost = true
					stored.HostID = remaining[0].ID
					logInfo("Host left room %s, promoted %s", stored.Code, remaining[0].Name)
				}
				stored.Players = remaining
				if err := app.Rooms.PutRoom(stored); err != nil {
					logWarn("Failed to persist room %s: %v", stored.Code, err)
				}
				phase := PhaseWaiting
				if stored.Status == RoomActive {
					phase = PhaseActive
				}
				app.publishRoom(stored, phase)
			}
		}
	}
	session.reset()
}

// makeSnapshot builds the public view of a room. The target word is only
// revealed once the publishing client's round is over.
func makeSnapshot(room *Room, phase GamePhase) RoomSnapshot {
	snap := RoomSnapshot{
		Code:       room.Code,
		HostID:     room.HostID,
		Players:    append([]Player(nil), room.Players...),
		MaxPlayers: room.MaxPlayers,
		Status:     room.Status,
		WordLength: room.WordLength,
		Phase:      phase,
		UpdatedAt:  time.Now(),
	}
	if phase == PhaseWon || phase == PhaseLost {
		snap.Word = room.Word
	}
	return snap
}

// publishRoom persists the latest snapshot and fans it out to subscribers.
func (app *App) publishRoom(room *Room, phase GamePhase) {
	if room.Solo {
		return
	}
	snap := makeSnapshot(room, phase)
	if err := app.Rooms.PutSnapshot(&snap); err != nil {
		logWarn("Failed to persist snapshot for room %s: %v", room.Code, err)
	}
	app.Notify.Publish(snap)
}
