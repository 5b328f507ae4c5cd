package main

import "time"

// LetterStatus classifies one guessed letter against the target word.
type LetterStatus string

const (
	StatusEmpty   LetterStatus = ""
	StatusAbsent  LetterStatus = "absent"
	StatusPresent LetterStatus = "present"
	StatusCorrect LetterStatus = "correct"
)

// RoomStatus is the lifecycle state of a room.
type RoomStatus string

const (
	RoomWaiting RoomStatus = "waiting"
	RoomActive  RoomStatus = "active"
)

// GamePhase is the per-client progress state within a room.
type GamePhase string

const (
	PhaseWaiting GamePhase = "waiting"
	PhaseActive  GamePhase = "active"
	PhaseWon     GamePhase = "won"
	PhaseLost    GamePhase = "lost"
)

// Player identifies one participant in a room.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsHost     bool   `json:"isHost"`
	Score      int    `json:"score"`
	GuessCount int    `json:"guessCount"`
}

// Room is the shared multiplayer record: one target word, a bounded player
// set, and exactly one host while non-empty.
type Room struct {
	Code       string     `json:"code"`
	HostID     string     `json:"hostId"`
	Players    []Player   `json:"players"`
	MaxPlayers int        `json:"maxPlayers"`
	Status     RoomStatus `json:"status"`
	Word       string     `json:"word"`
	WordLength int        `json:"wordLength"`
	CreatedAt  time.Time  `json:"createdAt"`
	Solo       bool       `json:"solo"`
}

// RoomSnapshot is the public view of a room published to other participants.
// Word is only set once the publishing client's round is over.
type RoomSnapshot struct {
	Code       string     `json:"code"`
	HostID     string     `json:"hostId"`
	Players    []Player   `json:"players"`
	MaxPlayers int        `json:"maxPlayers"`
	Status     RoomStatus `json:"status"`
	WordLength int        `json:"wordLength"`
	Phase      GamePhase  `json:"phase"`
	Word       string     `json:"word,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Session is one client's local view of progress within a room.
type Session struct {
	ID             string                  `json:"-"`
	Room           *Room                   `json:"-"`
	Player         *Player                 `json:"player"`
	CurrentAttempt string                  `json:"currentAttempt"`
	Attempts       []string                `json:"attempts"`
	Evaluations    [][]LetterStatus        `json:"evaluations"`
	KeyboardStatus map[string]LetterStatus `json:"keyboardStatus"`
	Phase          GamePhase               `json:"phase"`
	TargetWord     string                  `json:"targetWord"`
	LastError      string                  `json:"error"`
	LastAccessTime time.Time               `json:"-"`
}

// newSession returns an empty session in its initial state.
func newSession(id string) *Session {
	return &Session{
		ID:             id,
		Attempts:       []string{},
		Evaluations:    [][]LetterStatus{},
		KeyboardStatus: map[string]LetterStatus{},
		Phase:          PhaseWaiting,
		LastAccessTime: time.Now(),
	}
}

// reset clears the session back to its initial empty state, dropping any
// room association.
func (s *Session) reset() {
	s.Room = nil
	s.Player = nil
	s.CurrentAttempt = ""
	s.Attempts = []string{}
	s.Evaluations = [][]LetterStatus{}
	s.KeyboardStatus = map[string]LetterStatus{}
	s.Phase = PhaseWaiting
	s.TargetWord = ""
	s.LastError = ""
	s.LastAccessTime = time.Now()
}

// clearRound clears round-local progress while keeping the room association.
func (s *Session) clearRound() {
	s.CurrentAttempt = ""
	s.Attempts = []string{}
	s.Evaluations = [][]LetterStatus{}
	s.KeyboardStatus = map[string]LetterStatus{}
	s.TargetWord = ""
	s.LastError = ""
}

// clone returns a deep copy of the room so callers cannot alias stored state.
func (r *Room) clone() *Room {
	if r == nil {
		return nil
	}
	c := *r
	c.Players = make([]Player, len(r.Players))
	copy(c.Players, r.Players)
	return &c
}

// findPlayer returns the index of the player with the given ID, or -1.
func (r *Room) findPlayer(id string) int {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return i
		}
	}
	return -1
}
