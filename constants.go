package main

// Game configuration constants
const (
	MaxGuesses        = 6 // Maximum number of guesses per round
	DefaultWordLength = 5 // Word length used when a room asks for an unsupported one
	RoomCodeLength    = 6 // Length of shareable room codes
	MaxRoomCapacity   = 8 // Upper bound on configurable room capacity
)

// RoomCodeAlphabet excludes visually ambiguous characters (0/O, 1/I).
const RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteState        = "/api/state"
	RouteRooms        = "/api/rooms"
	RouteRoomJoin     = "/api/rooms/:code/join"
	RouteRoomSnapshot = "/api/rooms/:code"
	RouteRoomEvents   = "/api/rooms/:code/events"
	RouteLetters      = "/api/session/letters"
	RouteGuess        = "/api/session/guess"
	RouteReset        = "/api/session/reset"
	RouteLeave        = "/api/session/leave"
	RouteValidate     = "/api/words/validate"
	RouteHealth       = "/healthz"
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
