package domain

const (
	// MinSeats is the smallest table a Literature game can start with.
	MinSeats = 6
	// MaxSeats is the largest table a Literature game can seat.
	MaxSeats = 8
	// FirstSeat always opens an active game.
	FirstSeat = 1
	// JoinCodeLength is the number of characters in a short join code.
	JoinCodeLength = 6
)
