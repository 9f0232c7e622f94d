package domain

import "errors"

var (
	ErrSeatNotFound         = errors.New("no player at seat")
	ErrSeatTaken            = errors.New("seat already taken")
	ErrInvalidSeat          = errors.New("seat out of range")
	ErrGameFull             = errors.New("game is full")
	ErrInvalidSeatCount     = errors.New("seat count must be even and between 6 and 8 with no gaps")
	ErrCardNotHeld          = errors.New("card not held")
	ErrCardNotInPlay        = errors.New("card not in play")
	ErrInvalidCardOwnership = errors.New("declared card has no resolvable holder")
	ErrUnknownCard          = errors.New("unknown card")
	ErrNotInLobby           = errors.New("game not in lobby")
)
