package engine

import "errors"

var (
	ErrNoPieceAtOrigin    = errors.New("no piece at origin")
	ErrWrongTurn          = errors.New("piece does not belong to the active color")
	ErrIllegalDestination = errors.New("destination not in legal set")
)
