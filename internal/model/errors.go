package model

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to check for them.
var (
	// ErrIllegalMove wraps every reason a move can be rejected.
	ErrIllegalMove = errors.New("illegal move")

	ErrOffBoard         = errors.New("square is off the board")
	ErrEmptySquare      = errors.New("no piece at from square")
	ErrUnreachable      = errors.New("piece cannot reach destination")
	ErrSelfCheck        = errors.New("move leaves own king in check")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
	ErrOpponentPiece    = errors.New("piece belongs to the opponent")

	// ErrEmptyHistory is returned when undoing with no committed moves.
	ErrEmptyHistory = errors.New("no move to undo")

	// ErrInvalidNotation indicates a malformed coordinate string.
	ErrInvalidNotation = errors.New("invalid square notation")

	// ErrInvalidSnapshot indicates a snapshot that does not describe a board.
	ErrInvalidSnapshot = errors.New("invalid board snapshot")

	ErrGameNotFound     = errors.New("game not found")
	ErrGameExists       = errors.New("game already exists")
	ErrGameFull         = errors.New("game is full")
	ErrNotInGame        = errors.New("player not in game")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrGameOver         = errors.New("game is over")
	ErrNoOpponent       = errors.New("waiting for an opponent")
	ErrAlreadyConnected = errors.New("player already connected")
)

// MoveError carries the rejected move alongside the reason. It unwraps to
// both the reason and ErrIllegalMove.
type MoveError struct {
	Move Move
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %s-%s: %v", ErrIllegalMove, e.Move.From, e.Move.To, e.Err)
}

func (e *MoveError) Unwrap() []error {
	return []error{ErrIllegalMove, e.Err}
}

func illegal(m Move, reason error) error {
	return &MoveError{Move: m, Err: reason}
}
