package model

import (
	"fmt"
	"slices"
)

// Board owns the grid, the history of committed moves and the turn counter.
// A Board is not safe for concurrent use; callers serialise access.
type Board struct {
	grid    [BoardSize][BoardSize]*Piece // grid[y][x]
	history []Move
	turn    int
}

// NewBoard returns an empty board at turn 1.
func NewBoard() *Board {
	return &Board{turn: 1}
}

// At returns the piece on pos, or nil when the square is empty. pos must be
// on the board.
func (b *Board) At(pos Position) *Piece {
	if !pos.OnBoard() {
		panic(fmt.Sprintf("model: At(%d,%d): square off the board", pos.X, pos.Y))
	}
	return b.grid[pos.Y][pos.X]
}

// Set places piece on pos, or clears the square when piece is nil. A placed
// piece's Position is updated to pos.
func (b *Board) Set(pos Position, piece *Piece) {
	if !pos.OnBoard() {
		panic(fmt.Sprintf("model: Set(%d,%d): square off the board", pos.X, pos.Y))
	}
	b.grid[pos.Y][pos.X] = piece
	if piece != nil {
		piece.Position = pos
	}
}

func (b *Board) IsOnBoard(pos Position) bool {
	return pos.OnBoard()
}

func (b *Board) IsEmpty(pos Position) bool {
	return b.At(pos) == nil
}

// TurnNumber starts at 1 and advances once per committed move.
func (b *Board) TurnNumber() int {
	return b.turn
}

// ToMove is the colour whose turn it is: white on odd turns.
func (b *Board) ToMove() Color {
	if b.turn%2 == 1 {
		return White
	}
	return Black
}

// History returns the committed moves, oldest first.
func (b *Board) History() []Move {
	return slices.Clone(b.history)
}

func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1], true
}

// Pieces returns every piece on the board, rank by rank from rank 1.
func (b *Board) Pieces() []*Piece {
	var pieces []*Piece
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if p := b.grid[y][x]; p != nil {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

func (b *Board) PiecesOf(c Color) []*Piece {
	var pieces []*Piece
	for _, p := range b.Pieces() {
		if p.Color == c {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// King returns the king of colour c, or nil if there is none.
func (b *Board) King(c Color) *Piece {
	for _, p := range b.PiecesOf(c) {
		if p.Type == King {
			return p
		}
	}
	return nil
}

// Validate returns nil if m is fully legal on the current board, otherwise a
// *MoveError wrapping ErrIllegalMove and the reason. The board is not
// modified.
func (b *Board) Validate(m Move) error {
	if !m.From.OnBoard() || !m.To.OnBoard() {
		return illegal(m, ErrOffBoard)
	}
	piece := b.At(m.From)
	if piece == nil {
		return illegal(m, ErrEmptySquare)
	}
	if !slices.Contains(piece.Destinations(b), m.To) {
		return illegal(m, ErrUnreachable)
	}
	if err := validatePromotion(piece, m); err != nil {
		return illegal(m, err)
	}

	sim := b.clone()
	sim.apply(m)
	if sim.InCheck(piece.Color) {
		return illegal(m, ErrSelfCheck)
	}
	return nil
}

func validatePromotion(piece *Piece, m Move) error {
	if m.Promotion == "" {
		return nil
	}
	if !promotes(piece, m.To) {
		return fmt.Errorf("%w: %s does not promote", ErrInvalidPromotion, m)
	}
	switch m.Promotion {
	case Queen, Rook, Bishop, Knight:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidPromotion, m.Promotion)
}

// IsLegal reports whether m is fully legal. It has no effect on the board.
func (b *Board) IsLegal(m Move) bool {
	return b.Validate(m) == nil
}

// CommitMove validates and applies m, advancing the turn. On failure the
// board is unchanged. The returned Move is fully populated.
func (b *Board) CommitMove(m Move) (Move, error) {
	if err := b.Validate(m); err != nil {
		return Move{}, err
	}
	applied := b.apply(m)
	b.turn++
	return applied, nil
}

// UndoLastMove reverts the most recent committed move, restoring any
// captured piece, and steps the turn back.
func (b *Board) UndoLastMove() (Move, error) {
	if len(b.history) == 0 {
		return Move{}, ErrEmptyHistory
	}
	m := b.undo()
	if b.turn > 1 {
		b.turn--
	}
	return m, nil
}

// apply moves the piece without validation; m must be pseudo-legal.
func (b *Board) apply(m Move) Move {
	piece := b.At(m.From)
	captured := b.At(m.To)

	applied := m
	applied.Piece = piece
	applied.Captured = captured

	if promotes(piece, m.To) {
		if applied.Promotion == "" {
			applied.Promotion = Queen
		}
		b.Set(m.To, NewPiece(applied.Promotion, piece.Color))
	} else {
		applied.Promotion = ""
		b.Set(m.To, piece)
	}
	b.Set(m.From, nil)
	applied.Notation = notation(piece, captured, applied)

	b.history = append(b.history, applied)
	return applied
}

func (b *Board) undo() Move {
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.Set(last.To, last.Captured)
	b.Set(last.From, last.Piece)
	return last
}

// clone copies the grid into fresh pieces so speculative moves never touch
// the receiver. History is not copied.
func (b *Board) clone() *Board {
	c := &Board{turn: b.turn}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if p := b.grid[y][x]; p != nil {
				cp := *p
				c.grid[y][x] = &cp
			}
		}
	}
	return c
}

// InCheck reports whether any opposing piece can move to c's king square. A
// colour without a king is never in check.
func (b *Board) InCheck(c Color) bool {
	king := b.King(c)
	if king == nil {
		return false
	}
	for _, p := range b.PiecesOf(c.Opposite()) {
		if slices.Contains(p.Destinations(b), king.Position) {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether every pseudo-legal move of colour c leaves c
// in check. A colour with no moves at all is reported as mated; use InCheck
// to tell checkmate from stalemate.
func (b *Board) IsCheckmate(c Color) bool {
	sim := b.clone()
	for _, p := range sim.PiecesOf(c) {
		for _, m := range p.Moves(sim) {
			sim.apply(m)
			inCheck := sim.InCheck(c)
			sim.undo()
			if !inCheck {
				return false
			}
		}
	}
	return true
}

// IsStalemate reports whether c is not in check but has no legal move.
func (b *Board) IsStalemate(c Color) bool {
	return !b.InCheck(c) && b.IsCheckmate(c)
}

// LegalMoves returns every fully legal move of colour c. Promotions are
// listed once, to a queen.
func (b *Board) LegalMoves(c Color) []Move {
	var legal []Move
	for _, p := range b.PiecesOf(c) {
		for _, m := range p.Moves(b) {
			if b.IsLegal(m) {
				legal = append(legal, m)
			}
		}
	}
	return legal
}

// LegalDestinations returns the squares the piece on pos may legally move to.
func (b *Board) LegalDestinations(pos Position) []Position {
	if !pos.OnBoard() {
		return nil
	}
	piece := b.At(pos)
	if piece == nil {
		return nil
	}
	var dests []Position
	for _, m := range piece.Moves(b) {
		if b.IsLegal(m) {
			dests = append(dests, m.To)
		}
	}
	return dests
}
