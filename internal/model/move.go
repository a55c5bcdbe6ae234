package model

import "fmt"

// MoveRequest is a move as it arrives from a client, in coordinate notation.
type MoveRequest struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

// Move parses the request into a Move.
func (r MoveRequest) Move() (Move, error) {
	from, err := ParsePosition(r.From)
	if err != nil {
		return Move{}, fmt.Errorf("from: %w", err)
	}
	to, err := ParsePosition(r.To)
	if err != nil {
		return Move{}, fmt.Errorf("to: %w", err)
	}
	m := NewMove(from, to)
	m.Promotion = r.Promotion
	return m, nil
}

// Move is a from/to transition. Piece and Captured are only set on the Move
// returned by applying it to a board; a Move in a board's history is always
// populated and can be reversed exactly.
type Move struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`

	Piece    *Piece `json:"piece,omitempty"`
	Captured *Piece `json:"capturedPiece,omitempty"`
	Notation string `json:"notation,omitempty"`
}

func NewMove(from, to Position) Move {
	return Move{From: from, To: to}
}

// Applied reports whether the move has been applied to a board.
func (m Move) Applied() bool {
	return m.Piece != nil
}

func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != "" {
		s += m.Promotion.getPieceNotation()
	}
	return s
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m Move) simple() SimpleMove {
	return SimpleMove{From: m.From, To: m.To}
}

// notation renders the move in short algebraic form without check markers.
func notation(piece, captured *Piece, m Move) string {
	prefix := piece.Type.getPieceNotation()
	capture := ""
	if captured != nil {
		capture = "x"
	}
	pawnFile := ""
	if piece.Type == Pawn && m.From.X != m.To.X {
		pawnFile = m.From.fileNotation()
	}
	promotion := ""
	if m.Promotion != "" {
		promotion = "=" + m.Promotion.getPieceNotation()
	}
	return fmt.Sprintf("%s%s%s%s%s", prefix, pawnFile, capture, m.To.String(), promotion)
}
