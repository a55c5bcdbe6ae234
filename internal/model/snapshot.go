package model

import "fmt"

// PieceRecord is one occupied square of a Snapshot.
type PieceRecord struct {
	Type   PieceType `json:"type"`
	Color  Color     `json:"color"`
	Square string    `json:"square"`
}

// Snapshot is the serialisable form of a board: every piece and the turn
// number. Move history is not part of it.
type Snapshot struct {
	Pieces []PieceRecord `json:"pieces"`
	Turn   int           `json:"turn"`
}

// ToMove is the colour to move at the snapshot's turn.
func (s Snapshot) ToMove() Color {
	if s.Turn%2 == 1 {
		return White
	}
	return Black
}

func (b *Board) Snapshot() Snapshot {
	pieces := b.Pieces()
	s := Snapshot{Pieces: make([]PieceRecord, 0, len(pieces)), Turn: b.turn}
	for _, p := range pieces {
		s.Pieces = append(s.Pieces, PieceRecord{Type: p.Type, Color: p.Color, Square: p.Position.String()})
	}
	return s
}

// NewBoardFromSnapshot rebuilds a board. The result has an empty history.
func NewBoardFromSnapshot(s Snapshot) (*Board, error) {
	if s.Turn < 1 {
		return nil, fmt.Errorf("%w: turn %d", ErrInvalidSnapshot, s.Turn)
	}
	b := NewBoard()
	b.turn = s.Turn
	for _, rec := range s.Pieces {
		pos, err := ParsePosition(rec.Square)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		if !rec.Type.valid() || !rec.Color.valid() {
			return nil, fmt.Errorf("%w: %s %s on %s", ErrInvalidSnapshot, rec.Color, rec.Type, rec.Square)
		}
		if !b.IsEmpty(pos) {
			return nil, fmt.Errorf("%w: square %s occupied twice", ErrInvalidSnapshot, rec.Square)
		}
		b.Set(pos, NewPiece(rec.Type, rec.Color))
	}
	return b, nil
}
