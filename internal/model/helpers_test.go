package model

import (
	"sort"
	"testing"
)

// place puts a new piece on square and returns it.
func place(t *testing.T, b *Board, square string, pt PieceType, c Color) *Piece {
	t.Helper()
	pos, err := ParsePosition(square)
	if err != nil {
		t.Fatalf("ParsePosition(%q): %v", square, err)
	}
	p := NewPiece(pt, c)
	b.Set(pos, p)
	return p
}

func move(from, to string) Move {
	return NewMove(MustParsePosition(from), MustParsePosition(to))
}

// squares renders positions sorted, for stable comparison.
func squares(ps []Position) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.String())
	}
	sort.Strings(out)
	return out
}
