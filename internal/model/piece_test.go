package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKingInCornerHasThreeDestinations(t *testing.T) {
	b := NewBoard()
	king := place(t, b, "a1", King, White)

	got := squares(king.Destinations(b))
	want := []string{"a2", "b1", "b2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Destinations() mismatch (-want +got):\n%s", diff)
	}
	for _, d := range king.Destinations(b) {
		if !d.OnBoard() {
			t.Errorf("destination %+v is off the board", d)
		}
	}
}

func TestLeaperOccupancy(t *testing.T) {
	b := NewBoard()
	knight := place(t, b, "b1", Knight, White)
	place(t, b, "d2", Pawn, White)
	place(t, b, "c3", Pawn, Black)

	got := squares(knight.Destinations(b))
	want := []string{"a3", "c3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("knight Destinations() mismatch (-want +got):\n%s", diff)
	}
}

func TestRookBlocking(t *testing.T) {
	tests := []struct {
		name     string
		neighbor Color
		want     []string
	}{
		{
			name:     "ally to the right",
			neighbor: White,
			want:     []string{"a2", "a3", "a4", "a5", "a6", "a7", "a8"},
		},
		{
			name:     "enemy to the right",
			neighbor: Black,
			want:     []string{"a2", "a3", "a4", "a5", "a6", "a7", "a8", "b1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			rook := place(t, b, "a1", Rook, White)
			place(t, b, "b1", Knight, tt.neighbor)

			got := squares(rook.Destinations(b))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Destinations() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSliderRaysInEveryDirection(t *testing.T) {
	tests := []struct {
		name  string
		piece PieceType
		want  int
	}{
		{"rook", Rook, 14},
		{"bishop", Bishop, 13},
		{"queen", Queen, 27},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			p := place(t, b, "d4", tt.piece, White)
			if got := len(p.Destinations(b)); got != tt.want {
				t.Errorf("len(Destinations()) from d4 = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestBishopStopsOnCapture(t *testing.T) {
	b := NewBoard()
	bishop := place(t, b, "c1", Bishop, White)
	place(t, b, "e3", Pawn, Black)
	place(t, b, "b2", Pawn, White)

	got := squares(bishop.Destinations(b))
	want := []string{"d2", "e3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Destinations() mismatch (-want +got):\n%s", diff)
	}
}

func TestPawnDestinations(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, b *Board) *Piece
		want  []string
	}{
		{
			name: "white double advance from start",
			setup: func(t *testing.T, b *Board) *Piece {
				return place(t, b, "e2", Pawn, White)
			},
			want: []string{"e3", "e4"},
		},
		{
			name: "black double advance from start",
			setup: func(t *testing.T, b *Board) *Piece {
				return place(t, b, "d7", Pawn, Black)
			},
			want: []string{"d5", "d6"},
		},
		{
			name: "single advance off the start rank",
			setup: func(t *testing.T, b *Board) *Piece {
				return place(t, b, "e3", Pawn, White)
			},
			want: []string{"e4"},
		},
		{
			name: "blocked straight ahead",
			setup: func(t *testing.T, b *Board) *Piece {
				place(t, b, "e3", Knight, Black)
				return place(t, b, "e2", Pawn, White)
			},
			want: nil,
		},
		{
			name: "double advance blocked on the second square",
			setup: func(t *testing.T, b *Board) *Piece {
				place(t, b, "e4", Knight, Black)
				return place(t, b, "e2", Pawn, White)
			},
			want: []string{"e3"},
		},
		{
			name: "diagonal captures only onto opponents",
			setup: func(t *testing.T, b *Board) *Piece {
				place(t, b, "d5", Knight, Black)
				place(t, b, "f5", Knight, White)
				return place(t, b, "e4", Pawn, White)
			},
			want: []string{"d5", "e5"},
		},
		{
			name: "edge file does not wrap",
			setup: func(t *testing.T, b *Board) *Piece {
				place(t, b, "b6", Knight, Black)
				return place(t, b, "a7", Pawn, Black)
			},
			want: []string{"a5", "a6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			p := tt.setup(t, b)
			got := squares(p.Destinations(b))
			if len(tt.want) == 0 && len(got) == 0 {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Destinations() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMovesWrapDestinations(t *testing.T) {
	b := NewBoard()
	king := place(t, b, "h8", King, Black)

	moves := king.Moves(b)
	if len(moves) != 3 {
		t.Fatalf("len(Moves()) = %d; want 3", len(moves))
	}
	for _, m := range moves {
		if m.From != king.Position {
			t.Errorf("move %v From = %v; want %v", m, m.From, king.Position)
		}
		if m.Applied() {
			t.Errorf("move %v is populated before being applied", m)
		}
	}
}
