package model

import (
	"errors"
	"testing"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want Position
	}{
		{"a1", Position{X: 0, Y: 0}},
		{"h8", Position{X: 7, Y: 7}},
		{"e4", Position{X: 4, Y: 3}},
		{"E4", Position{X: 4, Y: 3}},
		{"c7", Position{X: 2, Y: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePosition(tt.in)
			if err != nil {
				t.Fatalf("ParsePosition(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParsePosition(%q) = %+v; want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePositionInvalid(t *testing.T) {
	for _, in := range []string{"", "e", "e44", "i1", "a0", "a9", "11", "ee", " e4"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePosition(in)
			if !errors.Is(err, ErrInvalidNotation) {
				t.Errorf("ParsePosition(%q) error = %v; want ErrInvalidNotation", in, err)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	for _, sq := range []string{"a1", "b2", "e4", "h8", "d7"} {
		if got := MustParsePosition(sq).String(); got != sq {
			t.Errorf("String() = %q; want %q", got, sq)
		}
	}
}

func TestOnBoard(t *testing.T) {
	tests := []struct {
		pos  Position
		want bool
	}{
		{Position{0, 0}, true},
		{Position{7, 7}, true},
		{Position{-1, 0}, false},
		{Position{0, -1}, false},
		{Position{8, 0}, false},
		{Position{0, 8}, false},
	}
	b := NewBoard()
	for _, tt := range tests {
		if got := tt.pos.OnBoard(); got != tt.want {
			t.Errorf("%+v.OnBoard() = %v; want %v", tt.pos, got, tt.want)
		}
		if got := b.IsOnBoard(tt.pos); got != tt.want {
			t.Errorf("IsOnBoard(%+v) = %v; want %v", tt.pos, got, tt.want)
		}
	}
}
