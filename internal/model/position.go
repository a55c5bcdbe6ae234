package model

import (
	"fmt"
	"strings"
)

const BoardSize = 8

// Position is a board coordinate. X is the file (0 = a) and Y is the rank
// (0 = rank 1).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// OnBoard reports whether both coordinates lie in [0, BoardSize).
func (p Position) OnBoard() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

func (p Position) offset(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String returns the square in coordinate notation, e.g. "e4".
func (p Position) String() string {
	if !p.OnBoard() {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return fmt.Sprintf("%c%d", 'a'+p.X, p.Y+1)
}

func (p Position) fileNotation() string {
	return fmt.Sprintf("%c", 'a'+p.X)
}

// ParsePosition converts a two-character square such as "e4" into a
// Position. The file letter is case-insensitive.
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	file := strings.ToLower(s[:1])[0]
	rank := s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	return Position{X: int(file - 'a'), Y: int(rank - '1')}, nil
}

// MustParsePosition is ParsePosition for literals known to be valid.
func MustParsePosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}
