package model

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

func (p PieceType) valid() bool {
	_, ok := generators[p]
	return ok
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) valid() bool {
	return c == White || c == Black
}

// Piece is owned by the board cell at Position.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
}

func NewPiece(t PieceType, c Color) *Piece {
	return &Piece{Type: t, Color: c}
}

// Destinations returns the pseudo-legal destination squares of p on b:
// squares its movement pattern reaches given current occupancy, without
// regard to whether the move exposes its own king.
func (p *Piece) Destinations(b *Board) []Position {
	gen, ok := generators[p.Type]
	if !ok {
		return nil
	}
	return gen(b, p)
}

// Moves wraps every destination into a Move from the piece's square.
func (p *Piece) Moves(b *Board) []Move {
	dests := p.Destinations(b)
	moves := make([]Move, 0, len(dests))
	for _, d := range dests {
		moves = append(moves, NewMove(p.Position, d))
	}
	return moves
}

type direction struct{ dx, dy int }

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, rookDirs...), bishopDirs...)
	kingDirs   = queenDirs
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

type generator func(b *Board, p *Piece) []Position

var generators map[PieceType]generator

func init() {
	generators = map[PieceType]generator{
		Pawn:   pawnDestinations,
		Knight: leaper(knightDirs),
		Bishop: slider(bishopDirs),
		Rook:   slider(rookDirs),
		Queen:  slider(queenDirs),
		King:   leaper(kingDirs),
	}
}

// leaper steps once along each offset.
func leaper(dirs []direction) generator {
	return func(b *Board, p *Piece) []Position {
		var dests []Position
		for _, d := range dirs {
			target := p.Position.offset(d.dx, d.dy)
			if !target.OnBoard() {
				continue
			}
			if occupant := b.At(target); occupant == nil || occupant.Color != p.Color {
				dests = append(dests, target)
			}
		}
		return dests
	}
}

// slider casts a ray along each direction until it leaves the board or hits
// a piece. An opposing piece ends the ray and is included.
func slider(dirs []direction) generator {
	return func(b *Board, p *Piece) []Position {
		var dests []Position
		for _, d := range dirs {
			target := p.Position.offset(d.dx, d.dy)
			for target.OnBoard() {
				occupant := b.At(target)
				if occupant == nil {
					dests = append(dests, target)
				} else {
					if occupant.Color != p.Color {
						dests = append(dests, target)
					}
					break
				}
				target = target.offset(d.dx, d.dy)
			}
		}
		return dests
	}
}

func pawnDestinations(b *Board, p *Piece) []Position {
	var dests []Position
	dir, startRank := 1, 1
	if p.Color == Black {
		dir, startRank = -1, BoardSize-2
	}

	one := p.Position.offset(0, dir)
	if one.OnBoard() && b.IsEmpty(one) {
		dests = append(dests, one)
		two := one.offset(0, dir)
		if p.Position.Y == startRank && two.OnBoard() && b.IsEmpty(two) {
			dests = append(dests, two)
		}
	}
	for _, dx := range []int{-1, 1} {
		target := p.Position.offset(dx, dir)
		if !target.OnBoard() {
			continue
		}
		if occupant := b.At(target); occupant != nil && occupant.Color != p.Color {
			dests = append(dests, target)
		}
	}
	return dests
}

func lastRank(c Color) int {
	if c == White {
		return BoardSize - 1
	}
	return 0
}

func promotes(p *Piece, to Position) bool {
	return p.Type == Pawn && to.Y == lastRank(p.Color)
}
