package model

var backRank = []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardBoard returns a board in the standard starting position with
// white on ranks 1 and 2.
func NewStandardBoard() *Board {
	b := NewBoard()
	for x := 0; x < BoardSize; x++ {
		b.Set(Position{X: x, Y: 0}, NewPiece(backRank[x], White))
		b.Set(Position{X: x, Y: 1}, NewPiece(Pawn, White))
		b.Set(Position{X: x, Y: BoardSize - 2}, NewPiece(Pawn, Black))
		b.Set(Position{X: x, Y: BoardSize - 1}, NewPiece(backRank[x], Black))
	}
	return b
}
