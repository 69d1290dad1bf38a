package engine

import (
	gm "chess-core/mailbox"
)

// PieceValue holds the material value of each piece type in centipawns.
// The king carries no material value.
var PieceValue = [7]int{
	gm.Pawn:   100,
	gm.Knight: 300,
	gm.Bishop: 300,
	gm.Rook:   500,
	gm.Queen:  900,
}

// Material sums the piece values of one side.
func Material(b *gm.Board, c gm.Color) int {
	total := 0
	for sq := gm.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p != gm.NoPiece && p.Color() == c {
			total += PieceValue[p.Type()]
		}
	}
	return total
}

// Evaluate returns the material balance from the side to move's view.
func Evaluate(b *gm.Board) int {
	us := b.SideToMove()
	return Material(b, us) - Material(b, us.Other())
}
