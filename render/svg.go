// Package render draws boards as images.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	gm "chess-core/mailbox"
)

const (
	// SquareSize is the edge of one square in SVG user units.
	SquareSize = 60
	margin     = 24

	lightFill = "fill:#f0d9b5"
	darkFill  = "fill:#b58863"
	labelText = "font-family:sans-serif;font-size:14px;fill:#333;text-anchor:middle"
	pieceText = "font-family:serif;font-size:48px;text-anchor:middle;dominant-baseline:central"
)

var glyphs = map[gm.Piece]string{
	gm.WhiteKing:   "♔",
	gm.WhiteQueen:  "♕",
	gm.WhiteRook:   "♖",
	gm.WhiteBishop: "♗",
	gm.WhiteKnight: "♘",
	gm.WhitePawn:   "♙",
	gm.BlackKing:   "♚",
	gm.BlackQueen:  "♛",
	gm.BlackRook:   "♜",
	gm.BlackBishop: "♝",
	gm.BlackKnight: "♞",
	gm.BlackPawn:   "♟",
}

// Glyph returns the Unicode chess symbol for p, or "" for an empty square.
func Glyph(p gm.Piece) string {
	return glyphs[p]
}

// Size is the width and height of the image SVG writes.
func Size() int {
	return 8*SquareSize + 2*margin
}

// SVG writes b as an SVG document with rank 8 at the top and file and rank
// labels around the edge.
func SVG(w io.Writer, b *gm.Board) {
	canvas := svg.New(w)
	size := Size()
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:#fff")
	for row := 7; row >= 0; row-- {
		y := margin + (7-row)*SquareSize
		for col := 0; col < 8; col++ {
			x := margin + col*SquareSize
			fill := darkFill
			if (row+col)%2 == 1 {
				fill = lightFill
			}
			canvas.Rect(x, y, SquareSize, SquareSize, fill)
			if g := Glyph(b.PieceAt(gm.NewSquare(row, col))); g != "" {
				canvas.Text(x+SquareSize/2, y+SquareSize/2, g, pieceText)
			}
		}
		rank := fmt.Sprint(row + 1)
		canvas.Text(margin/2, y+SquareSize/2+5, rank, labelText)
		canvas.Text(size-margin/2, y+SquareSize/2+5, rank, labelText)
	}
	for col := 0; col < 8; col++ {
		x := margin + col*SquareSize + SquareSize/2
		file := string(rune('a' + col))
		canvas.Text(x, margin-7, file, labelText)
		canvas.Text(x, size-7, file, labelText)
	}
	canvas.End()
}
