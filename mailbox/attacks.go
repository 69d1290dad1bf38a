package mailbox

import "math/bits"

// SquareSet is a set of squares, one bit per square index.
type SquareSet uint64

// AllSquares contains every square.
const AllSquares SquareSet = ^SquareSet(0)

// SquareSetOf builds a set from the given squares.
func SquareSetOf(squares ...Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s.Add(sq)
	}
	return s
}

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool { return s&(1<<uint(sq)) != 0 }

// Add inserts sq into the set.
func (s *SquareSet) Add(sq Square) { *s |= 1 << uint(sq) }

// Len returns the number of squares in the set.
func (s SquareSet) Len() int { return bits.OnesCount64(uint64(s)) }

// Squares lists the members in ascending order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for m := uint64(s); m != 0; m &= m - 1 {
		out = append(out, Square(bits.TrailingZeros64(m)))
	}
	return out
}

// pieceAttacks returns the squares threatened by the piece on sq. Sliding
// rays include the first occupied square and stop there; knight and king
// attack their whole template; pawns attack only their forward diagonals.
func (b *Board) pieceAttacks(sq Square) SquareSet {
	p := b.placement[sq]
	var set SquareSet
	switch p.Type() {
	case Pawn:
		for _, t := range pawnCaptures[p.Color()][sq] {
			set.Add(t)
		}
	case Knight:
		for _, t := range knightTargets[sq] {
			set.Add(t)
		}
	case King:
		for _, t := range kingTargets[sq] {
			set.Add(t)
		}
	case Rook, Bishop, Queen:
		for _, ray := range slidingRays(p.Type(), sq) {
			for _, t := range ray {
				set.Add(t)
				if b.placement[t] != NoPiece {
					break
				}
			}
		}
	}
	return set
}

// AttackedSquares returns the union of the squares threatened by every piece
// of color c.
func (b *Board) AttackedSquares(c Color) SquareSet {
	var set SquareSet
	for sq := Square(0); sq < 64; sq++ {
		p := b.placement[sq]
		if p != NoPiece && p.Color() == c {
			set |= b.pieceAttacks(sq)
		}
	}
	return set
}

// IsAttacked reports whether sq is attacked by color c.
func (b *Board) IsAttacked(sq Square, c Color) bool {
	return b.AttackedSquares(c).Has(sq)
}

// InCheck reports whether the side to move's king is attacked.
func (b *Board) InCheck() bool {
	king := b.KingSquare(b.sideToMove)
	return king != NoSquare && b.IsAttacked(king, b.sideToMove.Other())
}

// Checkers returns the squares of the enemy pieces attacking the side to
// move's king.
func (b *Board) Checkers() []Square {
	king := b.KingSquare(b.sideToMove)
	if king == NoSquare {
		return nil
	}
	return b.checkersOf(king, b.sideToMove.Other())
}

func (b *Board) checkersOf(king Square, them Color) []Square {
	var checkers []Square
	for sq := Square(0); sq < 64; sq++ {
		p := b.placement[sq]
		if p != NoPiece && p.Color() == them && b.pieceAttacks(sq).Has(king) {
			checkers = append(checkers, sq)
		}
	}
	return checkers
}

// LineType is the kind of line a pin runs along.
type LineType uint8

const (
	RookLine LineType = iota
	BishopLine
)

func (l LineType) String() string {
	if l == RookLine {
		return "rook"
	}
	return "bishop"
}

// Pin describes a friendly piece that cannot leave the line between its king
// and an enemy slider. Pins are derived from the current position on demand
// and never stored.
type Pin struct {
	Pinned       Square
	PinnerSquare Square
	Pinner       Piece
	Line         LineType
	// Ray holds the squares the pinned piece may still move to: the line
	// from the king (exclusive) up to and including the pinner.
	Ray SquareSet
}

// Pins scans the four rook rays and four bishop rays outward from c's king.
// The first occupant of a ray is a candidate only if it belongs to c; it is
// pinned when the next occupant is an enemy slider moving along that kind of
// line. Any other occupant ends the ray.
func (b *Board) Pins(c Color) []Pin {
	king := b.KingSquare(c)
	if king == NoSquare {
		return nil
	}
	var pins []Pin
	for d := range rookRays[king] {
		if pin, ok := b.pinOnRay(c, rookRays[king][d], RookLine); ok {
			pins = append(pins, pin)
		}
	}
	for d := range bishopRays[king] {
		if pin, ok := b.pinOnRay(c, bishopRays[king][d], BishopLine); ok {
			pins = append(pins, pin)
		}
	}
	return pins
}

func (b *Board) pinOnRay(c Color, ray []Square, line LineType) (Pin, bool) {
	lineMover := Rook
	if line == BishopLine {
		lineMover = Bishop
	}
	friend := NoSquare
	var squares SquareSet
	for _, sq := range ray {
		squares.Add(sq)
		p := b.placement[sq]
		if p == NoPiece {
			continue
		}
		if friend == NoSquare {
			if p.Color() != c {
				return Pin{}, false
			}
			friend = sq
			continue
		}
		if p.Color() != c && (p.Type() == lineMover || p.Type() == Queen) {
			return Pin{Pinned: friend, PinnerSquare: sq, Pinner: p, Line: line, Ray: squares}, true
		}
		return Pin{}, false
	}
	return Pin{}, false
}
