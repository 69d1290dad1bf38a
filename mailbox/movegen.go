package mailbox

// pseudoMovesInto appends every pseudo-legal move of the side to move to dst.
// Castling is not included; it is only ever produced by the legal generator.
func (b *Board) pseudoMovesInto(dst []Move) []Move {
	us := b.sideToMove
	for sq := Square(0); sq < 64; sq++ {
		p := b.placement[sq]
		if p == NoPiece || p.Color() != us {
			continue
		}
		dst = b.pieceMovesInto(dst, sq, p)
	}
	return dst
}

// PseudoLegalMoves returns the moves allowed by movement patterns and
// occupancy alone, without regard to the mover's king. Castling is excluded.
func (b *Board) PseudoLegalMoves() []Move {
	return b.pseudoMovesInto(make([]Move, 0, 64))
}

func (b *Board) pieceMovesInto(dst []Move, from Square, p Piece) []Move {
	us := p.Color()
	switch p.Type() {
	case Pawn:
		for _, to := range pawnPushes[us][from] {
			if b.placement[to] != NoPiece {
				break
			}
			dst = appendPawnMove(dst, from, to, us)
		}
		for _, to := range pawnCaptures[us][from] {
			t := b.placement[to]
			if t != NoPiece && t.Color() != us {
				dst = appendPawnMove(dst, from, to, us)
			} else if t == NoPiece && to == b.enPassant && b.enPassantVictim(to, us) != NoSquare {
				dst = append(dst, Move{From: from, To: to})
			}
		}
	case Knight:
		dst = b.stepMovesInto(dst, from, knightTargets[from], us)
	case King:
		dst = b.stepMovesInto(dst, from, kingTargets[from], us)
	case Rook, Bishop, Queen:
		for _, ray := range slidingRays(p.Type(), from) {
			for _, to := range ray {
				t := b.placement[to]
				if t == NoPiece {
					dst = append(dst, Move{From: from, To: to})
					continue
				}
				if t.Color() != us {
					dst = append(dst, Move{From: from, To: to})
				}
				break
			}
		}
	}
	return dst
}

func (b *Board) stepMovesInto(dst []Move, from Square, targets []Square, us Color) []Move {
	for _, to := range targets {
		t := b.placement[to]
		if t == NoPiece || t.Color() != us {
			dst = append(dst, Move{From: from, To: to})
		}
	}
	return dst
}

// appendPawnMove emits the four promotion variants when the pawn reaches its
// last row, and a plain move otherwise.
func appendPawnMove(dst []Move, from, to Square, us Color) []Move {
	if to.Row() != lastRow(us) {
		return append(dst, Move{From: from, To: to})
	}
	for _, pt := range promotionTypes {
		dst = append(dst, Move{From: from, To: to, Promotion: pt})
	}
	return dst
}

// enPassantVictim returns the square of the enemy pawn an en passant capture
// onto target would remove, or NoSquare if there is no such pawn.
func (b *Board) enPassantVictim(target Square, us Color) Square {
	victim := Square(int(target) - 8*pawnDirection(us))
	if !victim.Valid() || b.placement[victim] != NewPiece(us.Other(), Pawn) {
		return NoSquare
	}
	return victim
}

func (b *Board) isEnPassant(m Move) bool {
	return m.To == b.enPassant &&
		b.placement[m.From].Type() == Pawn &&
		m.From.Column() != m.To.Column() &&
		b.placement[m.To] == NoPiece
}

// enPassantSafe plays the capture, checks the mover's king, and takes it back.
// Static pin detection misses the case where both pawns leave a rank that a
// rook or queen shares with the king, so this is the authoritative test.
func (b *Board) enPassantSafe(m Move, king Square) bool {
	us := b.sideToMove
	if err := b.Move(m); err != nil {
		return false
	}
	safe := !b.IsAttacked(king, us.Other())
	b.Undo()
	return safe
}

// castleRule holds the fixed squares for one castling right.
type castleRule struct {
	right      CastlingRights
	color      Color
	king, rook Square
	move       Move
	// mustBeEmpty: strictly between king and rook.
	mustBeEmpty SquareSet
	// mustBeSafe: squares the king crosses, destination included.
	mustBeSafe SquareSet
}

var castleRules = [4]castleRule{
	{
		right: WhiteKingSide, color: White, king: E1, rook: H1,
		move:        Move{From: E1, To: G1},
		mustBeEmpty: SquareSetOf(F1, G1),
		mustBeSafe:  SquareSetOf(F1, G1),
	},
	{
		right: WhiteQueenSide, color: White, king: E1, rook: A1,
		move:        Move{From: E1, To: C1},
		mustBeEmpty: SquareSetOf(B1, C1, D1),
		mustBeSafe:  SquareSetOf(C1, D1),
	},
	{
		right: BlackKingSide, color: Black, king: E8, rook: H8,
		move:        Move{From: E8, To: G8},
		mustBeEmpty: SquareSetOf(F8, G8),
		mustBeSafe:  SquareSetOf(F8, G8),
	},
	{
		right: BlackQueenSide, color: Black, king: E8, rook: A8,
		move:        Move{From: E8, To: C8},
		mustBeEmpty: SquareSetOf(B8, C8, D8),
		mustBeSafe:  SquareSetOf(C8, D8),
	},
}

// castlesInto appends the castling moves available to a side that is not in
// check. attacked is the opposing attack map.
func (b *Board) castlesInto(dst []Move, attacked SquareSet) []Move {
	us := b.sideToMove
	for i := range castleRules {
		r := &castleRules[i]
		if r.color != us || !b.castling.Has(r.right) {
			continue
		}
		if b.placement[r.king] != NewPiece(us, King) || b.placement[r.rook] != NewPiece(us, Rook) {
			continue
		}
		if b.occupied(r.mustBeEmpty) || attacked&r.mustBeSafe != 0 {
			continue
		}
		dst = append(dst, r.move)
	}
	return dst
}

func (b *Board) occupied(set SquareSet) bool {
	for _, sq := range set.Squares() {
		if b.placement[sq] != NoPiece {
			return true
		}
	}
	return false
}

// LegalMoves returns every legal move for the side to move, in no particular
// order. A position without a king for the side to move has no legal moves.
func (b *Board) LegalMoves() []Move {
	return b.LegalMovesInto(make([]Move, 0, 64))
}

// LegalMovesInto appends the legal moves to dst and returns the extended
// slice, letting recursive callers reuse one buffer per ply.
func (b *Board) LegalMovesInto(dst []Move) []Move {
	us := b.sideToMove
	them := us.Other()
	king := b.KingSquare(us)
	if king == NoSquare {
		return dst
	}

	attacked := b.AttackedSquares(them)

	var pinned SquareSet
	var pinRay [64]SquareSet
	for _, pin := range b.Pins(us) {
		pinned.Add(pin.Pinned)
		pinRay[pin.Pinned] = pin.Ray
	}

	start := len(dst)
	dst = b.pseudoMovesInto(dst)

	if !attacked.Has(king) {
		n := start
		for _, m := range dst[start:] {
			if m.From == king && attacked.Has(m.To) {
				continue
			}
			if pinned.Has(m.From) && !pinRay[m.From].Has(m.To) {
				continue
			}
			if b.isEnPassant(m) && !b.enPassantSafe(m, king) {
				continue
			}
			dst[n] = m
			n++
		}
		return b.castlesInto(dst[:n], attacked)
	}

	block, xray := b.evasionSets(king, them)
	n := start
	for _, m := range dst[start:] {
		switch {
		case m.From == king:
			if attacked.Has(m.To) || xray.Has(m.To) {
				continue
			}
		case pinned.Has(m.From):
			continue
		case b.isEnPassant(m):
			victim := b.enPassantVictim(m.To, us)
			if !block.Has(m.To) && !block.Has(victim) {
				continue
			}
			if !b.enPassantSafe(m, king) {
				continue
			}
		case !block.Has(m.To):
			continue
		}
		dst[n] = m
		n++
	}
	return dst[:n]
}

// evasionSets computes, for a king in check, the squares a non-king move must
// land on (block) and the squares behind the king that sliding checkers still
// cover once the king steps off the line (xray).
//
// Each checker contributes its own square plus, for a slider, the squares
// between it and the king. The sets are intersected, so a double check leaves
// block empty and only king moves survive.
func (b *Board) evasionSets(king Square, them Color) (block, xray SquareSet) {
	block = AllSquares
	for _, c := range b.checkersOf(king, them) {
		pt := b.placement[c].Type()
		if !isSlider(pt) {
			block &= SquareSetOf(c)
			continue
		}
		line, beyond := checkLine(pt, c, king)
		block &= line
		if beyond != NoSquare {
			xray.Add(beyond)
		}
	}
	return block, xray
}

// checkLine walks the ray from a sliding checker on from toward king. line
// holds the checker square and everything up to the king, exclusive; beyond is
// the next square past the king on that ray, or NoSquare at the edge.
func checkLine(pt PieceType, from, king Square) (line SquareSet, beyond Square) {
	for _, ray := range slidingRays(pt, from) {
		line = SquareSetOf(from)
		for i, sq := range ray {
			if sq != king {
				line.Add(sq)
				continue
			}
			if i+1 < len(ray) {
				return line, ray[i+1]
			}
			return line, NoSquare
		}
	}
	return SquareSetOf(from), NoSquare
}
