package mailbox

import "fmt"

// Snapshot is the full pre-move state saved by Move, tagged with the move that
// was about to be applied.
type Snapshot struct {
	Move Move
	pos  position
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Move applies m to the board after pushing a snapshot of the current state.
// Special cases are detected in order: castling (the king moves two files),
// en passant (a pawn moves diagonally onto the en-passant target), then an
// ordinary move, capture or promotion.
//
// Move does not check legality; callers pass moves from LegalMoves. A move
// from an empty square is rejected with ErrEmptySquare and leaves the board
// and the snapshot stack untouched.
func (b *Board) Move(m Move) error {
	if !m.From.Valid() || !m.To.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidMove, m)
	}
	p := b.placement[m.From]
	if p == NoPiece {
		return fmt.Errorf("%w: %s in %s", ErrEmptySquare, m, b.FEN())
	}
	b.snapshots = append(b.snapshots, Snapshot{Move: m, pos: b.position})

	us := b.sideToMove
	captured := b.placement[m.To]
	switch {
	case p.Type() == King && abs(m.To.Column()-m.From.Column()) == 2:
		rookFrom, rookTo := NewSquare(m.From.Row(), 7), m.From+1
		if m.To < m.From {
			rookFrom, rookTo = NewSquare(m.From.Row(), 0), m.From-1
		}
		b.placement[rookTo] = b.placement[rookFrom]
		b.placement[rookFrom] = NoPiece
		b.placement[m.To] = p
	case p.Type() == Pawn && m.To == b.enPassant && m.From.Column() != m.To.Column():
		victim := Square(int(m.To) - 8*pawnDirection(p.Color()))
		captured = b.placement[victim]
		b.placement[victim] = NoPiece
		b.placement[m.To] = p
	default:
		if p.Type() == Pawn && m.Promotion != NoPieceType {
			b.placement[m.To] = NewPiece(p.Color(), m.Promotion)
		} else {
			b.placement[m.To] = p
		}
	}
	b.placement[m.From] = NoPiece

	b.castling &^= castlingLoss[m.From] | castlingLoss[m.To]
	if p.Type() == King {
		b.castling &^= colorCastling(p.Color())
	}

	if p.Type() == Pawn || captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}

	b.enPassant = NoSquare
	if p.Type() == Pawn && abs(int(m.To)-int(m.From)) == 16 {
		b.enPassant = (m.From + m.To) / 2
	}
	b.sideToMove = us.Other()
	return nil
}

// Undo restores the state saved by the most recent Move. It does nothing when
// no move has been applied.
func (b *Board) Undo() {
	n := len(b.snapshots)
	if n == 0 {
		return
	}
	b.position = b.snapshots[n-1].pos
	b.snapshots = b.snapshots[:n-1]
}

// Apply plays m and returns a closure that takes it back.
func (b *Board) Apply(m Move) (func(), error) {
	if err := b.Move(m); err != nil {
		return nil, err
	}
	return b.Undo, nil
}

// Depth returns the number of moves that can still be undone.
func (b *Board) Depth() int { return len(b.snapshots) }

// LastMove returns the most recently applied move.
func (b *Board) LastMove() (Move, bool) {
	if len(b.snapshots) == 0 {
		return NullMove, false
	}
	return b.snapshots[len(b.snapshots)-1].Move, true
}

// History lists the applied moves, oldest first.
func (b *Board) History() []Move {
	moves := make([]Move, len(b.snapshots))
	for i, s := range b.snapshots {
		moves[i] = s.Move
	}
	return moves
}

// IsCapture reports whether m takes a piece, en passant included.
func (b *Board) IsCapture(m Move) bool {
	if b.placement[m.To] != NoPiece {
		return true
	}
	return b.isEnPassant(m)
}
