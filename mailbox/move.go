package mailbox

import (
	"fmt"
	"strings"
)

// Move is a from/to pair with an optional promotion type. Moves are plain
// comparable values and can be used as map keys.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType // NoPieceType unless a pawn reaches the last rank
}

// NullMove is the zero-information move rendered as "0000".
var NullMove = Move{From: NoSquare, To: NoSquare}

// String renders the move in coordinate notation ("e2e4", "e7e8q").
func (m Move) String() string {
	if !m.From.Valid() || !m.To.Valid() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != NoPieceType {
		s += string(promotionChar(m.Promotion))
	}
	return s
}

func promotionChar(pt PieceType) byte {
	switch pt {
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	}
	return '?'
}

// ParseMove converts coordinate notation (e2e4, e7e8q) into a Move. The
// promotion letter must be one of q, r, b, n.
func ParseMove(str string) (Move, error) {
	str = strings.TrimSpace(str)
	if len(str) != 4 && len(str) != 5 {
		return NullMove, fmt.Errorf("%w: %q has length %d", ErrInvalidMove, str, len(str))
	}
	from, err := ParseSquare(str[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, str, err)
	}
	to, err := ParseSquare(str[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, str, err)
	}
	m := Move{From: from, To: to}
	if len(str) == 5 {
		switch str[4] {
		case 'q':
			m.Promotion = Queen
		case 'r':
			m.Promotion = Rook
		case 'b':
			m.Promotion = Bishop
		case 'n':
			m.Promotion = Knight
		default:
			return NullMove, fmt.Errorf("%w: %q: promotion piece %q", ErrInvalidMove, str, str[4])
		}
	}
	return m, nil
}

// FindLegal returns the legal move matching m (from, to and promotion), or
// ErrIllegalMove when the position has no such move.
func (b *Board) FindLegal(m Move) (Move, error) {
	for _, lm := range b.LegalMoves() {
		if lm == m {
			return lm, nil
		}
	}
	return NullMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, m, b.FEN())
}
