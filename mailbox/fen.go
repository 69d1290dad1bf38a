package mailbox

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// pieceFromChar converts a FEN character to the corresponding Piece.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

var fenChars = [...]byte{Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k'}

// fenChar converts a Piece to its FEN character (upper case for White).
func fenChar(p Piece) byte {
	ch := fenChars[p.Type()]
	if p.Color() == White {
		ch -= 'a' - 'A'
	}
	return ch
}

// ParseFEN parses a position string. The halfmove clock and fullmove number
// are optional and default to 0 and 1.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: %q: need placement, side, castling and en passant fields", ErrInvalidFEN, fen)
	}

	b := &Board{}
	b.enPassant = NoSquare
	b.fullmoveNumber = 1

	// 1. Piece placement, rank 8 first
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: %q: %d ranks", ErrInvalidFEN, fen, len(ranks))
	}
	for i, rankStr := range ranks {
		row := 7 - i
		col := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			p := pieceFromChar(ch)
			if p == NoPiece {
				return nil, fmt.Errorf("%w: %q: unknown piece %q", ErrInvalidFEN, fen, ch)
			}
			if col >= 8 {
				return nil, fmt.Errorf("%w: %q: rank %d overflows", ErrInvalidFEN, fen, row+1)
			}
			b.placement[NewSquare(row, col)] = p
			col++
		}
		if col != 8 {
			return nil, fmt.Errorf("%w: %q: rank %d has %d columns", ErrInvalidFEN, fen, row+1, col)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, fmt.Errorf("%w: %q: side to move %q", ErrInvalidFEN, fen, fields[1])
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				b.castling |= WhiteKingSide
			case 'Q':
				b.castling |= WhiteQueenSide
			case 'k':
				b.castling |= BlackKingSide
			case 'q':
				b.castling |= BlackQueenSide
			default:
				return nil, fmt.Errorf("%w: %q: castling right %q", ErrInvalidFEN, fen, ch)
			}
		}
	}

	// 4. En passant target
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: en passant: %v", ErrInvalidFEN, fen, err)
		}
		// the target sits behind a pawn that just advanced two squares
		if want := 5 - 3*int(b.sideToMove); sq.Row() != want {
			return nil, fmt.Errorf("%w: %q: en passant square %s is not on rank %d", ErrInvalidFEN, fen, sq, want+1)
		}
		b.enPassant = sq
	}

	// 5-6. Clocks
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q: halfmove clock %q", ErrInvalidFEN, fen, fields[4])
		}
		b.halfmoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q: fullmove number %q", ErrInvalidFEN, fen, fields[5])
		}
		b.fullmoveNumber = n
	}
	return b, nil
}

// MustParseFEN is ParseFEN for constant positions; it panics on error.
func MustParseFEN(fen string) *Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// FEN renders the board as a six-field FEN string.
func (b *Board) FEN() string {
	var sb strings.Builder

	for row := 7; row >= 0; row-- {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.placement[NewSquare(row, col)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(fenChar(p))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(b.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}

// Validate checks the precondition of the legality queries: exactly one king
// per side.
func (b *Board) Validate() error {
	var kings [2]int
	for _, p := range b.placement {
		if p.Type() == King {
			kings[p.Color()]++
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("%w: white has %d, black has %d", ErrNoKing, kings[White], kings[Black])
	}
	return nil
}
