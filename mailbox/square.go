package mailbox

import "fmt"

// Square is a board index 0..63 with a1=0, h1=7, a8=56, h8=63.
type Square int

const NoSquare Square = -1

// Named squares used by castling and tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = iota + 56
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare builds a square from a zero-based row (rank) and column (file).
func NewSquare(row, column int) Square { return Square(row*8 + column) }

// Row returns the zero-based rank.
func (s Square) Row() int { return int(s) / 8 }

// Column returns the zero-based file.
func (s Square) Column() int { return int(s) % 8 }

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

// String renders the square in algebraic form ("e4"), or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.Column()), '1' + byte(s.Row())})
}

// ParseSquare converts algebraic notation ("e4") into a Square.
func ParseSquare(str string) (Square, error) {
	if len(str) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, str)
	}
	file, rank := str[0], str[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, str)
	}
	return NewSquare(int(rank-'1'), int(file-'a')), nil
}
