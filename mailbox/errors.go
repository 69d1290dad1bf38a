package mailbox

import "errors"

var (
	// ErrInvalidFEN reports a malformed position string.
	ErrInvalidFEN = errors.New("invalid FEN")
	// ErrInvalidSquare reports a malformed algebraic square.
	ErrInvalidSquare = errors.New("invalid square")
	// ErrInvalidMove reports a malformed move string.
	ErrInvalidMove = errors.New("invalid move")
	// ErrEmptySquare is returned by Move when there is no piece on the origin square.
	ErrEmptySquare = errors.New("no piece on origin square")
	// ErrNoKing reports a position without exactly one king per side.
	ErrNoKing = errors.New("position needs exactly one king per side")
	// ErrIllegalMove reports a well-formed move that is not legal in the position.
	ErrIllegalMove = errors.New("illegal move")
)
