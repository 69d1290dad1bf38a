package engine

import (
	gm "chess-core/mailbox"
)

// GameStatus is the result of a position for the side to move.
type GameStatus int

const (
	Ongoing GameStatus = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
)

func (s GameStatus) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveDraw:
		return "fifty-move draw"
	}
	return "ongoing"
}

// FiftyMoveLimit is the halfmove clock value at which the game is drawn.
const FiftyMoveLimit = 100

// HasLegalMoves reports whether the side to move can move at all.
func HasLegalMoves(b *gm.Board) bool { return len(b.LegalMoves()) > 0 }

// Status classifies the position. Checkmate and stalemate take precedence
// over the fifty-move rule.
func Status(b *gm.Board) GameStatus {
	if !HasLegalMoves(b) {
		if b.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if b.HalfmoveClock() >= FiftyMoveLimit {
		return FiftyMoveDraw
	}
	return Ongoing
}
