package engine

import (
	gm "chess-core/mailbox"
)

// MateScore is the score of a move that checkmates the opponent.
const MateScore = 100000

// ScoredMove pairs a root move with its one-ply score.
type ScoredMove struct {
	Move  gm.Move
	Score int
}

// ScoreMoves plays each legal move, scores the resulting position from the
// mover's view and takes the move back. Mate scores MateScore; stalemate 0.
func ScoreMoves(b *gm.Board) []ScoredMove {
	moves := b.LegalMoves()
	scored := make([]ScoredMove, 0, len(moves))
	for _, m := range moves {
		undo, err := b.Apply(m)
		if err != nil {
			continue
		}
		scored = append(scored, ScoredMove{Move: m, Score: scoreAfterMove(b)})
		undo()
	}
	return scored
}

func scoreAfterMove(b *gm.Board) int {
	if len(b.LegalMoves()) == 0 {
		if b.InCheck() {
			return MateScore
		}
		return 0
	}
	return -Evaluate(b)
}

// BestMove runs a one-ply material search. Ties keep the first move in
// generation order. ok is false when the side to move has no legal move.
func BestMove(b *gm.Board) (best gm.Move, ok bool) {
	bestScore := 0
	for i, sm := range ScoreMoves(b) {
		if i == 0 || sm.Score > bestScore {
			best, bestScore, ok = sm.Move, sm.Score, true
		}
	}
	if !ok {
		return gm.NullMove, false
	}
	return best, true
}
