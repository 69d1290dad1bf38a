package mailbox

// PerftResult is the subtree size below one root move.
type PerftResult struct {
	Move  Move
	Count uint64
}

// PerftQuick counts the leaf nodes of the legal move tree to the given depth.
// Depth 0 counts the position itself; depth 1 is answered from the move list
// without descending.
func PerftQuick(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(b, depth, &pc)
}

// perftCtx keeps one move buffer per remaining depth so the recursion does not
// allocate after the first visit to each ply.
type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, 256)
	}
	return buf[:0]
}

func perftRec(b *Board, depth int, pc *perftCtx) uint64 {
	moves := b.LegalMovesInto(pc.bufFor(depth))
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		if err := b.Move(m); err != nil {
			continue
		}
		nodes += perftRec(b, depth-1, pc)
		b.Undo()
	}
	return nodes
}

// Perft is the divide variant: it reports the subtree size below each legal
// root move, in generation order. Depth 0 or less yields no entries.
func Perft(b *Board, depth int) []PerftResult {
	if depth <= 0 {
		return []PerftResult{}
	}
	moves := b.LegalMoves()
	results := make([]PerftResult, 0, len(moves))
	for _, m := range moves {
		if err := b.Move(m); err != nil {
			continue
		}
		results = append(results, PerftResult{Move: m, Count: PerftQuick(b, depth-1)})
		b.Undo()
	}
	return results
}

// Total sums the counts of a divide result.
func Total(results []PerftResult) uint64 {
	var total uint64
	for _, r := range results {
		total += r.Count
	}
	return total
}
