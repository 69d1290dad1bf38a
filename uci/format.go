package uci

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	gm "chess-core/mailbox"
)

// DivideCounts indexes a divide result by move string.
func DivideCounts(results []gm.PerftResult) map[string]uint64 {
	counts := make(map[string]uint64, len(results))
	for _, r := range results {
		counts[r.Move.String()] = r.Count
	}
	return counts
}

// SortedMoves returns the move strings of a divide in lexicographic order.
func SortedMoves(counts map[string]uint64) []string {
	keys := maps.Keys(counts)
	slices.Sort(keys)
	return keys
}

// FormatDivide renders a divide as one "move: count" line per root move in
// lexicographic order, a blank line, and the total.
func FormatDivide(results []gm.PerftResult) []string {
	counts := DivideCounts(results)
	lines := make([]string, 0, len(counts)+2)
	for _, m := range SortedMoves(counts) {
		lines = append(lines, fmt.Sprintf("%s: %d", m, counts[m]))
	}
	return append(lines, "", strconv.FormatUint(gm.Total(results), 10))
}

// FormatBoard draws the board with rank 8 on top, followed by the FEN and
// the squares of any checking pieces.
func FormatBoard(b *gm.Board) []string {
	lines := make([]string, 0, 12)
	sep := " +---+---+---+---+---+---+---+---+"
	for row := 7; row >= 0; row-- {
		lines = append(lines, sep)
		var sb strings.Builder
		sb.WriteByte(' ')
		for col := 0; col < 8; col++ {
			p := b.PieceAt(gm.NewSquare(row, col))
			c := " "
			if p != gm.NoPiece {
				c = p.String()
			}
			sb.WriteString("| " + c + " ")
		}
		sb.WriteString("| " + strconv.Itoa(row+1))
		lines = append(lines, sb.String())
	}
	lines = append(lines, sep, "   a   b   c   d   e   f   g   h", "")
	lines = append(lines, "Fen: "+b.FEN())
	checkers := make([]string, 0, 2)
	for _, sq := range b.Checkers() {
		checkers = append(checkers, sq.String())
	}
	return append(lines, "Checkers: "+strings.Join(checkers, " "))
}
