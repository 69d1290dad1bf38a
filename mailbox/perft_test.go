package mailbox_test

import (
	"testing"

	"chess-core/mailbox"
)

func perftCheck(t *testing.T, label, fen string, want []uint64) {
	t.Helper()
	b, err := mailbox.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	for i, w := range want {
		depth := i + 1
		if got := mailbox.PerftQuick(b, depth); got != w {
			t.Fatalf("%s depth%d: got %d want %d", label, depth, got, w)
		}
	}
	if b.FEN() != mailbox.MustParseFEN(fen).FEN() || b.Depth() != 0 {
		t.Fatalf("%s: perft left the board modified: %q depth %d", label, b.FEN(), b.Depth())
	}
}

func TestPerftInitialPosition(t *testing.T) {
	perftCheck(t, "Initial", mailbox.FENStartPos, []uint64{20, 400, 8902})
}

func TestPerftInitialDeep(t *testing.T) {
	b := mailbox.NewBoard()
	if got := mailbox.PerftQuick(b, 4); got != 197281 {
		t.Fatalf("Initial depth4: got %d want %d", got, 197281)
	}
	// Depth 5 can be heavier; allow skipping under -short
	if testing.Short() {
		t.Skip("skipping depth 5 perft in short mode")
	}
	if got := mailbox.PerftQuick(b, 5); got != 4865609 {
		t.Fatalf("Initial depth5: got %d want %d", got, 4865609)
	}
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -"
	perftCheck(t, "Kiwipete", fen, []uint64{48, 2039, 97862})
	if testing.Short() {
		t.Skip("skipping Kiwipete depth 4 in short mode")
	}
	if got := mailbox.PerftQuick(mailbox.MustParseFEN(fen), 4); got != 4085603 {
		t.Fatalf("Kiwipete depth4: got %d want %d", got, 4085603)
	}
}

func TestPerftPosition3(t *testing.T) {
	fen := "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -"
	perftCheck(t, "Pos3", fen, []uint64{14, 191, 2812, 43238})
	if testing.Short() {
		t.Skip("skipping Pos3 depths 5-6 in short mode")
	}
	b := mailbox.MustParseFEN(fen)
	if got := mailbox.PerftQuick(b, 5); got != 674624 {
		t.Fatalf("Pos3 d5: got %d want %d", got, 674624)
	}
	if got := mailbox.PerftQuick(b, 6); got != 11030083 {
		t.Fatalf("Pos3 d6: got %d want %d", got, 11030083)
	}
}

func TestPerftPosition4(t *testing.T) {
	perftCheck(t, "Pos4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		[]uint64{6, 264, 9467})
}

func TestPerftPosition4Mirrored(t *testing.T) {
	perftCheck(t, "Pos4m", "r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
		[]uint64{6, 264, 9467})
}

func TestPerftPosition5(t *testing.T) {
	perftCheck(t, "Pos5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		[]uint64{44, 1486, 62379})
}

func TestPerftPosition6(t *testing.T) {
	perftCheck(t, "Pos6", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		[]uint64{46, 2079, 89890})
}

func TestPerftEnPassantPosition(t *testing.T) {
	perftCheck(t, "EP", "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", []uint64{5, 19})
}

func TestPerftPromotionPosition(t *testing.T) {
	perftCheck(t, "Promotion", "1n5k/P7/8/8/8/8/8/7K w - - 0 1", []uint64{11})
}

func TestPerftDepthZero(t *testing.T) {
	b := mailbox.NewBoard()
	if got := mailbox.PerftQuick(b, 0); got != 1 {
		t.Fatalf("depth0: got %d want 1", got)
	}
	if got := mailbox.Perft(b, 0); len(got) != 0 {
		t.Fatalf("divide depth0: got %v want empty", got)
	}
}

func TestPerftDivide(t *testing.T) {
	b := mailbox.NewBoard()
	results := mailbox.Perft(b, 3)
	if len(results) != 20 {
		t.Fatalf("divide entries: got %d want 20", len(results))
	}
	if got := mailbox.Total(results); got != 8902 {
		t.Fatalf("divide total: got %d want 8902", got)
	}
	counts := make(map[string]uint64, len(results))
	for _, r := range results {
		counts[r.Move.String()] = r.Count
	}
	// per-move subtree sizes from the standard divide of the start position
	want := map[string]uint64{"e2e4": 600, "g1f3": 440, "a2a3": 380, "b1a3": 400, "d2d4": 560}
	for m, w := range want {
		if counts[m] != w {
			t.Fatalf("divide %s: got %d want %d", m, counts[m], w)
		}
	}
}
