package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/dylhunn/dragontoothmg"

	gm "chess-core/mailbox"
	"chess-core/uci"
)

func main() {
	fen := flag.String("fen", gm.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	verify := flag.Bool("verify", false, "Compare every root move count against dragontoothmg")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))

	if *depth <= 0 {
		log.Error("-depth must be > 0")
		os.Exit(2)
	}

	board, err := gm.ParseFEN(*fen)
	if err != nil {
		log.WithError(err).Error("parse fen")
		os.Exit(2)
	}
	if err := board.Validate(); err != nil {
		log.WithError(err).Error("invalid position")
		os.Exit(2)
	}

	if *verify {
		if !verifyDivide(board, *fen, *depth) {
			os.Exit(1)
		}
		return
	}

	if *divide {
		for _, line := range uci.FormatDivide(gm.Perft(board, *depth)) {
			fmt.Println(line)
		}
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.WithError(err).Error("creating cpuprofile")
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.WithError(err).Error("start cpu profile")
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += gm.PerftQuick(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.WithError(err).Error("creating memprofile")
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.WithError(err).Error("write heap profile")
			os.Exit(2)
		}
		_ = f.Close()
	}
}

// verifyDivide reports every root move whose subtree size differs from the
// dragontoothmg count, and moves only one side generates.
func verifyDivide(board *gm.Board, fen string, depth int) bool {
	got := uci.DivideCounts(gm.Perft(board, depth))
	want := dragonDivide(fen, depth)
	ok := true
	for _, m := range uci.SortedMoves(want) {
		n, found := got[m]
		switch {
		case !found:
			log.WithField("move", m).Error("missing root move")
			ok = false
		case n != want[m]:
			log.WithFields(log.Fields{"move": m, "got": n, "want": want[m]}).Error("count mismatch")
			ok = false
		}
	}
	for _, m := range uci.SortedMoves(got) {
		if _, found := want[m]; !found {
			log.WithField("move", m).Error("extra root move")
			ok = false
		}
	}
	if ok {
		log.WithFields(log.Fields{"depth": depth, "moves": len(got)}).Info("divide matches dragontoothmg")
	}
	return ok
}

func dragonDivide(fen string, depth int) map[string]uint64 {
	b := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		out[m.String()] = dragonPerft(&b, depth-1)
		undo()
	}
	return out
}

func dragonPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += dragonPerft(b, depth-1)
		undo()
	}
	return nodes
}
