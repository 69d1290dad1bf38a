package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

// suiteEntry is one perft throughput run of the standard positions.
type suiteEntry struct {
	label string
	fen   string
	depth int
	deep  bool
}

var suite = []suiteEntry{
	{"Initial", "", 3, false},
	{"Initial", "", 4, false},
	{"Initial", "", 5, true},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, false},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4, true},
	{"Pos3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 5, false},
	{"Pos4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4, false},
	{"Pos5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 4, false},
}

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	log.WithError(err).WithField("cmd", name).Error("run failed")
	return 1
}

func main() {
	short := flag.Bool("short", false, "Skip the deep perft runs")
	verify := flag.Bool("verify", false, "Cross-check each suite position against dragontoothmg first")
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))

	// Usage: go run ./cmd/benchrun
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	if code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s"); code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	failed := 0
	for _, e := range suite {
		if e.deep && *short {
			continue
		}
		var fenArgs []string
		if e.fen != "" {
			fenArgs = []string{"-fen", e.fen}
		}
		if *verify {
			vargs := append([]string{"run", "./cmd/perft", "-verify", "-depth", "3"}, fenArgs...)
			if run("go", vargs...) != 0 {
				failed++
				continue
			}
		}
		args := append([]string{"run", "./cmd/perft", "-depth", strconv.Itoa(e.depth), "-label", e.label}, fenArgs...)
		if run("go", args...) != 0 {
			failed++
		}
	}
	if failed > 0 {
		log.WithField("failed", failed).Error("perft suite")
		os.Exit(1)
	}
}
