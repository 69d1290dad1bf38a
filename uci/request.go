package uci

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Command identifies a protocol request.
type Command int

const (
	CmdUCI Command = iota + 1
	CmdIsReady
	CmdNewGame
	CmdPosition
	CmdGo
	CmdPerft
	CmdDisplay
	CmdSetOption
	CmdStop
	CmdQuit
)

var commandNames = map[string]Command{
	"uci":        CmdUCI,
	"isready":    CmdIsReady,
	"ucinewgame": CmdNewGame,
	"position":   CmdPosition,
	"go":         CmdGo,
	"perft":      CmdPerft,
	"d":          CmdDisplay,
	"setoption":  CmdSetOption,
	"stop":       CmdStop,
	"quit":       CmdQuit,
}

var (
	// ErrUnknownCommand is returned for a line whose first word is not a command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMalformed is returned for a known command with bad arguments.
	ErrMalformed = errors.New("malformed command")
)

// GoParams are the search limits of a go command. The one-ply search ignores
// the clock fields but they are parsed so GUIs can send them.
type GoParams struct {
	Depth       int
	WTime       int
	BTime       int
	WInc        int
	BInc        int
	MovesToGo   int
	Nodes       int
	Mate        int
	MoveTime    int
	Infinite    bool
	Ponder      bool
	SearchMoves []string
}

// Request is one parsed protocol line.
type Request struct {
	Cmd  Command
	Line string

	// position: Startpos or FEN selects the base board; neither means the
	// moves apply to the current board.
	Startpos bool
	FEN      string
	Moves    []string

	Go    GoParams
	Depth int // perft depth

	Name  string // setoption
	Value string
}

// ParseRequest turns a protocol line into a Request.
func ParseRequest(line string) (Request, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Request{}, fmt.Errorf("%w %q", ErrUnknownCommand, line)
	}
	cmd, ok := commandNames[strings.ToLower(tokens[0])]
	if !ok {
		return Request{}, fmt.Errorf("%w %q", ErrUnknownCommand, line)
	}
	req := Request{Cmd: cmd, Line: line}
	args := tokens[1:]
	var err error
	switch cmd {
	case CmdPosition:
		err = parsePosition(&req, args)
	case CmdGo:
		err = parseGo(&req, args)
	case CmdPerft:
		req.Depth, err = parseDepth(args)
	case CmdSetOption:
		err = parseSetOption(&req, args)
	}
	if err != nil {
		return Request{}, fmt.Errorf("%w %q: %v", ErrMalformed, line, err)
	}
	return req, nil
}

func parsePosition(req *Request, args []string) error {
	if len(args) == 0 {
		return errors.New("missing startpos, fen or moves")
	}
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		req.Startpos = true
	case "fen":
		var fields []string
		for len(rest) > 0 && strings.ToLower(rest[0]) != "moves" {
			fields = append(fields, rest[0])
			rest = rest[1:]
		}
		if len(fields) == 0 {
			return errors.New("empty fen")
		}
		req.FEN = strings.Join(fields, " ")
	case "moves":
		rest = args
	default:
		return fmt.Errorf("invalid position subcommand %q", args[0])
	}
	if len(rest) == 0 {
		return nil
	}
	if strings.ToLower(rest[0]) != "moves" {
		return fmt.Errorf("unexpected %q", rest[0])
	}
	for _, m := range rest[1:] {
		req.Moves = append(req.Moves, strings.ToLower(m))
	}
	return nil
}

func parseGo(req *Request, args []string) error {
	if len(args) > 0 && strings.ToLower(args[0]) == "perft" {
		req.Cmd = CmdPerft
		var err error
		req.Depth, err = parseDepth(args[1:])
		return err
	}
	p := &req.Go
	ints := map[string]*int{
		"depth":     &p.Depth,
		"wtime":     &p.WTime,
		"btime":     &p.BTime,
		"winc":      &p.WInc,
		"binc":      &p.BInc,
		"movestogo": &p.MovesToGo,
		"nodes":     &p.Nodes,
		"mate":      &p.Mate,
		"movetime":  &p.MoveTime,
	}
	for i := 0; i < len(args); i++ {
		tok := strings.ToLower(args[i])
		switch tok {
		case "infinite":
			p.Infinite = true
			continue
		case "ponder":
			p.Ponder = true
			continue
		case "searchmoves":
			for i+1 < len(args) {
				next := strings.ToLower(args[i+1])
				if _, known := ints[next]; known || next == "infinite" || next == "ponder" {
					break
				}
				i++
				p.SearchMoves = append(p.SearchMoves, strings.ToLower(args[i]))
			}
			continue
		}
		dst, ok := ints[tok]
		if !ok {
			return fmt.Errorf("unknown go subcommand %q", args[i])
		}
		if i+1 >= len(args) {
			return fmt.Errorf("go option %s needs a value", tok)
		}
		i++
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return fmt.Errorf("could not convert %s %q", tok, args[i])
		}
		*dst = n
	}
	return nil
}

func parseDepth(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("perft needs exactly one depth")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid depth %q", args[0])
	}
	return n, nil
}

// setoption name <id> [value <x>]; names and values may contain spaces.
func parseSetOption(req *Request, args []string) error {
	if len(args) < 2 || strings.ToLower(args[0]) != "name" {
		return errors.New("expected setoption name <id> [value <x>]")
	}
	var name, value []string
	target := &name
	for _, tok := range args[1:] {
		if strings.ToLower(tok) == "value" && target == &name {
			target = &value
			continue
		}
		*target = append(*target, tok)
	}
	if len(name) == 0 {
		return errors.New("empty option name")
	}
	req.Name = strings.Join(name, " ")
	req.Value = strings.Join(value, " ")
	return nil
}
