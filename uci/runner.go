package uci

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/apex/log"
)

// Runner drives a Session over a line-based text stream. The session runs on
// its own goroutine and talks to the I/O loop only through the request and
// response channels. Requests are handled one at a time: reading resumes once
// the current response has been written.
type Runner struct {
	session   *Session
	requests  chan Request
	responses chan []string
	log       log.Interface
}

// NewRunner wraps a session.
func NewRunner(s *Session) *Runner {
	return &Runner{
		session:   s,
		requests:  make(chan Request),
		responses: make(chan []string),
		log:       s.Logger(),
	}
}

// Session returns the session driven by the runner.
func (r *Runner) Session() *Session { return r.session }

// Run reads commands from in until "quit", end of input or cancellation of
// ctx, and writes responses to out. A request already handed to the session
// completes before Run returns; cancellation is observed between requests.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.engineLoop()
	}()
	defer func() {
		close(r.requests)
		<-done
	}()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- ctx.Err()
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	w := bufio.NewWriter(out)
	for {
		var line string
		select {
		case <-ctx.Done():
			r.log.Debug("context cancelled")
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			line = l
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		req, err := ParseRequest(line)
		if err != nil {
			r.log.WithError(err).Debug("parse failed")
			if err := writeLines(w, []string{ErrorResponse(line, err)}); err != nil {
				return err
			}
			continue
		}

		r.requests <- req
		if err := writeLines(w, <-r.responses); err != nil {
			return err
		}
		if req.Cmd == CmdQuit {
			r.log.Debug("quit")
			return nil
		}
	}
}

// engineLoop handles requests one at a time until the request channel closes.
func (r *Runner) engineLoop() {
	for req := range r.requests {
		r.responses <- r.session.Handle(req)
	}
}

func writeLines(w *bufio.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := w.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
