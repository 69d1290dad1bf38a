package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"chess-core/uci"
)

func main() {
	verbose := flag.Bool("v", false, "Log debug output to stderr")
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))
	log.SetLevel(log.WarnLevel)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := uci.NewSession(log.Log)
	log.WithField("session", session.ID).Debug("ready")
	if err := uci.NewRunner(session).Run(ctx, os.Stdin, os.Stdout); err != nil && err != context.Canceled {
		log.WithError(err).Error("uci loop")
		os.Exit(1)
	}
}
