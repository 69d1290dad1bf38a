package main

import (
	"flag"
	"os"
	"os/signal"
	"strconv"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"chess-core/httpapi"
)

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func main() {
	defDepth, err := strconv.Atoi(envOr("CHESS_MAX_PERFT_DEPTH", strconv.Itoa(httpapi.DefaultMaxPerftDepth)))
	if err != nil {
		defDepth = httpapi.DefaultMaxPerftDepth
	}
	addr := flag.String("addr", envOr("CHESS_ADDR", ":8080"), "Listen address")
	level := flag.String("log-level", envOr("CHESS_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	maxDepth := flag.Int("max-perft-depth", defDepth, "Deepest perft a client may request")
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))
	lvl, err := log.ParseLevel(*level)
	if err != nil {
		log.WithError(err).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	srv := httpapi.New(httpapi.Config{MaxPerftDepth: *maxDepth}, log.Log)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		log.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}()

	if err := srv.Listen(*addr); err != nil {
		log.WithError(err).Fatal("listen")
	}
}
