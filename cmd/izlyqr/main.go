// Package main is the entry point of the izlyqr command line tool.
package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"os"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})

	if err := NewRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("izlyqr failed")
	}
}
