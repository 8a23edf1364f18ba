package main

import (
	"log"
	"os"
)

// setupLogging keeps the standard logger on stderr with a tool prefix
func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetPrefix("blob-snapshot: ")
	log.SetFlags(0)
}
