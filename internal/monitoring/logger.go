package monitoring

import (
	"log"
	"os"
)

// Logf is the package-level diagnostic logger used by the CLI and the run
// store. It defaults to log.Printf but may be replaced by SetLogger.
var Logf func(format string, v ...any) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}

// SetVerbose routes Logf to stderr with a "[flatland] " prefix when verbose
// is true and mutes it otherwise. Stdout is left for the computed result.
func SetVerbose(verbose bool) {
	if !verbose {
		SetLogger(nil)
		return
	}
	SetLogger(log.New(os.Stderr, "[flatland] ", log.LstdFlags).Printf)
}
