//go:build windows

// Dumps the full discovery summary of a set of bound log files.
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/alecthomas/kingpin.v2"

	perflog "github.com/blgtools/perflog_reader"
)

func main() {
	files := kingpin.Arg("files",
		"Log files to bind, in order").Required().Strings()
	kingpin.Parse()

	reader := perflog.NewPerfLogReader(*files...)
	reader.Log = perflog.Logger{Name: "dump"}
	if err := reader.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := reader.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer reader.Close()

	summary, err := reader.Discover()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	spew.Dump(summary)
	fmt.Printf("\n%d counter path(s)\n", len(summary.CounterPaths()))
}
