//go:build windows

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/alecthomas/kingpin.v2"

	perflog "github.com/blgtools/perflog_reader"
)

var (
	globPattern = kingpin.Arg("glob",
		"Glob pattern selecting the log files to bind").Required().String()
	configPath = kingpin.Flag("config",
		"TOML config file").Short('c').String()
	match = kingpin.Flag("match",
		"Substring selecting counter paths to extract (repeatable)").Short('m').Strings()
	showValues = kingpin.Flag("values",
		"Extract and print counter values").Short('v').Bool()
	quiet = kingpin.Flag("quiet",
		"Suppress informational logging").Short('q').Bool()
)

// expandLogFiles resolves the glob pattern and orders the matches by
// modification time, oldest first, so the bind covers one forward timeline.
func expandLogFiles(pattern string) ([]string, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	modTimes := make(map[string]int64, len(files))
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			return nil, err
		}
		modTimes[file] = info.ModTime().UnixNano()
	}
	sort.Slice(files, func(i, j int) bool {
		return modTimes[files[i]] < modTimes[files[j]]
	})
	return files, nil
}

func run() error {
	reader := perflog.NewPerfLogReader()
	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, reader); err != nil {
			return fmt.Errorf("decoding config %q: %w", *configPath, err)
		}
	}
	reader.Log = perflog.Logger{Name: "perflog_reader", Quiet: *quiet}
	if len(*match) > 0 {
		reader.CounterMatch = *match
	}

	files, err := expandLogFiles(*globPattern)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d files.\n", len(files))
	if len(files) == 0 {
		return nil
	}
	for _, file := range files {
		fmt.Printf("  %s\n", file)
	}
	reader.Files = files

	if err := reader.Init(); err != nil {
		return err
	}
	if err := reader.Open(); err != nil {
		return err
	}
	defer reader.Close()

	summary, err := reader.Discover()
	if err != nil {
		return err
	}

	for _, machine := range summary.Machines {
		fmt.Printf("Machine: %s\n", machine.Name)
		for _, object := range machine.Objects {
			fmt.Printf("  %s\n", object.Name)
			fmt.Println("    Counters:")
			for _, counter := range object.Counters {
				fmt.Printf("      %s\n", counter)
			}
			fmt.Println("    Instances:")
			for _, instance := range object.Instances {
				fmt.Printf("      %s\n", instance)
			}
		}
	}
	fmt.Printf("Time range: %s - %s\n", summary.StartTime, summary.EndTime)

	if !*showValues {
		return nil
	}

	paths := perflog.MatchCounterPaths(summary, reader.CounterMatch)
	series, err := reader.Read(paths)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Printf("%s\n", path)
		for _, sample := range series[path] {
			fmt.Printf("  %s  %v\n", sample.Timestamp.Format("2006-01-02 15:04:05.0000000"), sample.Value)
		}
	}
	return nil
}

func main() {
	kingpin.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
