package perflog_reader

import (
	"fmt"
	"strings"
	"time"
)

// PerfLogSummary describes everything a bound set of log files contains:
// the machine/object/counter/instance catalog and the covered time range.
// Immutable once built.
type PerfLogSummary struct {
	Machines  []MachineSummary
	StartTime time.Time
	EndTime   time.Time
	// SampleCount as reported by the time-range call.
	SampleCount uint32
}

// MachineSummary holds the objects recorded for one machine.
type MachineSummary struct {
	Name    string
	Objects []ObjectSummary
}

// ObjectSummary holds the counter types and instances recorded for one
// performance object. Instances is empty for singleton objects.
type ObjectSummary struct {
	Name      string
	Counters  []string
	Instances []string
}

// buildPerfLogSummary walks the bound source machine-major: for each machine
// its objects, for each object its counters and instances. Objects the log
// reports as unknown are dropped entirely; any other failure aborts the walk.
func buildPerfLogSummary(query logQuery) (*PerfLogSummary, error) {
	machineNames, err := query.enumMachines()
	if err != nil {
		return nil, fmt.Errorf("enumerating machines: %w", err)
	}

	machines := make([]MachineSummary, 0, len(machineNames))
	for _, machine := range machineNames {
		objectNames, err := query.enumObjects(machine)
		if err != nil {
			return nil, fmt.Errorf("enumerating objects of %q: %w", machine, err)
		}

		objects := make([]ObjectSummary, 0, len(objectNames))
		for _, object := range objectNames {
			counters, instances, err := query.enumObjectItems(machine, object)
			if err != nil {
				if isNoSuchObject(err) {
					// Log files can carry invalid object names. Skip them.
					continue
				}
				return nil, fmt.Errorf("enumerating items of %q on %q: %w", object, machine, err)
			}
			objects = append(objects, ObjectSummary{
				Name:      object,
				Counters:  counters,
				Instances: instances,
			})
		}

		machines = append(machines, MachineSummary{Name: machine, Objects: objects})
	}

	span, err := query.timeRange()
	if err != nil {
		return nil, fmt.Errorf("resolving time range: %w", err)
	}

	return &PerfLogSummary{
		Machines:    machines,
		StartTime:   span.start,
		EndTime:     span.end,
		SampleCount: span.sampleCount,
	}, nil
}

// CounterPaths returns every fully-qualified counter path the summary can
// address, machine-major, then object, then instance, then counter. Singleton
// objects yield instance-less paths.
func (s *PerfLogSummary) CounterPaths() []string {
	var paths []string
	for _, machine := range s.Machines {
		// Enumerated machine names carry a leading \\ which formatPath
		// adds back.
		name := strings.TrimPrefix(machine.Name, `\\`)
		for _, object := range machine.Objects {
			if len(object.Instances) == 0 {
				for _, counter := range object.Counters {
					paths = append(paths, formatPath(name, object.Name, "", counter))
				}
				continue
			}
			for _, instance := range object.Instances {
				for _, counter := range object.Counters {
					paths = append(paths, formatPath(name, object.Name, instance, counter))
				}
			}
		}
	}
	return paths
}

// MatchCounterPaths returns the summary's counter paths that contain any of
// the given substrings, case-insensitively. With no substrings every path
// matches.
func MatchCounterPaths(summary *PerfLogSummary, substrings []string) []string {
	paths := summary.CounterPaths()
	if len(substrings) == 0 {
		return paths
	}
	matched := make([]string, 0, len(paths))
	for _, path := range paths {
		lower := strings.ToLower(path)
		for _, substr := range substrings {
			if strings.Contains(lower, strings.ToLower(substr)) {
				matched = append(matched, path)
				break
			}
		}
	}
	return matched
}
