package perflog_reader

import (
	"time"
)

// fakeSample is one step of a counter's recorded timeline. A non-nil err
// stands in for a step where the counter has no usable sample.
type fakeSample struct {
	value interface{}
	err   error
}

type fakeObjectItems struct {
	counters  []string
	instances []string
	// missing makes item enumeration report PDH_CSTATUS_NO_OBJECT.
	missing bool
}

// fakeLogQuery is an in-memory logQuery used as a log fixture in tests.
type fakeLogQuery struct {
	machines []string
	objects  map[string][]string        // machine name -> object names
	items    map[string]fakeObjectItems // machine name + "|" + object name
	span     logTimeSpan
	steps    []time.Time
	values   map[string][]fakeSample // counter path -> one sample per step
	addErrs  map[string]uint32       // counter path -> registration status

	boundFiles  []string
	closed      bool
	queryOpen   bool
	queryCloses int
	cursor      int
	handles     map[pdhCounterHandle]string
	nextHandle  pdhCounterHandle
}

type fakeLogQueryCreator struct {
	query *fakeLogQuery
}

func (c *fakeLogQueryCreator) newLogQuery(uint32) logQuery {
	return c.query
}

func (f *fakeLogQuery) bind(files []string) error {
	if len(files) == 0 {
		return errNoLogFiles
	}
	f.boundFiles = files
	return nil
}

func (f *fakeLogQuery) close() error {
	if f.boundFiles == nil {
		return errUnboundLogSource
	}
	f.closed = true
	return nil
}

func (f *fakeLogQuery) enumMachines() ([]string, error) {
	return f.machines, nil
}

func (f *fakeLogQuery) enumObjects(machine string) ([]string, error) {
	objects, ok := f.objects[machine]
	if !ok {
		return nil, newPdhError(pdhCstatusNoMachine)
	}
	return objects, nil
}

func (f *fakeLogQuery) enumObjectItems(machine, object string) ([]string, []string, error) {
	items, ok := f.items[machine+"|"+object]
	if !ok || items.missing {
		return nil, nil, newPdhError(pdhCstatusNoObject)
	}
	return items.counters, items.instances, nil
}

func (f *fakeLogQuery) timeRange() (logTimeSpan, error) {
	return f.span, nil
}

func (f *fakeLogQuery) openQuery() error {
	f.queryOpen = true
	f.cursor = 0
	f.handles = make(map[pdhCounterHandle]string)
	return nil
}

func (f *fakeLogQuery) closeQuery() error {
	if !f.queryOpen {
		return errUninitializedQuery
	}
	f.queryOpen = false
	f.queryCloses++
	return nil
}

func (f *fakeLogQuery) addCounterToQuery(counterPath string) (pdhCounterHandle, error) {
	if !f.queryOpen {
		return 0, errUninitializedQuery
	}
	if status, ok := f.addErrs[counterPath]; ok {
		return 0, newPdhError(status)
	}
	if _, ok := f.values[counterPath]; !ok {
		return 0, newPdhError(pdhCstatusBadCountername)
	}
	f.nextHandle++
	f.handles[f.nextHandle] = counterPath
	return f.nextHandle, nil
}

func (f *fakeLogQuery) collectWithTime() (time.Time, error) {
	if !f.queryOpen {
		return time.Time{}, errUninitializedQuery
	}
	if f.cursor >= len(f.steps) {
		return time.Time{}, newPdhError(pdhNoMoreData)
	}
	stamp := f.steps[f.cursor]
	f.cursor++
	return stamp, nil
}

func (f *fakeLogQuery) formattedValue(hCounter pdhCounterHandle, _ valueFormat) (interface{}, error) {
	if !f.queryOpen {
		return nil, errUninitializedQuery
	}
	path, ok := f.handles[hCounter]
	if !ok {
		return nil, newPdhError(pdhInvalidHandle)
	}
	if f.cursor == 0 {
		return nil, newPdhError(pdhNoData)
	}
	sample := f.values[path][f.cursor-1]
	if sample.err != nil {
		return nil, sample.err
	}
	return sample.value, nil
}

// newTwoMachineFixture builds the fixture used across the catalog and reader
// tests: two machines, one invalid object on the second, three recorded
// steps, and full timelines for every addressable counter path.
func newTwoMachineFixture() *fakeLogQuery {
	start := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	steps := []time.Time{
		start,
		start.Add(15 * time.Second),
		start.Add(30 * time.Second),
	}

	flat := func(v0, v1, v2 int64) []fakeSample {
		return []fakeSample{{value: v0}, {value: v1}, {value: v2}}
	}
	values := make(map[string][]fakeSample)
	values[`\\HOST-A\Processor(0)\% Processor Time`] = flat(12, 47, 30)
	values[`\\HOST-A\Processor(0)\Interrupts/sec`] = flat(1100, 1250, 1190)
	values[`\\HOST-A\Processor(_Total)\% Processor Time`] = flat(25, 61, 44)
	values[`\\HOST-A\Processor(_Total)\Interrupts/sec`] = flat(2200, 2500, 2380)
	values[`\\HOST-A\Memory\Available Bytes`] = flat(1<<30, 1<<30+512, 1<<30-256)
	values[`\\HOST-B\System\Threads`] = flat(812, 815, 811)

	return &fakeLogQuery{
		machines: []string{`\\HOST-A`, `\\HOST-B`},
		objects: map[string][]string{
			`\\HOST-A`: {"Processor", "Memory"},
			`\\HOST-B`: {"System", "Phantom"},
		},
		items: map[string]fakeObjectItems{
			`\\HOST-A|Processor`: {
				counters:  []string{"% Processor Time", "Interrupts/sec"},
				instances: []string{"0", "_Total"},
			},
			`\\HOST-A|Memory`: {
				counters: []string{"Available Bytes"},
			},
			`\\HOST-B|System`: {
				counters: []string{"Threads"},
			},
			`\\HOST-B|Phantom`: {missing: true},
		},
		span: logTimeSpan{
			start:       steps[0],
			end:         steps[2],
			sampleCount: 3,
		},
		steps:  steps,
		values: values,
	}
}

// newFixtureReader wires the fixture behind an opened PerfLogReader.
func newFixtureReader(fake *fakeLogQuery) (*PerfLogReader, error) {
	reader := NewPerfLogReader("a_000001.blg", "a_000002.blg")
	reader.Log = Logger{Name: "test", Quiet: true}
	reader.queryCreator = &fakeLogQueryCreator{query: fake}
	if err := reader.Init(); err != nil {
		return nil, err
	}
	if err := reader.Open(); err != nil {
		return nil, err
	}
	return reader, nil
}
