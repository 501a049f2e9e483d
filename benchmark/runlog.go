package benchmark

import (
	"fmt"
	"io"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultRunLogPath is where the batch command appends its run log unless told otherwise.
const DefaultRunLogPath = "testLog.log"

// RunLog is an append-only text log with one header line per batch and one line per run:
//
//	New Test
//	1/3 - Nodes: 412
//	2/3 - Nodes: 97
type RunLog struct {
	mu sync.Mutex
	w  io.Writer
}

// NewRunLog appends to the file at path, creating it if needed. The file is rotated once it
// grows past 10MB.
func NewRunLog(path string) *RunLog {
	return NewRunLogWriter(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
	})
}

// NewRunLogWriter writes the run log to w.
func NewRunLogWriter(w io.Writer) *RunLog {
	return &RunLog{w: w}
}

// StartTest marks the beginning of a batch.
func (l *RunLog) StartTest() error {
	return l.write("New Test\n")
}

// RecordRun records that run i of n created nodes tree nodes.
func (l *RunLog) RecordRun(i, n, nodes int) error {
	return l.write(fmt.Sprintf("%d/%d - Nodes: %d\n", i, n, nodes))
}

func (l *RunLog) write(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := io.WriteString(l.w, line)
	return err
}

// Close closes the underlying writer if it can be closed.
func (l *RunLog) Close() error {
	if c, ok := l.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
