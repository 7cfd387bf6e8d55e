package engine

import "fmt"

// Log collects the human-readable narration of a combat round in the order
// the events happened. Lines are shipped to clients verbatim.
type Log struct {
	lines []string
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Add(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *Log) Lines() []string {
	return l.lines
}

func (l *Log) Reset() {
	l.lines = l.lines[:0]
}
