package mwlmap

import (
	"bytes"
	"fmt"
)

// safeBuffer wraps bytes.Buffer with explicit lifecycle management: once
// Commit is called the contents are considered final and further writes
// panic, catching a print method that accidentally fires twice.
type safeBuffer struct {
	buf       bytes.Buffer
	committed bool
	line      int // printer's output line counter, tracked alongside bytes
}

func newSafeBuffer() *safeBuffer {
	return &safeBuffer{line: 1}
}

// Write implements io.Writer, advancing the output line counter for every
// newline written so Print can report line-number parity with Scan.
func (sb *safeBuffer) Write(p []byte) (int, error) {
	if sb.committed {
		panic("safeBuffer: write to committed buffer")
	}
	sb.line += bytes.Count(p, []byte("\n"))
	return sb.buf.Write(p)
}

func (sb *safeBuffer) writeString(s string) {
	if _, err := sb.Write([]byte(s)); err != nil {
		panic(fmt.Sprintf("safeBuffer: %v", err))
	}
}

// Bytes returns the buffer contents. Safe to call after Commit.
func (sb *safeBuffer) Bytes() []byte {
	return sb.buf.Bytes()
}

// Commit marks the buffer as complete; no more writes are allowed.
func (sb *safeBuffer) Commit() {
	sb.committed = true
}
