package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLoggerTagsAndPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf)

	l.OK("compiled %s", "a.f90")
	l.Warn("stale entry for %s", "b.f90")
	l.Error("link failed")

	out := buf.String()
	assert.True(t, strings.Contains(out, "[OK] compiled a.f90"))
	assert.True(t, strings.Contains(out, "[WARN] stale entry for b.f90"))
	assert.True(t, strings.Contains(out, "[ERROR] link failed"))
	// A bytes.Buffer is not a terminal, so no color escapes.
	assert.False(t, strings.Contains(out, "\x1b["))
}

func TestConsoleLoggerConcurrentSafe(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			l.Info("job %d", n)
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	assert.Equal(t, 10, strings.Count(buf.String(), "[INFO]"))
}
