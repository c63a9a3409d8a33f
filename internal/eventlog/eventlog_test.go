package eventlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DisabledWhenDirEmpty(t *testing.T) {
	l, err := Open("", "")
	require.NoError(t, err)
	require.NoError(t, l.Write(Event{SampleIndex: 1, Time: time.Now()}))
}

func Test_WritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir, "evt-%Y%m%d.csv")
	require.NoError(t, err)

	when := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)
	require.NoError(t, l.Write(Event{SampleIndex: 1, Time: when, BPM: 72, RRAverage: 166.7, Evaluation: 1}))
	require.NoError(t, l.Write(Event{SampleIndex: 2, Time: when.Add(time.Second), BPM: 71, RRAverage: 168, Evaluation: 1}))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, "evt-20260731.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "sample_index,utime,isotime,bpm,rr_average,evaluation")
	assert.Equal(t, 3, countLines(string(data)))
}

func countLines(s string) int {
	n := 0
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}
