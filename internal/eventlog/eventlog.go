// Package eventlog saves confirmed QRS events to a CSV log, optionally
// rotated into daily-named files. It is a direct adaptation of the
// teacher's log.go (log_init/log_write, g_daily_names, a hand-built
// YYYYMMDD file name), generalized to use github.com/lestrrat-go/strftime
// for the file-name pattern instead of formatting a fixed layout string —
// the teacher repo already lists strftime as a dependency pack-wide even
// though log.go predates using it.
package eventlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"
)

// DefaultPattern matches the teacher's daily-rotation convention
// (YYYY-MM-DD), expressed as a strftime pattern instead of a fixed Go
// time-layout string.
const DefaultPattern = "cardiomon-%Y-%m-%d.csv"

var header = []string{"sample_index", "utime", "isotime", "bpm", "rr_average", "evaluation"}

// Event is one confirmed QRS detection, written as a single CSV row.
type Event struct {
	SampleIndex int
	Time        time.Time
	BPM         float64
	RRAverage   float64
	Evaluation  int
}

// Logger appends Events to a daily-rotating CSV file under dir, opening
// for append and writing a header only the first time a given day's file
// is created — same "already_there" check as the teacher's log_write.
type Logger struct {
	dir     string
	pattern *strftime.Strftime

	openName string
	file     *os.File
	writer   *csv.Writer
}

// Open returns a Logger rooted at dir using the given strftime pattern.
// An empty dir disables logging entirely: Write becomes a no-op, matching
// the teacher's "empty string disables feature" convention.
func Open(dir, pattern string) (*Logger, error) {
	if dir == "" {
		return &Logger{}, nil
	}
	if pattern == "" {
		pattern = DefaultPattern
	}

	f, err := strftime.New(pattern)
	if err != nil {
		return nil, fmt.Errorf("eventlog: compiling pattern %q: %w", pattern, err)
	}

	if stat, err := os.Stat(dir); err != nil {
		if mkErr := os.Mkdir(dir, 0o755); mkErr != nil {
			return nil, fmt.Errorf("eventlog: creating log directory %s: %w", dir, mkErr)
		}
	} else if !stat.IsDir() {
		return nil, fmt.Errorf("eventlog: log path %s is not a directory", dir)
	}

	return &Logger{dir: dir, pattern: f}, nil
}

// Write appends one Event, rotating to a new file if the pattern's
// expansion for ev.Time differs from the currently open file.
func (l *Logger) Write(ev Event) error {
	if l.dir == "" {
		return nil
	}

	name := l.pattern.FormatString(ev.Time)
	if l.file != nil && name != l.openName {
		l.Close()
	}

	if l.file == nil {
		full := filepath.Join(l.dir, name)
		_, statErr := os.Stat(full)
		alreadyThere := statErr == nil

		f, err := os.OpenFile(full, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return fmt.Errorf("eventlog: opening %s: %w", full, err)
		}
		l.file = f
		l.openName = name
		l.writer = csv.NewWriter(f)

		if !alreadyThere {
			if err := l.writer.Write(header); err != nil {
				return fmt.Errorf("eventlog: writing header: %w", err)
			}
		}
	}

	row := []string{
		fmt.Sprintf("%d", ev.SampleIndex),
		fmt.Sprintf("%d", ev.Time.Unix()),
		ev.Time.UTC().Format(time.RFC3339),
		fmt.Sprintf("%.1f", ev.BPM),
		fmt.Sprintf("%.2f", ev.RRAverage),
		fmt.Sprintf("%d", ev.Evaluation),
	}
	if err := l.writer.Write(row); err != nil {
		return fmt.Errorf("eventlog: writing row: %w", err)
	}
	l.writer.Flush()
	return l.writer.Error()
}

// Close flushes and closes the currently open file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	l.writer.Flush()
	err := l.file.Close()
	l.file = nil
	l.writer = nil
	l.openName = ""
	return err
}
