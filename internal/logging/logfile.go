package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// logFilePrefix is the filename prefix of auto-generated log files. Cleanup
// only ever touches files carrying it.
const logFilePrefix = "satchelops-"

// LogConfig holds configuration for log output destination.
type LogConfig struct {
	Output        string // Path, "-" for stderr, "none" to disable, empty for auto-generated file
	Dir           string // Directory for auto-generated and relative log files
	RetentionDays int    // Days to retain auto-generated log files, 0 disables cleanup
}

// LogFile manages a log file lifecycle.
type LogFile struct {
	Path   string   // Full path to the log file (empty if stderr or disabled)
	file   *os.File // Opened file handle (nil if stderr or disabled)
	writer io.Writer
}

// NewLogFile resolves cfg.Output into a writer and opens the backing file
// when one is needed.
//
// Output behavior:
//   - empty: create an auto-generated file under Dir
//   - "-": use os.Stderr
//   - "none": discard all output
//   - path: use the given path, relative paths resolve under Dir
func NewLogFile(cfg *LogConfig) (*LogFile, error) {
	lf := &LogFile{}

	switch strings.ToLower(cfg.Output) {
	case "none":
		lf.writer = io.Discard
		return lf, nil

	case "-":
		lf.writer = os.Stderr
		return lf, nil

	case "":
		lf.Path = filepath.Join(cfg.Dir, GenerateLogFilename(time.Now().UTC()))

	default:
		if filepath.IsAbs(cfg.Output) {
			lf.Path = cfg.Output
		} else {
			lf.Path = filepath.Join(cfg.Dir, cfg.Output)
		}
	}

	dir := filepath.Dir(lf.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", dir, err)
	}

	f, err := os.OpenFile(lf.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", lf.Path, err)
	}

	lf.file = f
	lf.writer = f

	return lf, nil
}

// Writer returns the io.Writer for log output.
func (lf *LogFile) Writer() io.Writer {
	return lf.writer
}

// Close closes the log file if it was opened.
func (lf *LogFile) Close() error {
	if lf.file != nil {
		return lf.file.Close()
	}
	return nil
}

// GenerateLogFilename generates a log filename of the form
// satchelops-YYYYMMDD-HHMMSS-sss.log where sss is milliseconds, in UTC.
func GenerateLogFilename(t time.Time) string {
	return fmt.Sprintf("%s%s-%03d.log",
		logFilePrefix,
		t.Format("20060102-150405"),
		t.Nanosecond()/1_000_000)
}

// CleanupOldLogFiles removes auto-generated log files older than
// retentionDays from dir. Files not matching the generated naming pattern
// are left alone.
func CleanupOldLogFiles(dir string, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading log directory %q: %w", dir, err)
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			// Removal failures are not fatal; the next run retries.
			_ = os.Remove(filepath.Join(dir, name))
		}
	}

	return nil
}
