package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// logRetention bounds how long a debug log file survives regardless of how
// few files accumulate. Debug logs can carry document titles, so they do not
// live forever.
const logRetention = 7 * 24 * time.Hour

// SetupLogFile opens a fresh timestamped log file under dir and prunes stale
// files. The caller owns the returned handle.
func SetupLogFile(dir string, maxFiles int) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	name := fmt.Sprintf("quill-%s.log", time.Now().Format("2006-01-02T15-04-05"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	if err := pruneLogs(dir, maxFiles, logRetention); err != nil {
		// Pruning is housekeeping; the new file is usable either way.
		fmt.Fprintf(os.Stderr, "warning: prune old logs: %v\n", err)
	}
	return f, nil
}

// pruneLogs removes log files past the retention window, then trims the
// remainder down to maxFiles, oldest first. The timestamp in the filename
// sorts chronologically, so lexical order is age order.
func pruneLogs(dir string, maxFiles int, maxAge time.Duration) error {
	files, err := filepath.Glob(filepath.Join(dir, "quill-*.log"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	cutoff := time.Now().Add(-maxAge)
	kept := files[:0]
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("remove %s: %w", path, err)
			}
			continue
		}
		kept = append(kept, path)
	}

	for len(kept) > maxFiles {
		if err := os.Remove(kept[0]); err != nil {
			return fmt.Errorf("remove %s: %w", kept[0], err)
		}
		kept = kept[1:]
	}
	return nil
}
