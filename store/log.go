package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MatchLog tracks which scenario runs have been archived, one key per line
// in an append-only file. Keys are usually RunKey(scenario, seed), so a
// batch can be resumed without replaying finished runs.
//
// A partial final line left by a crash is read back as a key that never
// matches and is harmless.
type MatchLog struct {
	mu   sync.RWMutex
	path string
	file *os.File
	done map[string]struct{}
}

// RunKey names one deterministic run.
func RunKey(scenario string, seed int64) string {
	return fmt.Sprintf("%s@%d", scenario, seed)
}

func OpenMatchLog(path string) (*MatchLog, error) {
	if path == "" {
		return nil, fmt.Errorf("log path is required")
	}
	done := make(map[string]struct{})

	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			key := strings.TrimSpace(scanner.Text())
			if key == "" {
				continue
			}
			done[key] = struct{}{}
		}
		_ = f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &MatchLog{path: path, file: file, done: done}, nil
}

func (l *MatchLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *MatchLog) Has(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.done[key]
	return ok
}

func (l *MatchLog) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.done)
}

// AddMany appends keys not already present and syncs once.
func (l *MatchLog) AddMany(keys ...string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return fmt.Errorf("log file is closed")
	}

	added := 0
	for _, key := range keys {
		if key == "" || strings.ContainsAny(key, "\r\n") {
			continue
		}
		if _, ok := l.done[key]; ok {
			continue
		}
		if _, err := l.file.WriteString(key + "\n"); err != nil {
			return fmt.Errorf("append log: %w", err)
		}
		l.done[key] = struct{}{}
		added++
	}
	if added == 0 {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync log: %w", err)
	}
	return nil
}
