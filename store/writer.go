package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// ReplayWriter streams tick rows from many matches into one parquet file.
// The file lives under outDir/tmp until Finalize moves it into outDir, so
// readers never see a partial file. It is safe for concurrent use.
type ReplayWriter struct {
	mu sync.Mutex

	outDir  string
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[TickRow]

	matches int
	rows    int
}

func NewReplayWriter(outDir string) (*ReplayWriter, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("replay_%d.parquet", time.Now().UnixNano())
	tmpPath := filepath.Join(tmpDir, name)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[TickRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", SchemaVersion)

	return &ReplayWriter{
		outDir:  absOut,
		tmpPath: tmpPath,
		outPath: filepath.Join(absOut, name),
		file:    f,
		writer:  w,
	}, nil
}

func (w *ReplayWriter) OutPath() string { return w.outPath }

// WriteMatch appends every row of one match.
func (w *ReplayWriter) WriteMatch(rows []TickRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writer == nil {
		return fmt.Errorf("replay writer is closed")
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := w.writer.Write(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	w.rows += len(rows)
	w.matches++
	return nil
}

// Finalize closes the file and moves it into outDir. With no rows written the
// tmp file is removed and outPath is empty.
func (w *ReplayWriter) Finalize() (outPath string, rows, matches int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writer == nil && w.file == nil {
		return "", 0, 0, nil
	}

	closeErr := w.writer.Close()
	w.writer = nil
	_ = w.file.Sync()
	fileErr := w.file.Close()
	w.file = nil
	if closeErr != nil {
		return "", 0, 0, fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return "", 0, 0, fmt.Errorf("close parquet file: %w", fileErr)
	}

	if w.rows == 0 {
		_ = os.Remove(w.tmpPath)
		return "", 0, 0, nil
	}
	if err := os.Rename(w.tmpPath, w.outPath); err != nil {
		return "", 0, 0, fmt.Errorf("rename parquet: %w", err)
	}
	return w.outPath, w.rows, w.matches, nil
}
