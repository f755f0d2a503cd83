package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// WriteReplayParquet writes one match to outPath via a tmp file and rename.
func WriteReplayParquet(outPath string, rows []TickRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadReplayParquet loads every row of a replay file. matchID filters to one
// match when set.
func ReadReplayParquet(path, matchID string) ([]TickRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}
	if v, ok := pf.Lookup("schema"); ok && v != SchemaVersion {
		return nil, fmt.Errorf("%s: unexpected schema %q", path, v)
	}

	reader := parquet.NewGenericReader[TickRow](pf)
	defer reader.Close()

	var out []TickRow
	buf := make([]TickRow, 256)
	for {
		n, err := reader.Read(buf)
		for _, r := range buf[:n] {
			if matchID == "" || r.MatchID == matchID {
				out = append(out, r)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return out, nil
}
