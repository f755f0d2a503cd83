package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// PrettyHandler writes every record as an indented JSON object. Engine logs
// carry many small attributes per record, which reads better this way when
// following a single match by eye.
type PrettyHandler struct {
	w         io.Writer
	mu        *sync.Mutex
	level     slog.Leveler
	addSource bool

	attrs  []slog.Attr
	groups []string
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{w: w, mu: &sync.Mutex{}, level: slog.LevelInfo}
	if opts != nil {
		if opts.Level != nil {
			h.level = opts.Level
		}
		h.addSource = opts.AddSource
	}
	return h
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	record := map[string]any{
		"time":  when.Format(time.RFC3339Nano),
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	if h.addSource {
		record["source"] = source(r.PC)
	}

	dst := record
	for _, a := range h.attrs {
		put(dst, a)
	}
	for _, g := range h.groups {
		child, ok := dst[g].(map[string]any)
		if !ok {
			child = map[string]any{}
			dst[g] = child
		}
		dst = child
	}
	r.Attrs(func(a slog.Attr) bool {
		put(dst, a)
		return true
	})

	b, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		b = []byte(`{"level":` + strconv.Quote(r.Level.String()) + `,"msg":` + strconv.Quote(r.Message) + `}`)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(append(b, '\n'))
	return err
}

// WithAttrs attaches attrs at the top level, ahead of any group.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func put(dst map[string]any, a slog.Attr) {
	if a.Key == "" {
		return
	}
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		child := map[string]any{}
		for _, ga := range v.Group() {
			put(child, ga)
		}
		dst[a.Key] = child
		return
	}
	dst[a.Key] = plain(v)
}

func plain(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	default:
		return v.String()
	}
}

func source(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	f, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if f.File == "" {
		return ""
	}
	file := f.File
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		file = file[i+1:]
	}
	return file + ":" + strconv.Itoa(f.Line)
}
