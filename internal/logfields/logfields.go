package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared by all pipeline stages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyAdapter    = "adapter"
	KeyFile       = "file"
	KeySourceType = "source_type"
	KeySection    = "section"
	KeyLine       = "line"
	KeyCount      = "count"
	KeyPath       = "path"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func BuildID(id string) slog.Attr   { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr   { return slog.String(KeyStage, name) }
func Adapter(name string) slog.Attr { return slog.String(KeyAdapter, name) }
func File(path string) slog.Attr    { return slog.String(KeyFile, path) }
func SourceType(t string) slog.Attr { return slog.String(KeySourceType, t) }
func Section(s string) slog.Attr    { return slog.String(KeySection, s) }
func Line(n int) slog.Attr          { return slog.Int(KeyLine, n) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

// Error renders err as a string attribute; nil yields an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
