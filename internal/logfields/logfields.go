package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyTopic      = "topic"
	KeyPath       = "path"
	KeyInput      = "input"
	KeyOutput     = "output"
	KeyAssetDir   = "asset_dir"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr    { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr    { return slog.String(KeyStage, name) }
func Topic(title string) slog.Attr   { return slog.String(KeyTopic, title) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Input(p string) slog.Attr       { return slog.String(KeyInput, p) }
func Output(p string) slog.Attr      { return slog.String(KeyOutput, p) }
func AssetDir(name string) slog.Attr { return slog.String(KeyAssetDir, name) }
func Count(n int) slog.Attr          { return slog.Int(KeyCount, n) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
