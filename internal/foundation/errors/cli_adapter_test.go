package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad flag").Build(), 2},
		{"config", ConfigError("bad config").Build(), 7},
		{"scan", ScanError("unreadable").Build(), 9},
		{"adapter", AdapterError("boom").Build(), 11},
		{"internal", InternalError("contract").Build(), 10},
		{"canceled", NewError(CategoryCanceled, "interrupted").Build(), 130},
		{"unclassified", errors.New("unknown"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	internal := InternalError("tree construction failed").Build()
	require.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(internal))
	require.Contains(t, verbose.FormatError(internal), "tree construction failed")

	cfg := ConfigError("sources.markup does not exist").Build()
	require.Contains(t, quiet.FormatError(cfg), "sources.markup does not exist")

	require.Equal(t, "Error: plain", quiet.FormatError(errors.New("plain")))
	require.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("missing dest").WithContext("path", "x.yaml").Build())

	require.Equal(t, 7, code)
	require.Contains(t, out.String(), "missing dest")
	require.Contains(t, logs.String(), "category=config")
	require.Contains(t, logs.String(), "path=x.yaml")

	code = -1
	adapter.HandleError(nil)
	require.Equal(t, -1, code)
}
