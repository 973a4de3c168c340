// Package loader reads a dump file from disk, decompressing it when its
// extension says so, and parses it into a core.Database.
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/dumpnav/pkg/core"
	"github.com/leapstack-labs/dumpnav/pkg/parser"
)

// Read returns the full decompressed text of the dump at path.
func Read(path string) (string, error) {
	r, cleanup, err := Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = cleanup() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read dump: %w", err)
	}
	return string(data), nil
}

// Load reads and parses the dump at path. Errors are prefixed with the path;
// parse errors keep their type for errors.As.
func Load(ctx context.Context, path string, logger *slog.Logger) (*core.Database, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	text, err := Read(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !utf8.ValidString(text) {
		logger.Warn("dump is not valid UTF-8; invalid bytes are shown as U+FFFD", "path", path)
		text = strings.ToValidUTF8(text, "\uFFFD")
	}
	logger.Debug("read dump", "path", path, "bytes", len(text), "compression", DetectCompression(path).String())

	db, err := parser.Parse(text, parser.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}
