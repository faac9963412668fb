package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// FileSpool writes envelopes into Dir for a downstream renderer to pick up.
type FileSpool struct {
	Dir    string
	Logger *slog.Logger
}

// Export writes <name>.<format>.msgpack atomically and returns its path.
func (s FileSpool) Export(ctx context.Context, env Envelope) (string, error) {
	if s.Dir == "" {
		return "", fmt.Errorf("export dir is not set")
	}
	data, err := Encode(env)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("%s.%s.msgpack", FileStem(env.Report.Name), env.Format))
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}
	if s.Logger != nil {
		s.Logger.Info("export spooled",
			slog.String("report", env.Report.Name),
			slog.String("format", string(env.Format)),
			slog.String("path", path),
			slog.Int("bytes", len(data)),
		)
	}
	return path, nil
}

// FileStem turns a report name into a safe file name stem.
func FileStem(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash && b.Len() > 0 {
			b.WriteByte('-')
			lastDash = true
		}
	}
	stem := strings.TrimRight(b.String(), "-")
	if stem == "" {
		return "report"
	}
	return stem
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "export-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp export: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move export into place: %w", err)
	}
	return nil
}
