package files

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	apperrors "salescli/internal/errors"
)

// FeedReader reads the raw sales feed and hands its lines to the pipeline.
// The legacy exporter is not consistent about encodings, so the reader
// walks a preference-ordered list until one decodes cleanly.
type FeedReader struct {
	encodings []string
	logger    *slog.Logger
}

// NewFeedReader creates a reader that tries the given encodings in order.
func NewFeedReader(encodings []string, logger *slog.Logger) *FeedReader {
	if logger == nil {
		logger = slog.Default()
	}
	if len(encodings) == 0 {
		encodings = []string{"utf-8"}
	}
	return &FeedReader{encodings: encodings, logger: logger}
}

// ReadLines returns the feed's lines. A missing file is not an error: the
// caller gets an empty slice and decides how to report it.
func (r *FeedReader) ReadLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		r.logger.Warn("feed file not found", slog.String("path", path))
		return []string{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read feed file", err).
			WithContext("path", path)
	}

	// Strip UTF-8 BOM if present
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	text, encoding, err := r.decode(raw)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("decoded feed file",
		slog.String("path", path),
		slog.String("encoding", encoding))

	return splitLines(text), nil
}

// decode tries each configured encoding in preference order.
func (r *FeedReader) decode(raw []byte) (string, string, error) {
	for _, name := range r.encodings {
		switch strings.ToLower(name) {
		case "utf-8", "utf8":
			if utf8.Valid(raw) {
				return string(raw), name, nil
			}
		case "latin-1", "iso-8859-1":
			decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
			if err == nil {
				return string(decoded), name, nil
			}
		case "windows-1252", "cp1252":
			decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
			if err == nil {
				return string(decoded), name, nil
			}
		default:
			return "", "", apperrors.NewConfigError(
				fmt.Sprintf("unsupported feed encoding %q", name), nil)
		}
	}
	return "", "", apperrors.NewParsingError("feed file could not be decoded with any configured encoding", nil)
}

// splitLines splits decoded text into lines without line terminators.
// The text is already fully in memory, so splitting directly avoids any
// per-line length limit. Handles both LF and CRLF.
func splitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
