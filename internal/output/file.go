package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/jakopako/clickr/internal/types"
)

const statusFilename = "status.json"

// FileWriter represents a writer that writes to a file
type FileWriter struct {
	*WriterConfig
	logger *slog.Logger
}

// NewFileWriter returns a new FileWriter
func NewFileWriter(wc *WriterConfig) (*FileWriter, error) {
	if wc.FileDir == "" {
		return nil, errors.New("filedir needs to be specified for the FileWriter")
	}

	if err := os.MkdirAll(wc.FileDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", wc.FileDir, err)
	}

	return &FileWriter{
		WriterConfig: wc,
		logger:       slog.With(slog.String("writer", string(FILE_WRITER_TYPE))),
	}, nil
}

func (w *FileWriter) WriteStatus(status *types.RunStatus) error {
	filepath := path.Join(w.FileDir, statusFilename)

	// item names are written as they appear on the page, so html
	// characters must not be escaped.
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(status); err != nil {
		return fmt.Errorf("error while encoding status: %w", err)
	}

	if err := os.WriteFile(filepath, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("error while writing status json to file: %w", err)
	}
	w.logger.Info(fmt.Sprintf("wrote status to file %s", filepath))
	return nil
}
