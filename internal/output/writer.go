// Package output provides the interface and configuration and implementation for writers
package output

import (
	"fmt"

	"github.com/jakopako/clickr/internal/types"
)

// Writer defines the interface for all writers that are responsible
// for writing the status of a finished run to a specific output.
type Writer interface {
	WriteStatus(status *types.RunStatus) error
}

// WriterConfig defines the necessary paramters to make a new writer
// which is responsible for writing the run status to a specific output
// eg. stdout.
type WriterConfig struct {
	Type    WriterType `yaml:"type" env:"CLICKR_WRITER_TYPE" env-default:"stdout"`
	FileDir string     `yaml:"filedir" env:"CLICKR_WRITER_FILEDIR"`
}

// WriterType encapsulates the type of a writer
// See below constants for possible types
type WriterType string

const (
	STDOUT_WRITER_TYPE WriterType = "stdout"
	FILE_WRITER_TYPE   WriterType = "file"
)

// NewWriter returns a new writer depending on the writer type
func NewWriter(wc *WriterConfig) (Writer, error) {
	switch wc.Type {
	case STDOUT_WRITER_TYPE, "":
		return NewStdoutWriter(wc), nil
	case FILE_WRITER_TYPE:
		return NewFileWriter(wc)
	default:
		return nil, fmt.Errorf("writer of type '%s' not implemented", wc.Type)
	}
}
