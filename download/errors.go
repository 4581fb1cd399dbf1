package download

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

var (
	// ErrNoOutput reports that extraction finished without leaving a file.
	ErrNoOutput = errors.New("extraction produced no file")
	// ErrTooLarge reports that the produced file exceeds the size ceiling.
	ErrTooLarge = errors.New("audio file too large")
)

// Stages at which the extraction tool can fail.
const (
	StageProbe    = "probe"
	StageDownload = "download"
)

// ExtractionError wraps a failure of the extraction tool.
type ExtractionError struct {
	Stage string
	URL   string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// SizeError carries the size of a rejected file.
type SizeError struct {
	Size  int64
	Limit int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: %s exceeds %s", ErrTooLarge, humanize.IBytes(uint64(e.Size)), humanize.IBytes(uint64(e.Limit)))
}

func (e *SizeError) Is(target error) bool {
	return target == ErrTooLarge
}
