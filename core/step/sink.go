package step

import (
	"io"

	"github.com/spf13/afero"
)

// Sink is the destination for printed values and literal text.
type Sink interface {
	io.Writer

	// Close flushes and releases the sink. Console sinks are never closed
	// underneath the caller.
	Close() error
}

// ConsoleSink wraps a console stream. Closing it is a no-op.
func ConsoleSink(w io.Writer) Sink {
	if w == nil {
		w = io.Discard
	}
	return consoleSink{w}
}

type consoleSink struct {
	io.Writer
}

func (consoleSink) Close() error { return nil }

// OpenFileSink creates (or truncates) path on fs and returns a sink that
// owns the file.
func OpenFileSink(fs afero.Fs, path string) (Sink, error) {
	fd, err := fs.Create(path)
	if err != nil {
		return nil, &Error{Kind: IO, Token: path, Err: err}
	}
	return fd, nil
}
