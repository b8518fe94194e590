// Package ttylog records and replays terminal sessions in the asciicast v2
// format.
package ttylog

import (
	"io"
	"sync"
	"time"
)

// Stream identifies which side of the terminal an event came from.
type Stream int

const (
	StreamInput Stream = iota
	StreamOutput
)

// Event is a chunk of terminal IO, Offset is measured from the start of the
// recording.
type Event struct {
	Offset time.Duration
	Stream Stream
	Data   []byte
}

// EventSink receives recorded events.
type EventSink interface {
	WriteEvent(stream Stream, data []byte) error
}

// EventSource adapts recording readers.
type EventSource interface {
	// Next fetches the next event. It returns io.EOF if the source has no more
	// events.
	Next() (*Event, error)
}

// Recorder tees a terminal's input and output to a sink. Recording errors
// don't interrupt the terminal, the first one is kept for Err.
type Recorder struct {
	mutex sync.Mutex
	sink  EventSink
	err   error
}

// NewRecorder creates a recorder forwarding to sink.
func NewRecorder(sink EventSink) *Recorder {
	return &Recorder{sink: sink}
}

func (r *Recorder) record(stream Stream, data []byte) {
	if len(data) == 0 {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	if err := r.sink.WriteEvent(stream, data); err != nil && r.err == nil {
		r.err = err
	}
}

// Err returns the first error encountered while recording.
func (r *Recorder) Err() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.err
}

// Input wraps a terminal's input stream.
func (r *Recorder) Input(in io.Reader) io.Reader {
	return &recordingReader{r: r, wrapped: in}
}

// Output wraps a terminal's output stream.
func (r *Recorder) Output(out io.Writer) io.Writer {
	return &recordingWriter{r: r, wrapped: out}
}

type recordingReader struct {
	r       *Recorder
	wrapped io.Reader
}

var _ io.Reader = (*recordingReader)(nil)

func (rr *recordingReader) Read(p []byte) (int, error) {
	n, err := rr.wrapped.Read(p)
	rr.r.record(StreamInput, p[:n])
	return n, err
}

type recordingWriter struct {
	r       *Recorder
	wrapped io.Writer
}

var _ io.Writer = (*recordingWriter)(nil)

func (rw *recordingWriter) Write(p []byte) (int, error) {
	n, err := rw.wrapped.Write(p)
	rw.r.record(StreamOutput, p[:n])
	return n, err
}

// Replay writes the output events of a recording to w. Pauses between events
// are reproduced, if maxSleep > 0 it caps each pause. A negative maxSleep
// disables pauses entirely.
func Replay(source EventSource, w io.Writer, maxSleep time.Duration) error {
	var prev time.Duration
	for {
		event, err := source.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		pause := event.Offset - prev
		prev = event.Offset
		if maxSleep > 0 && pause > maxSleep {
			pause = maxSleep
		}
		if maxSleep >= 0 && pause > 0 {
			time.Sleep(pause)
		}

		if event.Stream != StreamOutput {
			continue
		}
		if _, err := w.Write(event.Data); err != nil {
			return err
		}
	}
}
