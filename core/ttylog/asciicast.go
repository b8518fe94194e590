package ttylog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// AsciicastFileExt holds the suggested file extension for asciicast files.
const AsciicastFileExt = "cast"

// AsciicastHeader is the first line of an asciicast v2 file.
//
// See: https://github.com/asciinema/asciinema/blob/develop/doc/asciicast-v2.md
type AsciicastHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

func writeJSONLine(w io.Writer, structure interface{}) error {
	line, err := json.Marshal(structure)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", string(line))
	return err
}

// AsciicastWriter writes events as asciicast v2 lines.
type AsciicastWriter struct {
	mutex sync.Mutex
	w     io.Writer
	start time.Time
	now   func() time.Time
}

var _ EventSink = (*AsciicastWriter)(nil)

// NewAsciicastWriter writes the header and returns a writer whose event
// offsets are measured from now.
func NewAsciicastWriter(w io.Writer, header AsciicastHeader) (*AsciicastWriter, error) {
	return newAsciicastWriter(w, header, time.Now)
}

func newAsciicastWriter(w io.Writer, header AsciicastHeader, now func() time.Time) (*AsciicastWriter, error) {
	start := now()
	header.Version = 2
	if header.Width <= 0 {
		header.Width = 80
	}
	if header.Height <= 0 {
		header.Height = 24
	}
	if header.Timestamp == 0 {
		header.Timestamp = start.Unix()
	}

	if err := writeJSONLine(w, &header); err != nil {
		return nil, err
	}

	return &AsciicastWriter{w: w, start: start, now: now}, nil
}

// WriteEvent implements EventSink.
func (a *AsciicastWriter) WriteEvent(stream Stream, data []byte) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	direction := "o"
	if stream == StreamInput {
		direction = "i"
	}

	offset := durationToSeconds(a.now().Sub(a.start))
	return writeJSONLine(a.w, &asciicastLogLine{offset, direction, string(data)})
}

// AsciicastReader reads events from an asciicast v2 file.
type AsciicastReader struct {
	r             *bufio.Reader
	consumeHeader sync.Once
	header        AsciicastHeader
	headerErr     error
}

var _ EventSource = (*AsciicastReader)(nil)

// NewAsciicastReader reads events from an asciicast formatted stream.
func NewAsciicastReader(r io.Reader) *AsciicastReader {
	return &AsciicastReader{r: bufio.NewReader(r)}
}

func (log *AsciicastReader) readHeader() {
	log.consumeHeader.Do(func() {
		line, err := log.r.ReadBytes('\n')
		if err != nil && len(line) == 0 {
			log.headerErr = err
			return
		}
		if err := json.Unmarshal(line, &log.header); err != nil {
			log.headerErr = fmt.Errorf("malformed header: %w", err)
		}
	})
}

// Header returns the recording's header.
func (log *AsciicastReader) Header() (AsciicastHeader, error) {
	log.readHeader()
	return log.header, log.headerErr
}

// Next gets the next event, it returns io.EOF if there are no more.
func (log *AsciicastReader) Next() (*Event, error) {
	log.readHeader()
	if log.headerErr != nil {
		return nil, log.headerErr
	}

	for {
		line, err := log.r.ReadBytes('\n')
		if err != nil && len(line) == 0 {
			return nil, err
		}

		if len(line) <= 1 {
			// Skip blank lines
			continue
		}

		var asciicastLine asciicastLogLine
		if err := json.Unmarshal(line, &asciicastLine); err != nil {
			return nil, err
		}

		var stream Stream
		switch asciicastLine.EventType {
		case "o":
			stream = StreamOutput
		case "i":
			stream = StreamInput
		default:
			// skip unknown events
			continue
		}

		return &Event{
			Offset: secondsToDuration(asciicastLine.TimeSeconds),
			Stream: stream,
			Data:   []byte(asciicastLine.EventData),
		}, nil
	}
}

type asciicastLogLine struct {
	TimeSeconds float64
	EventType   string
	EventData   string
}

func (log *asciicastLogLine) UnmarshalJSON(data []byte) error {
	var v []interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if count := len(v); count != 3 {
		return fmt.Errorf("malformed line, expected 3 entries got %d", count)
	}

	var timeOk, typeOk, dataOk bool
	log.TimeSeconds, timeOk = v[0].(float64)
	log.EventType, typeOk = v[1].(string)
	log.EventData, dataOk = v[2].(string)

	if !timeOk || !typeOk || !dataOk {
		return fmt.Errorf("malformed data in line: %q", v)
	}

	return nil
}

func (log *asciicastLogLine) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{log.TimeSeconds, log.EventType, log.EventData})
}

func durationToSeconds(d time.Duration) float64 {
	return float64(d) / float64(time.Second)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(int64(seconds*float64(time.Second))/int64(time.Microsecond)) * time.Microsecond
}
