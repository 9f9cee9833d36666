package stream

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
)

// Encoder writes progress events as server-sent event frames. Each frame is
// a single "data:" line holding the JSON event, terminated by a blank line.
type Encoder struct {
	w       io.Writer
	flusher http.Flusher
}

// NewEncoder creates an encoder over the response writer. Flushing after
// every frame keeps the client's view current while the pipeline runs.
func NewEncoder(w io.Writer) *Encoder {
	enc := &Encoder{w: w}
	if f, ok := w.(http.Flusher); ok {
		enc.flusher = f
	}
	return enc
}

// Emit writes one event frame and flushes it to the client.
func (e *Encoder) Emit(event entities.ProgressEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(e.w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if e.flusher != nil {
		e.flusher.Flush()
	}
	return nil
}

// Decoder reads server-sent event frames back into progress events.
// Partial frames are buffered across reads, so chunk boundaries falling
// inside a frame are handled.
type Decoder struct {
	r   *bufio.Reader
	buf strings.Builder
}

// NewDecoder creates a decoder over the stream reader.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next returns the next decoded event. It returns io.EOF once the stream
// is exhausted.
func (d *Decoder) Next() (entities.ProgressEvent, error) {
	for {
		line, err := d.r.ReadString('\n')
		if len(line) > 0 {
			d.buf.WriteString(line)
		}

		frame := d.buf.String()
		if idx := strings.Index(frame, "\n\n"); idx >= 0 {
			rest := frame[idx+2:]
			frame = frame[:idx]
			d.buf.Reset()
			d.buf.WriteString(rest)

			event, perr := parseFrame(frame)
			if perr != nil {
				return entities.ProgressEvent{}, perr
			}
			return event, nil
		}

		if err != nil {
			// A trailing frame without the final blank line still counts.
			remainder := strings.TrimSpace(d.buf.String())
			d.buf.Reset()
			if err == io.EOF && remainder != "" {
				return parseFrame(remainder)
			}
			return entities.ProgressEvent{}, err
		}
	}
}

func parseFrame(frame string) (entities.ProgressEvent, error) {
	var data strings.Builder
	for _, line := range strings.Split(frame, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "data:") {
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}

	var event entities.ProgressEvent
	if err := json.Unmarshal([]byte(data.String()), &event); err != nil {
		return entities.ProgressEvent{}, fmt.Errorf("decode frame %q: %w", frame, err)
	}
	return event, nil
}
