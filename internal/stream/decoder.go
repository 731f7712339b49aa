// Package stream implements the client side of the upload progress protocol:
// an incremental decoder for Server-Sent-Events frames carrying step and
// result payloads.
package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"docex/internal/domain"
)

// StepEvent reports a status change of one named processing phase.
type StepEvent struct {
	Step    string            `json:"step"`
	Status  domain.StepStatus `json:"status"`
	Message string            `json:"message,omitempty"`
}

// ErrorInfo carries the failure payload of a result event.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ResultEvent is the terminal event of an upload session.
type ResultEvent struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

// Event is the union of the two frame shapes. Exactly one field is non-nil.
type Event struct {
	Step   *StepEvent
	Result *ResultEvent
}

// Decoder reads SSE frames from a response body as they arrive. Frame
// boundaries do not align with transport chunks, so bytes left over after
// each extracted frame stay in an internal residual buffer. A malformed
// frame is logged and skipped; it never ends the stream.
type Decoder struct {
	r     io.Reader
	buf   bytes.Buffer
	chunk []byte
	eof   bool
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, chunk: make([]byte, 4096)}
}

// Next returns the next decoded event. It blocks until a complete frame has
// arrived, and returns io.EOF once the stream ends with no frame pending.
func (d *Decoder) Next() (*Event, error) {
	for {
		if frame, ok := d.takeFrame(); ok {
			ev, err := decodeFrame(frame)
			if err != nil {
				log.Warn().Err(err).Str("frame", truncateFrame(frame)).Msg("skipping malformed event frame")
				continue
			}
			if ev == nil {
				// Comment or keep-alive frame with no data lines.
				continue
			}
			return ev, nil
		}

		if d.eof {
			// The stream ended mid-frame: try the residual as a final frame.
			rest := strings.TrimSpace(d.buf.String())
			d.buf.Reset()
			if rest != "" {
				ev, err := decodeFrame(rest)
				if err == nil && ev != nil {
					return ev, nil
				}
				if err != nil {
					log.Warn().Err(err).Msg("discarding malformed trailing frame")
				}
			}
			return nil, io.EOF
		}

		n, err := d.r.Read(d.chunk)
		if n > 0 {
			d.buf.Write(d.chunk[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.eof = true
				continue
			}
			return nil, err
		}
	}
}

// takeFrame extracts one complete frame from the buffer, leaving the
// residual bytes in place.
func (d *Decoder) takeFrame() (string, bool) {
	data := d.buf.Bytes()

	idx := bytes.Index(data, []byte("\n\n"))
	width := 2
	if crlf := bytes.Index(data, []byte("\r\n\r\n")); crlf != -1 && (idx == -1 || crlf < idx) {
		idx = crlf
		width = 4
	}
	if idx == -1 {
		return "", false
	}

	frame := string(data[:idx])
	d.buf.Next(idx + width)
	return frame, true
}

// decodeFrame parses the data lines of one SSE frame into an Event.
// Frames without data lines (comments, heartbeats) yield a nil event.
func decodeFrame(frame string) (*Event, error) {
	var payload strings.Builder
	for _, line := range strings.Split(frame, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		if payload.Len() > 0 {
			payload.WriteByte('\n')
		}
		payload.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
	}
	if payload.Len() == 0 {
		return nil, nil
	}

	var raw struct {
		Type    string            `json:"type"`
		Step    string            `json:"step"`
		Status  domain.StepStatus `json:"status"`
		Message string            `json:"message"`
		Success bool              `json:"success"`
		Data    json.RawMessage   `json:"data"`
		Error   *ErrorInfo        `json:"error"`
	}
	if err := json.Unmarshal([]byte(payload.String()), &raw); err != nil {
		return nil, err
	}

	if raw.Type == "result" {
		return &Event{Result: &ResultEvent{
			Success: raw.Success,
			Data:    raw.Data,
			Error:   raw.Error,
		}}, nil
	}
	if raw.Step == "" {
		return nil, errors.New("event frame has neither result type nor step id")
	}
	return &Event{Step: &StepEvent{
		Step:    raw.Step,
		Status:  raw.Status,
		Message: raw.Message,
	}}, nil
}

func truncateFrame(s string) string {
	if len(s) <= 120 {
		return s
	}
	return s[:120] + "..."
}
