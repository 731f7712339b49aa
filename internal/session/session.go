// Package session tracks the client-visible state of one upload: the ordered
// step list and the terminal result. State values are immutable; every
// observed event produces a new State via Reduce.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/rs/zerolog/log"

	"docex/internal/domain"
	"docex/internal/stream"
)

// NetworkErrorCode is the fixed code synthesized for transport-level
// failures, so a session never hangs without a terminal result.
const NetworkErrorCode = "ERR_NETWORK"

// stepLabels maps known step ids to display labels. Unknown ids fall back
// to the raw id.
var stepLabels = map[string]string{
	domain.StepValidate: "Validating file",
	domain.StepUpload:   "Reading image data",
	domain.StepAnalyze:  "AI analysis",
	domain.StepExtract:  "Validating extracted data",
	domain.StepSave:     "Saving to database",
}

// StepLabel returns the display label for a step id.
func StepLabel(id string) string {
	if label, ok := stepLabels[id]; ok {
		return label
	}
	return id
}

// Result is the terminal outcome of a session.
type Result struct {
	Success bool
	Data    json.RawMessage
	Error   *stream.ErrorInfo
}

// State is one immutable snapshot of an upload session.
type State struct {
	Steps  []domain.ProcessingStep
	Result *Result
	Done   bool
}

// Action is a discrete state transition input.
type Action interface {
	isAction()
}

// StepUpdated upserts a step into the ordered step list.
type StepUpdated struct {
	Event stream.StepEvent
}

// ResultReceived terminates the session with a final payload.
type ResultReceived struct {
	Event stream.ResultEvent
}

// SessionReset discards all session state for a new upload.
type SessionReset struct{}

func (StepUpdated) isAction()    {}
func (ResultReceived) isAction() {}
func (SessionReset) isAction()   {}

// Reduce applies an action to a state and returns the next state. The input
// state is never modified. After the session is done, only SessionReset has
// any effect: a second result or late step frames are ignored.
func Reduce(s State, a Action) State {
	switch action := a.(type) {
	case SessionReset:
		return State{}

	case StepUpdated:
		if s.Done {
			return s
		}
		ev := action.Event
		next := State{
			Steps:  make([]domain.ProcessingStep, len(s.Steps)),
			Result: s.Result,
		}
		copy(next.Steps, s.Steps)
		for i := range next.Steps {
			if next.Steps[i].ID == ev.Step {
				next.Steps[i].Status = ev.Status
				next.Steps[i].Message = ev.Message
				return next
			}
		}
		next.Steps = append(next.Steps, domain.ProcessingStep{
			ID:      ev.Step,
			Label:   StepLabel(ev.Step),
			Status:  ev.Status,
			Message: ev.Message,
		})
		return next

	case ResultReceived:
		if s.Done {
			return s
		}
		ev := action.Event
		return State{
			Steps: s.Steps,
			Result: &Result{
				Success: ev.Success,
				Data:    ev.Data,
				Error:   ev.Error,
			},
			Done: true,
		}
	}
	return s
}

// Consumer drives a session from a streamed response body.
type Consumer struct {
	state State
}

// NewConsumer creates a Consumer with an empty session.
func NewConsumer() *Consumer {
	return &Consumer{}
}

// State returns the current session snapshot.
func (c *Consumer) State() State {
	return c.state
}

// Reset discards the current session ahead of a new upload.
func (c *Consumer) Reset() {
	c.state = Reduce(c.state, SessionReset{})
}

// Run resets the session, then consumes events from body until the terminal
// result arrives or the transport fails. A transport failure (including a
// stream that ends without a result) synthesizes a failure result with
// NetworkErrorCode so callers always see a terminal state.
func (c *Consumer) Run(ctx context.Context, body io.Reader) State {
	c.Reset()

	dec := stream.NewDecoder(body)
	for {
		if err := ctx.Err(); err != nil {
			return c.failTransport(err)
		}

		ev, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) && c.state.Done {
				return c.state
			}
			return c.failTransport(err)
		}

		switch {
		case ev.Step != nil:
			c.state = Reduce(c.state, StepUpdated{Event: *ev.Step})
		case ev.Result != nil:
			c.state = Reduce(c.state, ResultReceived{Event: *ev.Result})
			// The result is terminal: later frames are not processed even
			// if the connection stays open.
			return c.state
		}
	}
}

func (c *Consumer) failTransport(err error) State {
	log.Warn().Err(err).Msg("upload stream ended without a result")
	c.state = Reduce(c.state, ResultReceived{Event: stream.ResultEvent{
		Success: false,
		Error: &stream.ErrorInfo{
			Code:    NetworkErrorCode,
			Message: "connection to server lost",
		},
	}})
	return c.state
}
