package parser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"docex/internal/domain"
	"docex/internal/port"
)

// circuitState tracks rate-limit backoff for a single parser.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpen(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackParser tries parsers in order, skipping those with open circuits.
// It implements port.InvoiceParser.
type FallbackParser struct {
	parsers  []port.InvoiceParser
	circuits []*circuitState
	names    []string
}

// NewFallbackParser creates a FallbackParser from an ordered list of parsers and their names.
func NewFallbackParser(parsers []port.InvoiceParser, names []string) *FallbackParser {
	circuits := make([]*circuitState, len(parsers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackParser{parsers: parsers, circuits: circuits, names: names}
}

// Names returns the ordered provider names of the chain.
func (f *FallbackParser) Names() []string {
	return f.names
}

func (f *FallbackParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	now := time.Now()
	var errs []error

	for i, p := range f.parsers {
		if f.circuits[i].isOpen(now) {
			log.Warn().Str("provider", f.names[i]).Msg("skipping provider, circuit open")
			errs = append(errs, fmt.Errorf("%s: circuit open", f.names[i]))
			continue
		}

		out, err := p.Parse(ctx, input)
		if err == nil {
			log.Info().
				Str("provider", f.names[i]).
				Float64("confidence", out.Confidence).
				Msg("extraction succeeded")
			return out, nil
		}

		log.Warn().Str("provider", f.names[i]).Err(err).Msg("provider failed")
		errs = append(errs, fmt.Errorf("%s: %w", f.names[i], err))

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			f.circuits[i].open(now.Add(rlErr.RetryAfter))
		}
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrAllProvidersFailed, errors.Join(errs...))
}
