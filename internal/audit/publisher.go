package audit

import (
	"context"
	"log/slog"
	"time"
)

// Sink receives a copy of every event after it is stored. Sinks are best
// effort; a failing sink never blocks the caller's request.
type Sink interface {
	Deliver(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. Events are persisted through
// the store and fanned out to optional sinks.
type Publisher struct {
	store  Store
	sinks  []Sink
	logger *slog.Logger
}

type Option func(*Publisher)

func WithSink(sink Sink) Option {
	return func(p *Publisher) {
		if sink != nil {
			p.sinks = append(p.sinks, sink)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	for _, sink := range p.sinks {
		if err := sink.Deliver(ctx, event); err != nil {
			p.logger.WarnContext(ctx, "audit sink delivery failed",
				"action", event.Action,
				"asset_id", event.AssetID,
				"error", err,
			)
		}
	}
	return nil
}

func (p *Publisher) List(ctx context.Context, assetID string) ([]Event, error) {
	return p.store.ListByAsset(ctx, assetID)
}
