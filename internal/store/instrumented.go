package store

import (
	"context"
	"errors"
	"time"

	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type opObserver interface {
	ObserveStoreOp(op string, err error, took time.Duration)
}

// Instrumented wraps a KV with tracing spans and operation metrics.
type Instrumented struct {
	next     KV
	observer opObserver
}

func NewInstrumented(next KV, observer opObserver) *Instrumented {
	return &Instrumented{
		next:     next,
		observer: observer,
	}
}

func (s *Instrumented) Get(ctx context.Context, key string) (value []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.get")
	span.SetAttributes(attribute.String("key", key))
	defer s.observe("get", time.Now(), &err)
	defer func() {
		// a missing key is a normal outcome, not a failed span
		if errors.Is(err, ErrNotFound) {
			tracing.EndSpanWithErrCheck(span, nil)
			return
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()

	value, err = s.next.Get(ctx, key)
	if err == nil {
		span.SetAttributes(attribute.Int("size", len(value)))
	}
	return value, err
}

func (s *Instrumented) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.set")
	span.SetAttributes(attribute.String("key", key), attribute.Int("size", len(value)))
	defer s.observe("set", time.Now(), &err)
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return s.next.Set(ctx, key, value)
}

func (s *Instrumented) Del(ctx context.Context, key string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.del")
	span.SetAttributes(attribute.String("key", key))
	defer s.observe("del", time.Now(), &err)
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return s.next.Del(ctx, key)
}

func (s *Instrumented) Keys(ctx context.Context, prefix string) (keys []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.keys")
	span.SetAttributes(attribute.String("prefix", prefix))
	defer s.observe("keys", time.Now(), &err)
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return s.next.Keys(ctx, prefix)
}

func (s *Instrumented) observe(op string, start time.Time, errp *error) {
	if s.observer == nil {
		return
	}
	err := *errp
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	s.observer.ObserveStoreOp(op, err, time.Since(start))
}
