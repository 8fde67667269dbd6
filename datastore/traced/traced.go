/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package traced wraps a DataStore with OpenTelemetry spans and an operation counter.
package traced

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/storagemodels"
)

const instrumentationName = "github.com/suparena/settingstore/datastore/traced"

// Span and attribute names.
const (
	SpanPrefix = "settingstore.datastore."

	AttrEngine = "settingstore.engine"
	AttrScope  = "settingstore.scope"
	AttrOwner  = "settingstore.owner"
	AttrKey    = "settingstore.key"
	AttrName   = "settingstore.name"
	AttrType   = "settingstore.type"
	AttrResult = "settingstore.result"
	AttrCount  = "settingstore.count"

	MetricOperations = "settingstore.datastore.operations"
)

// DataStore records a span and a counter increment for every call.
type DataStore struct {
	next   datastore.DataStore
	engine string
	tracer trace.Tracer
	ops    metric.Int64Counter
}

var _ datastore.DataStore = (*DataStore)(nil)

// Option configures a traced DataStore.
type Option func(*options)

type options struct {
	tp trace.TracerProvider
	mp metric.MeterProvider
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tp = tp }
}

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.mp = mp }
}

// New wraps next. engine names the wrapped engine in span attributes.
func New(next datastore.DataStore, engine string, opts ...Option) *DataStore {
	o := options{tp: otel.GetTracerProvider(), mp: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(&o)
	}

	ops, err := o.mp.Meter(instrumentationName).Int64Counter(
		MetricOperations,
		metric.WithDescription("Number of storage engine calls by operation and outcome"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &DataStore{
		next:   next,
		engine: engine,
		tracer: o.tp.Tracer(instrumentationName),
		ops:    ops,
	}
}

// Unwrap returns the underlying DataStore.
func (d *DataStore) Unwrap() datastore.DataStore {
	return d.next
}

func (d *DataStore) Exists(ctx context.Context, id storagemodels.Identity) (bool, error) {
	ctx, span := d.start(ctx, "exists", id)
	ok, err := d.next.Exists(ctx, id)
	d.finish(ctx, span, "exists", err, attribute.Bool(AttrResult, ok))
	return ok, err
}

func (d *DataStore) Delete(ctx context.Context, id storagemodels.Identity) (bool, error) {
	ctx, span := d.start(ctx, "delete", id)
	ok, err := d.next.Delete(ctx, id)
	d.finish(ctx, span, "delete", err, attribute.Bool(AttrResult, ok))
	return ok, err
}

func (d *DataStore) Read(ctx context.Context, id storagemodels.Identity) (string, bool, error) {
	ctx, span := d.start(ctx, "read", id)
	raw, found, err := d.next.Read(ctx, id)
	d.finish(ctx, span, "read", err, attribute.Bool(AttrResult, found))
	return raw, found, err
}

func (d *DataStore) Write(ctx context.Context, id storagemodels.Identity, raw string) (bool, error) {
	ctx, span := d.start(ctx, "write", id)
	ok, err := d.next.Write(ctx, id, raw)
	d.finish(ctx, span, "write", err, attribute.Bool(AttrResult, ok))
	return ok, err
}

func (d *DataStore) All(ctx context.Context, scope storagemodels.Scope) ([]storagemodels.Entry, error) {
	ctx, span := d.tracer.Start(ctx, SpanPrefix+"all",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrEngine, d.engine),
			attribute.String(AttrScope, string(scope)),
		),
	)
	entries, err := d.next.All(ctx, scope)
	d.finish(ctx, span, "all", err, attribute.Int(AttrCount, len(entries)))
	return entries, err
}

// Close closes the underlying store if it holds resources.
func (d *DataStore) Close() error {
	if c, ok := d.next.(datastore.Closer); ok {
		return c.Close()
	}
	return nil
}

func (d *DataStore) start(ctx context.Context, op string, id storagemodels.Identity) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrEngine, d.engine),
		attribute.String(AttrScope, string(id.Scope)),
		attribute.String(AttrKey, id.Key),
		attribute.String(AttrName, id.Name),
		attribute.String(AttrType, string(id.Type)),
	}
	if id.Scope == storagemodels.ScopeRegistry {
		attrs = append(attrs, attribute.Int64(AttrOwner, id.Owner))
	}
	return d.tracer.Start(ctx, SpanPrefix+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func (d *DataStore) finish(ctx context.Context, span trace.Span, op string, err error, result attribute.KeyValue) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(result)
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	if d.ops != nil {
		d.ops.Add(ctx, 1, metric.WithAttributes(
			attribute.String("engine", d.engine),
			attribute.String("operation", op),
			attribute.String("outcome", outcome),
		))
	}
}
