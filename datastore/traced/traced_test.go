/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package traced

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/suparena/settingstore/config"
	"github.com/suparena/settingstore/datastore/mock"
	"github.com/suparena/settingstore/storagemodels"
	"github.com/suparena/settingstore/value"
)

func setupTracing(t *testing.T, inner *mock.DataStore) (*DataStore, *tracetest.InMemoryExporter, *sdkmetric.ManualReader) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return New(inner, "memory", WithTracerProvider(tp), WithMeterProvider(mp)), exporter, reader
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestSpansPerOperation(t *testing.T) {
	ctx := context.Background()
	store, exporter, _ := setupTracing(t, mock.New())
	id := storagemodels.RegistryID(7, "ui", "theme", value.String)

	_, err := store.Write(ctx, id, "dark")
	require.NoError(t, err)
	raw, found, err := store.Read(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "dark", raw)
	_, err = store.Exists(ctx, id)
	require.NoError(t, err)
	_, err = store.Delete(ctx, id)
	require.NoError(t, err)
	_, err = store.All(ctx, storagemodels.ScopeRegistry)
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 5)

	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		SpanPrefix + "write",
		SpanPrefix + "read",
		SpanPrefix + "exists",
		SpanPrefix + "delete",
		SpanPrefix + "all",
	}, names)

	attrs := attrMap(spans[1].Attributes)
	assert.Equal(t, "memory", attrs[AttrEngine].AsString())
	assert.Equal(t, "registry", attrs[AttrScope].AsString())
	assert.Equal(t, int64(7), attrs[AttrOwner].AsInt64())
	assert.Equal(t, "ui", attrs[AttrKey].AsString())
	assert.Equal(t, "theme", attrs[AttrName].AsString())
	assert.Equal(t, "s", attrs[AttrType].AsString())
	assert.True(t, attrs[AttrResult].AsBool())
	assert.Equal(t, codes.Ok, spans[1].Status.Code)
}

func TestSystemSpansOmitOwner(t *testing.T) {
	store, exporter, _ := setupTracing(t, mock.New())
	_, _, err := store.Read(context.Background(), storagemodels.SystemID("k", "n", value.String))
	require.NoError(t, err)

	attrs := attrMap(exporter.GetSpans()[0].Attributes)
	_, hasOwner := attrs[AttrOwner]
	assert.False(t, hasOwner)
	assert.False(t, attrs[AttrResult].AsBool())
}

func TestErrorsAreRecorded(t *testing.T) {
	store, exporter, reader := setupTracing(t, mock.New().WithReadError(assert.AnError))
	ctx := context.Background()

	_, _, err := store.Read(ctx, storagemodels.SystemID("k", "n", value.String))
	require.ErrorIs(t, err, assert.AnError)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	require.NotEmpty(t, spans[0].Events)
	assert.Equal(t, "exception", spans[0].Events[0].Name)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	outcome, _ := sum.DataPoints[0].Attributes.Value("outcome")
	assert.Equal(t, "error", outcome.AsString())
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
}

func TestNewProvider(t *testing.T) {
	t.Run("disabled is no-op", func(t *testing.T) {
		var buf bytes.Buffer
		p, err := NewProvider(config.TracingConfig{}, &buf)
		require.NoError(t, err)

		store := New(mock.New(), "memory", WithTracerProvider(p.TracerProvider()))
		store.Read(context.Background(), storagemodels.SystemID("k", "n", value.String))
		require.NoError(t, p.Shutdown(context.Background()))
		assert.Zero(t, buf.Len())
	})

	t.Run("stdout writes spans", func(t *testing.T) {
		var buf bytes.Buffer
		p, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "stdout"}, &buf)
		require.NoError(t, err)

		store := New(mock.New(), "memory", WithTracerProvider(p.TracerProvider()))
		store.Read(context.Background(), storagemodels.SystemID("k", "n", value.String))
		require.NoError(t, p.Shutdown(context.Background()))
		assert.Contains(t, buf.String(), SpanPrefix+"read")
	})

	t.Run("unknown exporter", func(t *testing.T) {
		_, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "zipkin"}, nil)
		assert.Error(t, err)
	})
}
