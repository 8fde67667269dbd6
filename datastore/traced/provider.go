/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package traced

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/suparena/settingstore/config"
)

// Provider owns the tracer provider built from configuration.
type Provider struct {
	tp       trace.TracerProvider
	shutdown func(context.Context) error
}

// NewProvider builds a tracer provider. Disabled tracing, or the "none"
// exporter, yields a no-op provider. The "stdout" exporter writes spans to w.
func NewProvider(cfg config.TracingConfig, w io.Writer) (*Provider, error) {
	if !cfg.Enabled || cfg.Exporter == "none" {
		return &Provider{
			tp:       noop.NewTracerProvider(),
			shutdown: func(context.Context) error { return nil },
		}, nil
	}

	if cfg.Exporter != "stdout" && cfg.Exporter != "" {
		return nil, fmt.Errorf("unknown trace exporter %q", cfg.Exporter)
	}
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("create stdout exporter: %w", err)
	}

	name := cfg.ServiceName
	if name == "" {
		name = "settingstore"
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
	)
	return &Provider{tp: tp, shutdown: tp.Shutdown}, nil
}

// TracerProvider returns the provider to pass to WithTracerProvider.
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tp
}

// Shutdown flushes and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.shutdown(ctx)
}
