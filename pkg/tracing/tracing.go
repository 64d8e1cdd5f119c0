/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"k8s.io/klog/v2"
)

const (
	// DefaultServiceName is the default service name used for tracing.
	DefaultServiceName = "moo-optimizer"
)

// Options configures the tracer provider. An empty CollectorEndpoint disables
// tracing.
type Options struct {
	CollectorEndpoint string
	ServiceName       string
	// SampleRate is the fraction of runs traced, in [0, 1].
	SampleRate float64
	Insecure   bool
}

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider exporting spans over OTLP/gRPC and
// returns its shutdown function. Without an endpoint a no-op provider is
// installed.
func Setup(ctx context.Context, opts Options) (ShutdownFunc, error) {
	logger := klog.FromContext(ctx)

	if opts.CollectorEndpoint == "" {
		logger.V(4).Info("Tracing disabled, no collector endpoint configured")
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}
	if opts.SampleRate < 0 || opts.SampleRate > 1 {
		return nil, fmt.Errorf("sample rate must be within [0, 1], got %v", opts.SampleRate)
	}
	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	clientOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(opts.CollectorEndpoint)}
	if opts.Insecure {
		clientOpts = append(clientOpts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	provider := NewProvider(serviceName, opts.SampleRate, sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger.V(2).Info("Tracing enabled", "endpoint", opts.CollectorEndpoint, "service", serviceName, "sampleRate", opts.SampleRate)
	return provider.Shutdown, nil
}

// NewProvider builds a tracer provider for serviceName that samples the given
// fraction of root spans and follows the parent's decision otherwise.
func NewProvider(serviceName string, sampleRate float64, opts ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	resource := sdkresource.NewSchemaless(attribute.String("service.name", serviceName))
	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
	}, opts...)
	return sdktrace.NewTracerProvider(opts...)
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
