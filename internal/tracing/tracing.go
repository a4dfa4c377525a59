package tracing

import (
	"context"
	"log"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// newJaegerExporter builds an exporter that ships spans to a Jaeger collector.
func newJaegerExporter(url string) (sdktrace.SpanExporter, error) {
	return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(url)))
}

// InitTracerProvider configures and registers the global OpenTelemetry
// provider. Returns a shutdown function for the caller to defer.
func InitTracerProvider(serviceName string) func() {
	jaegerURL := os.Getenv("JAEGER_URL")
	if jaegerURL == "" {
		jaegerURL = "http://jaeger:14268/api/traces"
	}

	exporter, err := newJaegerExporter(jaegerURL)
	if err != nil {
		log.Fatalf("failed to create Jaeger exporter: %v", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(1.0)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	log.Println("OpenTelemetry (Jaeger) initialized.")

	return func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("failed to shut down TracerProvider: %v", err)
		}
	}
}
