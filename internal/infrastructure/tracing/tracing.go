package tracing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const ServiceName = "food-rater"

type Tracing struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// InitTracing exports spans over OTLP/HTTP to collectorHost:4318 and installs
// the provider globally so otelmongo and otelhttp pick it up.
func InitTracing(ctx context.Context, collectorHost, environment string) (*Tracing, error) {
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(fmt.Sprintf("%s:4318", collectorHost)),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	t := newTracing(sdktrace.WithBatcher(exporter), environment)
	otel.SetTracerProvider(t.provider)

	return t, nil
}

func newTracing(processor sdktrace.TracerProviderOption, environment string) *Tracing {
	provider := sdktrace.NewTracerProvider(
		processor,
		sdktrace.WithResource(
			resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceNameKey.String(ServiceName),
				attribute.String("deployment.environment", environment),
			),
		),
	)

	return &Tracing{
		provider: provider,
		tracer:   provider.Tracer(ServiceName),
	}
}

func (t *Tracing) Tracer() trace.Tracer {
	return t.tracer
}

// Middleware opens one span per request named after the matched route, so
// /products/prod1 and /products/prod2 aggregate under [GET] /products/:productID.
func (t *Tracing) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx, span := t.tracer.Start(req.Context(), fmt.Sprintf("[%s] %s", req.Method, c.Path()))
			defer span.End()

			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			status := c.Response().Status
			span.SetAttributes(
				attribute.String("http.route", c.Path()),
				attribute.Int("http.status_code", status),
			)
			if err != nil {
				span.RecordError(err)
			}
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			return err
		}
	}
}

func (t *Tracing) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}
