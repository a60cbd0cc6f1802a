package registration

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"qkart/internal/log"
)

// Span and attribute names for registration tracing.
const (
	SpanSubmit       = "registration.submit"
	AttrAttemptID    = "registration.attempt_id"
	AttrOutcome      = "registration.outcome"
	AttrUsernameSize = "registration.username_length"
)

// Registrar performs the network exchange with the auth service.
type Registrar interface {
	Register(ctx context.Context, creds Credentials) Outcome
}

// RegistrarFunc adapts a function to Registrar.
type RegistrarFunc func(ctx context.Context, creds Credentials) Outcome

// Register calls f.
func (f RegistrarFunc) Register(ctx context.Context, creds Credentials) Outcome {
	return f(ctx, creds)
}

// Orchestrator runs exactly one request per submission. It never retries and
// always returns a classified Outcome, including when the Registrar panics.
type Orchestrator struct {
	registrar Registrar
	tracer    trace.Tracer
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithTracer records a span per submission.
func WithTracer(t trace.Tracer) OrchestratorOption {
	return func(o *Orchestrator) {
		if t != nil {
			o.tracer = t
		}
	}
}

// NewOrchestrator wraps r.
func NewOrchestrator(r Registrar, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		registrar: r,
		tracer:    noop.NewTracerProvider().Tracer("registration"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Submit sends creds for attempt and returns the outcome.
func (o *Orchestrator) Submit(ctx context.Context, attempt string, creds Credentials) (outcome Outcome) {
	ctx, span := o.tracer.Start(ctx, SpanSubmit,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrAttemptID, attempt),
			attribute.Int(AttrUsernameSize, Length(creds.Username)),
		),
	)
	start := time.Now()
	log.Info(log.CatRegister, "Submitting registration", "attempt", attempt, "username", creds.Username)

	defer func() {
		if r := recover(); r != nil {
			outcome = Failed(fmt.Errorf("registrar panicked: %v", r))
		}

		span.SetAttributes(attribute.String(AttrOutcome, outcome.Kind.String()))
		switch outcome.Kind {
		case OutcomeSuccess:
			span.SetStatus(codes.Ok, "")
			log.Info(log.CatRegister, "Registration succeeded", "attempt", attempt, "elapsed", time.Since(start))
		case OutcomeApplicationError:
			span.SetStatus(codes.Error, outcome.Message)
			log.Warn(log.CatRegister, "Registration rejected", "attempt", attempt, "message", outcome.Message)
		default:
			if outcome.Err != nil {
				span.RecordError(outcome.Err)
			}
			span.SetStatus(codes.Error, "transport error")
			log.ErrorErr(log.CatRegister, "Registration transport failure", outcome.Err, "attempt", attempt)
		}
		span.End()
	}()

	if o.registrar == nil {
		return Failed(fmt.Errorf("no registrar configured"))
	}
	return o.registrar.Register(ctx, creds)
}
