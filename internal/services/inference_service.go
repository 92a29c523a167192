// Package services – InferenceService
//
// This file implements InferenceService, the application-level
// component in front of the classification pipeline. It validates and
// bounds input at the service boundary, delegates to the injected
// classify.Classifier, and guarantees the never-reject contract: any
// classifiable input resolves to a well-formed result.
//
// Observability: public methods are OpenTelemetry-instrumented; spans
// carry the input length and the tier that produced the result.
package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/joyjoin/industry-inference/internal/classify"
)

// InferenceService coordinates input validation and classification.
type InferenceService struct {
	Classifier *classify.Classifier

	// MaxDescriptionRunes caps input length; zero disables the cap.
	MaxDescriptionRunes int
}

// Classify validates the request and runs the pipeline.
//
// Errors are limited to input validation (ErrEmptyDescription,
// ErrTooLong); once input is accepted, the pipeline itself never
// fails; AI or cache trouble degrades to a fallback-sourced result.
func (s *InferenceService) Classify(ctx context.Context, req classify.Request) (*classify.Result, error) {
	tr := otel.Tracer("services/InferenceService")
	ctx, span := tr.Start(ctx, "Classify",
		trace.WithAttributes(
			attribute.Int("description.runes", utf8.RuneCountInString(req.Description)),
			attribute.String("locked_category", req.LockedCategoryID),
		),
	)
	defer span.End()

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return nil, ErrEmptyDescription
	}
	if s.MaxDescriptionRunes > 0 && utf8.RuneCountInString(req.Description) > s.MaxDescriptionRunes {
		return nil, ErrTooLong
	}

	res := s.Classifier.Classify(ctx, req)
	span.SetAttributes(
		attribute.String("classify.result_source", string(res.Source)),
		attribute.Bool("classify.cached", res.Cached),
		attribute.Int("classify.candidates", len(res.Candidates)),
	)
	return res, nil
}
