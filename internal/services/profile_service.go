// Package services – ProfileService
//
// This file implements ProfileService, which owns the lifecycle of a
// user's persisted industry classification. It validates the taxonomy
// path and confidence, resolves display labels from the taxonomy
// tables, and creates or overwrites the single profile row per user.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/joyjoin/industry-inference/internal/classify"
	"github.com/joyjoin/industry-inference/internal/domain"
	"github.com/joyjoin/industry-inference/internal/repo"
	"github.com/joyjoin/industry-inference/internal/taxonomy"
)

// SourceManual marks a profile the user picked by hand rather than
// one produced by the pipeline.
const SourceManual = "manual"

// validSources is the closed set of accepted profile sources.
var validSources = map[string]struct{}{
	string(classify.SourceSeed):     {},
	string(classify.SourceOntology): {},
	string(classify.SourceAI):       {},
	string(classify.SourceFallback): {},
	SourceManual:                    {},
}

// SaveProfileInput carries a confirmed classification to persist.
type SaveProfileInput struct {
	Raw        string
	CategoryID string
	SegmentID  string
	NicheID    string
	Confidence float64
	Source     string
}

// ProfileService implements the use-cases around stored profiles.
type ProfileService struct {
	// DB is the database handle used for all profile operations.
	DB *gorm.DB

	// MaxRawRunes caps the stored raw description; zero disables it.
	MaxRawRunes int
}

// Get returns the stored profile for userID, or ErrProfileNotFound.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.IndustryProfile, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	p, err := repo.GetProfile(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// Save validates in and creates or overwrites the profile for userID.
//
// Semantics and validation:
//   - Raw must be non-blank (ErrEmptyDescription) and within the
//     configured length cap (ErrTooLong).
//   - (CategoryID, SegmentID, NicheID) must form a valid taxonomy
//     path; otherwise ErrInvalidPath.
//   - Confidence must be in [0,1]; otherwise ErrInvalidConfidence.
//   - Source must be one of seed|ontology|ai|fallback|manual; an
//     empty Source defaults to manual.
func (s *ProfileService) Save(ctx context.Context, userID string, in SaveProfileInput) (*domain.IndustryProfile, error) {
	tr := otel.Tracer("services/ProfileService")
	ctx, span := tr.Start(ctx, "Save",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("profile.source", in.Source),
		),
	)
	defer span.End()

	raw := strings.TrimSpace(in.Raw)
	if raw == "" {
		return nil, ErrEmptyDescription
	}
	if s.MaxRawRunes > 0 && utf8.RuneCountInString(raw) > s.MaxRawRunes {
		return nil, ErrTooLong
	}

	path, ok := taxonomy.ResolvePath(in.CategoryID, in.SegmentID, in.NicheID)
	if !ok {
		return nil, ErrInvalidPath
	}
	if in.Confidence < 0 || in.Confidence > 1 {
		return nil, ErrInvalidConfidence
	}

	source := in.Source
	if source == "" {
		source = SourceManual
	}
	if _, ok := validSources[source]; !ok {
		return nil, ErrInvalidSource
	}

	p := &domain.IndustryProfile{
		UserID:        userID,
		Raw:           raw,
		Normalized:    classify.Normalize(raw),
		CategoryID:    path.Category.ID,
		CategoryLabel: path.Category.Label,
		SegmentID:     path.Segment.ID,
		SegmentLabel:  path.Segment.Label,
		Confidence:    in.Confidence,
		Source:        source,
	}
	if path.Niche != nil {
		id, label := path.Niche.ID, path.Niche.Label
		p.NicheID = &id
		p.NicheLabel = &label
	}

	return repo.UpsertProfile(ctx, s.DB, p)
}
