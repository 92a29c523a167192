// Inference HTTP handlers.
//
// This file exposes the classification endpoints:
//   - POST /inference/parse-industry  (suggestion shape for input widgets)
//   - POST /inference/classify        (full classification contract)
//   - GET  /inference/stats           (cache and profile counters)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/joyjoin/industry-inference/internal/cache"
	"github.com/joyjoin/industry-inference/internal/classify"
	"github.com/joyjoin/industry-inference/internal/repo"
	"github.com/joyjoin/industry-inference/internal/services"
)

//
// Service contracts (context-aware)
//

// InferenceService defines the classification operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type InferenceService interface {
	// Classify runs the tiered pipeline on the request.
	Classify(ctx context.Context, req classify.Request) (*classify.Result, error)
}

//
// Handler wiring
//

// InferenceHandlers groups the HTTP endpoints for classification.
type InferenceHandlers struct {
	svc   InferenceService
	store cache.Store
	db    *gorm.DB
}

// NewInference constructs InferenceHandlers bound to the given service,
// cache store, and database handle (the latter two power /inference/stats).
func NewInference(svc InferenceService, store cache.Store, db *gorm.DB) *InferenceHandlers {
	return &InferenceHandlers{svc: svc, store: store, db: db}
}

//
// DTOs
//

// ParseIndustryRequest is the JSON payload for the suggestion endpoint.
type ParseIndustryRequest struct {
	// Text is the free-form occupation description to classify.
	Text string `json:"text" example:"做AI的"`
	// LockedCategoryID optionally pins suggestions to one category.
	LockedCategoryID string `json:"locked_category_id,omitempty" example:"tech"`
}

// Suggestion is one classification option in suggestion shape.
type Suggestion struct {
	// Value is the segment (or niche) identifier to submit back.
	Value string `json:"value" example:"tech-ai"`
	// Label is the display label for the value.
	Label string `json:"label" example:"人工智能"`
	// Confidence in [0,1].
	Confidence float64 `json:"confidence" example:"0.62"`
	// Reasoning explains the suggestion when the input was ambiguous.
	Reasoning string `json:"reasoning,omitempty" example:"“AI”可指人工智能研发等多个方向"`
}

// ParseIndustryResponse is the suggestion-shaped reply consumed by input
// widgets. Primary is set only for decisive results; Alternatives carry the
// ranked options otherwise. Exactly one of the two is populated for
// non-blank input.
type ParseIndustryResponse struct {
	Primary      *Suggestion  `json:"primary,omitempty"`
	Alternatives []Suggestion `json:"alternatives,omitempty"`
	Source       string       `json:"source" example:"seed"`
	Cached       bool         `json:"cached"`
}

// ClassifyRequest is the JSON payload for the full classification endpoint.
type ClassifyRequest struct {
	Description      string `json:"description" example:"量化基金做投研"`
	OccupationID     string `json:"occupation_id,omitempty" example:"occ-trader"`
	LockedCategoryID string `json:"locked_category_id,omitempty" example:"finance"`
	Source           string `json:"source,omitempty" example:"onboarding"`
}

// StatsResponse aggregates cache counters and stored-profile counts.
type StatsResponse struct {
	CacheHits    int64            `json:"cache_hits"`
	CacheMisses  int64            `json:"cache_misses"`
	CacheEntries int64            `json:"cache_entries"`
	Profiles     int64            `json:"profiles"`
	BySource     map[string]int64 `json:"by_source"`
}

//
// Helpers
//

// resultSuggestion renders a decisive result in suggestion shape. The
// deepest resolved level wins: niche when present, segment otherwise.
func resultSuggestion(res *classify.Result) *Suggestion {
	v, l := res.Segment.ID, res.Segment.Label
	if res.Niche != nil {
		v, l = res.Niche.ID, res.Niche.Label
	}
	return &Suggestion{Value: v, Label: l, Confidence: res.Confidence, Reasoning: res.Reasoning}
}

func candidateSuggestion(c classify.Candidate) Suggestion {
	v, l := c.Segment.ID, c.Segment.Label
	if c.Niche != nil {
		v, l = c.Niche.ID, c.Niche.Label
	}
	return Suggestion{Value: v, Label: l, Confidence: c.Confidence, Reasoning: c.Reasoning}
}

func failValidation(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, services.ErrEmptyDescription):
		fail(c, http.StatusBadRequest, ErrCodeEmptyDescription, "text must not be empty")
	case errors.Is(err, services.ErrTooLong):
		fail(c, http.StatusBadRequest, ErrCodeDescriptionTooLong, "text exceeds the configured length limit")
	default:
		return false
	}
	return true
}

//
// Handlers
//

// ParseIndustry godoc
// @ID          parseIndustry
// @Summary     Suggest an industry for free text
// @Description Classifies a short occupation description and returns a primary suggestion and/or ranked alternatives.
// @Tags        Inference
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ParseIndustryRequest  true  "Text to classify"
//
// @Success     200  {object}  handlers.ParseIndustryResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /inference/parse-industry [post]
func (h *InferenceHandlers) ParseIndustry(c *gin.Context) {
	var req ParseIndustryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		// Blank text is not an error for the widget: it gets an empty
		// suggestion set to clear its dropdown.
		ok(c, http.StatusOK, ParseIndustryResponse{Source: string(classify.SourceFallback)})
		return
	}

	res, err := h.svc.Classify(c.Request.Context(), classify.Request{
		Description:      req.Text,
		LockedCategoryID: req.LockedCategoryID,
	})
	if err != nil {
		if !failValidation(c, err) {
			fail(c, http.StatusInternalServerError, ErrCodeClassifyFailed, err.Error())
		}
		return
	}

	resp := ParseIndustryResponse{Source: string(res.Source), Cached: res.Cached}
	if len(res.Candidates) == 0 {
		resp.Primary = resultSuggestion(res)
	} else {
		resp.Alternatives = make([]Suggestion, 0, len(res.Candidates))
		for _, cand := range res.Candidates {
			resp.Alternatives = append(resp.Alternatives, candidateSuggestion(cand))
		}
	}
	ok(c, http.StatusOK, resp)
}

// Classify godoc
// @ID          classify
// @Summary     Classify an occupation description
// @Description Runs the full tiered pipeline (cache, seed, ontology, AI, fallback) and returns the complete result.
// @Tags        Inference
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ClassifyRequest  true  "Classification request"
//
// @Success     200  {object}  classify.Result
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /inference/classify [post]
func (h *InferenceHandlers) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	res, err := h.svc.Classify(c.Request.Context(), classify.Request{
		Description:      req.Description,
		OccupationID:     req.OccupationID,
		LockedCategoryID: req.LockedCategoryID,
		Source:           req.Source,
	})
	if err != nil {
		if !failValidation(c, err) {
			fail(c, http.StatusInternalServerError, ErrCodeClassifyFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, res)
}

// Stats godoc
// @ID          inferenceStats
// @Summary     Classification runtime counters
// @Description Returns cache hit/miss/entry counters and stored-profile counts grouped by source.
// @Tags        Inference
// @Produce     json
//
// @Success     200  {object}  handlers.StatsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /inference/stats [get]
func (h *InferenceHandlers) Stats(c *gin.Context) {
	resp := StatsResponse{BySource: map[string]int64{}}
	if h.store != nil {
		st := h.store.Stats()
		resp.CacheHits, resp.CacheMisses, resp.CacheEntries = st.Hits, st.Misses, int64(st.Entries)
	}
	if h.db != nil {
		ctx := c.Request.Context()
		total, err := repo.CountProfiles(ctx, h.db)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeStatsFailed, err.Error())
			return
		}
		bySource, err := repo.SourceCounts(ctx, h.db)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeStatsFailed, err.Error())
			return
		}
		resp.Profiles = total
		resp.BySource = bySource
	}
	ok(c, http.StatusOK, resp)
}
