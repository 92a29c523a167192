package classify

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/joyjoin/industry-inference/internal/cache"
	"github.com/joyjoin/industry-inference/internal/llm"
	"github.com/joyjoin/industry-inference/internal/taxonomy"
)

// Classifier composes the pipeline tiers. All dependencies are
// injected; a nil Cache disables caching and a nil Completer disables
// the AI tier, both without changing the result contract.
type Classifier struct {
	Cache     cache.Store
	Completer llm.Completer

	// DecisiveThreshold separates sole-answer results from
	// candidate-list results. Zero means DefaultDecisiveThreshold.
	DecisiveThreshold float64

	// FallbackConfidence is the fixed confidence attached to generic
	// fallback results. Zero means 0.30.
	FallbackConfidence float64
}

// Classify runs the full pipeline for one request. It always returns
// a well-formed Result with category and segment populated; every
// tier failure is absorbed and converted into a lower-confidence
// result, never an error. The only shared state touched is the cache;
// concurrent identical requests may both compute and both write,
// which is acceptable because classification is idempotent per input.
func (c *Classifier) Classify(ctx context.Context, req Request) *Result {
	tr := otel.Tracer("classify/Classifier")
	ctx, span := tr.Start(ctx, "Classify",
		trace.WithAttributes(attribute.String("classify.source_tag", req.Source)),
	)
	defer span.End()

	start := time.Now()
	defer func() { classifyDuration.Observe(time.Since(start).Seconds()) }()

	normalized := Normalize(req.Description)
	if normalized == "" {
		res := c.fallbackResult(req, normalized, "输入为空，无法识别行业")
		res.ProcessingTimeMs = time.Since(start).Milliseconds()
		classifyTotal.WithLabelValues(string(SourceFallback)).Inc()
		return res
	}

	// Tier 0: cache.
	key := cache.Key(req.Description, req.OccupationID, req.LockedCategoryID, req.Source)
	if hit := c.cacheGet(key); hit != nil {
		hit.Cached = true
		hit.ProcessingTimeMs = time.Since(start).Milliseconds()
		span.SetAttributes(attribute.Bool("classify.cached", true))
		classifyTotal.WithLabelValues(string(hit.Source)).Inc()
		return hit
	}

	threshold := c.DecisiveThreshold
	if threshold <= 0 {
		threshold = DefaultDecisiveThreshold
	}

	// Tiers 1–2: seed dictionary, then ontology keywords.
	det, detOK := matchSeed(normalized, req.LockedCategoryID)
	if !detOK {
		det, detOK = matchOntology(normalized, req.LockedCategoryID)
	}
	if detOK && det.confidence >= threshold {
		res := c.buildResult(req, normalized, det.path, det.confidence, det.tier, "", nil)
		res.ProcessingTimeMs = time.Since(start).Milliseconds()
		c.cacheSet(key, res)
		classifyTotal.WithLabelValues(string(det.tier)).Inc()
		return res
	}

	// Tier 3: ambiguity candidates. A sub-threshold deterministic hit
	// joins the list instead of standing alone.
	curated := ambiguousCandidates(normalized, req.LockedCategoryID)
	var detCands []Candidate
	if detOK {
		detCands = []Candidate{{
			Path:           det.path,
			Confidence:     det.confidence,
			Reasoning:      "根据关键词匹配到的可能分类",
			OccupationName: det.occupation,
		}}
	}

	// Tier 4: AI adapter, unless disabled.
	if c.Completer != nil {
		if parsed := c.runAI(ctx, req, normalized); parsed != nil {
			if parsed.confidence >= threshold {
				res := c.buildResult(req, normalized, parsed.path, parsed.confidence, SourceAI, parsed.reasoning, nil)
				res.ProcessingTimeMs = time.Since(start).Milliseconds()
				c.cacheSet(key, res)
				classifyTotal.WithLabelValues(string(SourceAI)).Inc()
				return res
			}
			aiCand := []Candidate{{Path: parsed.path, Confidence: parsed.confidence, Reasoning: parsed.reasoning}}
			all := mergeCandidates(aiCand, curated, detCands, parsed.alternatives)
			res := c.buildResult(req, normalized, all[0].Path, all[0].Confidence, SourceAI, all[0].Reasoning, all)
			res.ProcessingTimeMs = time.Since(start).Milliseconds()
			classifyTotal.WithLabelValues(string(SourceAI)).Inc()
			classifyCandidates.Observe(float64(len(all)))
			return res
		}
	}

	// No AI answer. Fall back to whatever the deterministic tiers and
	// the ambiguity table produced.
	all := mergeCandidates(curated, detCands)
	if len(all) > 0 {
		source := SourceOntology
		if detOK && samePath(all[0].Path, det.path) {
			source = det.tier
		}
		res := c.buildResult(req, normalized, all[0].Path, all[0].Confidence, source, all[0].Reasoning, all)
		res.ProcessingTimeMs = time.Since(start).Milliseconds()
		classifyTotal.WithLabelValues(string(source)).Inc()
		classifyCandidates.Observe(float64(len(all)))
		return res
	}

	res := c.fallbackResult(req, normalized, "无法自动识别行业，请手动选择")
	res.ProcessingTimeMs = time.Since(start).Milliseconds()
	classifyTotal.WithLabelValues(string(SourceFallback)).Inc()
	return res
}

// samePath compares two paths by node IDs (Niche is a pointer, so
// struct equality would compare addresses).
func samePath(a, b taxonomy.Path) bool {
	if a.Category.ID != b.Category.ID || a.Segment.ID != b.Segment.ID {
		return false
	}
	switch {
	case a.Niche == nil && b.Niche == nil:
		return true
	case a.Niche != nil && b.Niche != nil:
		return a.Niche.ID == b.Niche.ID
	default:
		return false
	}
}

// runAI invokes the completion provider and validates its reply. Any
// failure (transport, timeout, malformed or out-of-taxonomy JSON)
// returns nil so the caller degrades instead of propagating.
func (c *Classifier) runAI(ctx context.Context, req Request, normalized string) *parsedReply {
	tr := otel.Tracer("classify/Classifier")
	ctx, span := tr.Start(ctx, "runAI")
	defer span.End()

	raw, err := c.Completer.Complete(ctx, systemPrompt, buildUserPrompt(normalized, req))
	if err != nil {
		span.RecordError(err)
		classifyAIFailures.WithLabelValues("provider").Inc()
		return nil
	}
	parsed, err := parseAIReply(raw, req.LockedCategoryID)
	if err != nil {
		span.RecordError(err)
		classifyAIFailures.WithLabelValues("parse").Inc()
		return nil
	}
	return parsed
}

// buildResult assembles a Result for the chosen path.
func (c *Classifier) buildResult(req Request, normalized string, path taxonomy.Path, confidence float64, source Source, reasoning string, candidates []Candidate) *Result {
	return &Result{
		Raw:        req.Description,
		Normalized: normalized,
		Path:       path,
		Confidence: confidence,
		Source:     source,
		Reasoning:  reasoning,
		Candidates: candidates,
	}
}

// fallbackResult produces the generic low-confidence answer. When the
// request locks a category, the fallback stays inside it.
func (c *Classifier) fallbackResult(req Request, normalized, reasoning string) *Result {
	confidence := c.FallbackConfidence
	if confidence <= 0 {
		confidence = 0.30
	}

	path := taxonomy.FallbackPath()
	if req.LockedCategoryID != "" {
		if segs := taxonomy.SegmentsOf(req.LockedCategoryID); len(segs) > 0 {
			if p, ok := taxonomy.ResolvePath(req.LockedCategoryID, segs[0].ID, ""); ok {
				path = p
			}
		}
	}

	return &Result{
		Raw:        req.Description,
		Normalized: normalized,
		Path:       path,
		Confidence: confidence,
		Source:     SourceFallback,
		Reasoning:  reasoning,
	}
}

// cacheGet reads and decodes a cached result. Any failure is a miss.
func (c *Classifier) cacheGet(key string) *Result {
	if c.Cache == nil {
		return nil
	}
	payload, ok := c.Cache.Get(key)
	if !ok {
		classifyCacheTotal.WithLabelValues("miss").Inc()
		return nil
	}
	var res Result
	if err := json.Unmarshal(payload, &res); err != nil {
		classifyCacheTotal.WithLabelValues("miss").Inc()
		return nil
	}
	classifyCacheTotal.WithLabelValues("hit").Inc()
	return &res
}

// cacheSet writes through decisive single-answer results only.
// Candidate-bearing results are presented for user choice, not
// reused; fallback results would pin a bad answer for the TTL.
func (c *Classifier) cacheSet(key string, res *Result) {
	if c.Cache == nil || len(res.Candidates) > 0 || res.Source == SourceFallback {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return
	}
	c.Cache.Set(key, payload)
}
