package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/joyjoin/industry-inference/internal/cache"
	"github.com/joyjoin/industry-inference/internal/classify"
	"github.com/joyjoin/industry-inference/internal/services"
	"github.com/joyjoin/industry-inference/internal/taxonomy"
)

// fakeInference scripts the service layer for handler tests.
type fakeInference struct {
	res *classify.Result
	err error
	got classify.Request
}

func (f *fakeInference) Classify(_ context.Context, req classify.Request) (*classify.Result, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func decisiveResult() *classify.Result {
	path, _ := taxonomy.ResolvePath("tech", "tech-ai", "tech-ai-application")
	return &classify.Result{
		Raw:        "做AI的",
		Normalized: "做ai的",
		Path:       path,
		Confidence: 0.9,
		Source:     classify.SourceSeed,
	}
}

func ambiguousResult() *classify.Result {
	pevc, _ := taxonomy.ResolvePath("finance", "finance-pevc", "")
	sec, _ := taxonomy.ResolvePath("finance", "finance-securities", "")
	return &classify.Result{
		Raw:        "做投资的",
		Normalized: "做投资的",
		Path:       pevc,
		Confidence: 0.60,
		Source:     classify.SourceOntology,
		Reasoning:  "口语表述可指多个方向",
		Candidates: []classify.Candidate{
			{Path: pevc, Confidence: 0.60, Reasoning: "通常指一级市场股权投资"},
			{Path: sec, Confidence: 0.48, Reasoning: "也可能指二级市场"},
		},
	}
}

func newInferenceRouter(svc InferenceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewInference(svc, nil, nil)
	r.POST("/inference/parse-industry", h.ParseIndustry)
	r.POST("/inference/classify", h.Classify)
	r.GET("/inference/stats", h.Stats)
	return r
}

func TestParseIndustry_Decisive_PrimaryOnly(t *testing.T) {
	fake := &fakeInference{res: decisiveResult()}
	r := newInferenceRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inference/parse-industry", strings.NewReader(`{"text":"做AI的"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp ParseIndustryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Primary == nil || resp.Primary.Value != "tech-ai-application" {
		t.Fatalf("primary = %+v", resp.Primary)
	}
	if resp.Primary.Label == "" {
		t.Fatal("primary label missing")
	}
	if len(resp.Alternatives) != 0 {
		t.Fatalf("decisive reply must carry no alternatives, got %d", len(resp.Alternatives))
	}
	if fake.got.Description != "做AI的" {
		t.Fatalf("service saw %q", fake.got.Description)
	}
}

func TestParseIndustry_Ambiguous_AlternativesOnly(t *testing.T) {
	r := newInferenceRouter(&fakeInference{res: ambiguousResult()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inference/parse-industry", strings.NewReader(`{"text":"做投资的"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp ParseIndustryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Primary != nil {
		t.Fatalf("ambiguous reply must not set primary, got %+v", resp.Primary)
	}
	if len(resp.Alternatives) != 2 {
		t.Fatalf("alternatives = %d", len(resp.Alternatives))
	}
	if resp.Alternatives[0].Value != "finance-pevc" || resp.Alternatives[0].Reasoning == "" {
		t.Fatalf("top alternative = %+v", resp.Alternatives[0])
	}
}

func TestParseIndustry_BlankText_EmptySuggestions(t *testing.T) {
	fake := &fakeInference{res: decisiveResult()}
	r := newInferenceRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inference/parse-industry", strings.NewReader(`{"text":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("blank text must 200, got %d", w.Code)
	}
	var resp ParseIndustryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Primary != nil || len(resp.Alternatives) != 0 {
		t.Fatalf("blank text must clear suggestions: %+v", resp)
	}
	if fake.got.Description != "" {
		t.Fatal("service must not be called for blank text")
	}
}

func TestParseIndustry_BadJSON(t *testing.T) {
	r := newInferenceRouter(&fakeInference{res: decisiveResult()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inference/parse-industry", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if er.Code != ErrCodeBadRequest {
		t.Fatalf("code=%s", er.Code)
	}
}

func TestClassify_ValidationErrorsMapTo400(t *testing.T) {
	r := newInferenceRouter(&fakeInference{err: services.ErrTooLong})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inference/classify", strings.NewReader(`{"description":"很长很长"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if er.Code != ErrCodeDescriptionTooLong {
		t.Fatalf("code=%s", er.Code)
	}
}

func TestClassify_PassesContextFields(t *testing.T) {
	fake := &fakeInference{res: decisiveResult()}
	r := newInferenceRouter(fake)

	body := `{"description":"做AI的","occupation_id":"occ-1","locked_category_id":"tech","source":"onboarding"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inference/classify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if fake.got.OccupationID != "occ-1" || fake.got.LockedCategoryID != "tech" || fake.got.Source != "onboarding" {
		t.Fatalf("request fields dropped: %+v", fake.got)
	}
}

func TestStats_CacheCountersOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := cache.NewMemory(cache.DefaultTTL)
	store.Set("k", []byte("v"))
	store.Get("k")
	store.Get("missing")

	r := gin.New()
	h := NewInference(&fakeInference{res: decisiveResult()}, store, nil)
	r.GET("/inference/stats", h.Stats)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/inference/stats", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp StatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.CacheHits != 1 || resp.CacheMisses != 1 || resp.CacheEntries != 1 {
		t.Fatalf("stats = %+v", resp)
	}
}
