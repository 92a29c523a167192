package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTaxonomyRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/taxonomy", GetTaxonomy)
	return r
}

func TestGetTaxonomy_FullTree(t *testing.T) {
	r := newTaxonomyRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/taxonomy", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if w.Header().Get("ETag") == "" {
		t.Fatal("ETag missing")
	}

	var resp TaxonomyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Version == "" || len(resp.Categories) == 0 {
		t.Fatalf("empty taxonomy: %+v", resp)
	}

	var nichesSeen bool
	for _, cat := range resp.Categories {
		if len(cat.Segments) == 0 {
			t.Fatalf("category %s has no segments", cat.ID)
		}
		for _, seg := range cat.Segments {
			if len(seg.Niches) > 0 {
				nichesSeen = true
			}
		}
	}
	if !nichesSeen {
		t.Fatal("full depth must include niches")
	}
}

func TestGetTaxonomy_DepthLimits(t *testing.T) {
	r := newTaxonomyRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/taxonomy?depth=1", nil))
	var resp TaxonomyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, cat := range resp.Categories {
		if len(cat.Segments) != 0 {
			t.Fatalf("depth=1 leaked segments under %s", cat.ID)
		}
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/taxonomy?depth=2", nil))
	resp = TaxonomyResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, cat := range resp.Categories {
		for _, seg := range cat.Segments {
			if len(seg.Niches) != 0 {
				t.Fatalf("depth=2 leaked niches under %s", seg.ID)
			}
		}
	}
}

func TestGetTaxonomy_Conditional304(t *testing.T) {
	r := newTaxonomyRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/taxonomy", nil))
	etag := w.Header().Get("ETag")

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/taxonomy", nil)
	req.Header.Set("If-None-Match", etag)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotModified {
		t.Fatalf("status=%d, want 304", w.Code)
	}

	// Depth changes the representation and therefore the ETag.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/taxonomy?depth=1", nil)
	req.Header.Set("If-None-Match", etag)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("different depth must not 304, got %d", w.Code)
	}
}
