// Taxonomy HTTP handler.
//
// GET /taxonomy returns the full three-level industry tree so clients can
// render pickers without hardcoding it. The tree is process-static, so the
// ETag is derived from the taxonomy version and conditional requests are
// served with 304.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joyjoin/industry-inference/internal/taxonomy"
	"github.com/joyjoin/industry-inference/internal/utils"
)

// TaxonomyNiche is one leaf entry of the taxonomy tree response.
type TaxonomyNiche struct {
	ID    string `json:"id" example:"tech-ai-application"`
	Label string `json:"label" example:"AI应用"`
}

// TaxonomySegment is one mid-level entry of the taxonomy tree response.
type TaxonomySegment struct {
	ID     string          `json:"id" example:"tech-ai"`
	Label  string          `json:"label" example:"人工智能"`
	Niches []TaxonomyNiche `json:"niches,omitempty"`
}

// TaxonomyCategory is one top-level entry of the taxonomy tree response.
type TaxonomyCategory struct {
	ID       string            `json:"id" example:"tech"`
	Label    string            `json:"label" example:"科技/互联网"`
	Segments []TaxonomySegment `json:"segments"`
}

// TaxonomyResponse wraps the taxonomy tree and its version.
type TaxonomyResponse struct {
	Version    string             `json:"version" example:"2025-08"`
	Categories []TaxonomyCategory `json:"categories"`
}

// GetTaxonomy godoc
// @ID          getTaxonomy
// @Summary     Get the industry taxonomy
// @Description Returns the full category → segment → niche tree. Supports weak ETag via If-None-Match and may return 304. depth=1 limits the reply to categories, depth=2 omits niches.
// @Tags        Taxonomy
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       depth          query   int     false "Tree depth (1-3)" minimum(1) maximum(3) default(3)
//
// @Success     200  {object} handlers.TaxonomyResponse
// @Header      200  {string} ETag "Weak ETag for the current taxonomy version"
// @Success     304  {string} string "Not Modified"
// @Router      /taxonomy [get]
func GetTaxonomy(c *gin.Context) {
	depth := utils.AtoiDefault(c.Query("depth"), 3)
	if depth < 1 {
		depth = 1
	}
	if depth > 3 {
		depth = 3
	}

	etag := fmt.Sprintf(`W/"taxonomy:%s:%d"`, taxonomy.Version(), depth)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return
	}

	resp := TaxonomyResponse{Version: taxonomy.Version()}
	for _, cat := range taxonomy.Categories() {
		tc := TaxonomyCategory{ID: cat.ID, Label: cat.Label}
		if depth >= 2 {
			for _, seg := range taxonomy.SegmentsOf(cat.ID) {
				ts := TaxonomySegment{ID: seg.ID, Label: seg.Label}
				if depth >= 3 {
					for _, n := range taxonomy.NichesOf(seg.ID) {
						ts.Niches = append(ts.Niches, TaxonomyNiche{ID: n.ID, Label: n.Label})
					}
				}
				tc.Segments = append(tc.Segments, ts)
			}
		}
		resp.Categories = append(resp.Categories, tc)
	}
	ok(c, http.StatusOK, resp)
}
