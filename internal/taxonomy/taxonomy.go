// Package taxonomy defines the three-level industry taxonomy
// (category → segment → optional niche) used by the classification
// pipeline. The tables are immutable reference data: they are defined
// once here and never mutated at runtime, so all accessors are safe
// for concurrent use.
package taxonomy

import "sort"

// Level is a single taxonomy node at any depth.
type Level struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Path is a fully resolved classification: category and segment are
// always present, niche only when the taxonomy has a third level and
// the classifier was confident enough to assign it.
type Path struct {
	Category Level  `json:"category"`
	Segment  Level  `json:"segment"`
	Niche    *Level `json:"niche,omitempty"`
}

// version identifies the taxonomy revision. Bump when tables change so
// HTTP caches (ETag on GET /taxonomy) invalidate.
const version = "2025-08"

// Version returns the taxonomy revision string.
func Version() string { return version }

// Fallback IDs used when no tier produces a usable classification.
const (
	FallbackCategoryID = "general"
	FallbackSegmentID  = "general-other"
)

type segment struct {
	Level
	categoryID string
	niches     []Level
}

var categories = []Level{
	{ID: "tech", Label: "互联网/科技"},
	{ID: "finance", Label: "金融/投资"},
	{ID: "healthcare", Label: "医疗/健康"},
	{ID: "education", Label: "教育/科研"},
	{ID: "media", Label: "文化/传媒"},
	{ID: "consumer", Label: "消费/零售"},
	{ID: "manufacturing", Label: "制造/工业"},
	{ID: "legal", Label: "法律/专业服务"},
	{ID: "public", Label: "公共/非营利"},
	{ID: "general", Label: "其他"},
}

var segments = []segment{
	{Level: Level{ID: "tech-software", Label: "软件开发"}, categoryID: "tech", niches: []Level{
		{ID: "tech-software-backend", Label: "后端开发"},
		{ID: "tech-software-frontend", Label: "前端开发"},
		{ID: "tech-software-mobile", Label: "移动端开发"},
	}},
	{Level: Level{ID: "tech-ai", Label: "人工智能"}, categoryID: "tech", niches: []Level{
		{ID: "tech-ai-algorithm", Label: "算法研究"},
		{ID: "tech-ai-application", Label: "AI应用"},
		{ID: "tech-ai-infra", Label: "AI基础设施"},
	}},
	{Level: Level{ID: "tech-product", Label: "互联网产品"}, categoryID: "tech"},
	{Level: Level{ID: "tech-hardware", Label: "智能硬件"}, categoryID: "tech"},

	{Level: Level{ID: "finance-pevc", Label: "股权投资/风投"}, categoryID: "finance", niches: []Level{
		{ID: "finance-pevc-early", Label: "早期投资"},
		{ID: "finance-pevc-buyout", Label: "并购投资"},
	}},
	{Level: Level{ID: "finance-securities", Label: "证券/二级市场"}, categoryID: "finance"},
	{Level: Level{ID: "finance-banking", Label: "银行"}, categoryID: "finance"},
	{Level: Level{ID: "finance-insurance", Label: "保险"}, categoryID: "finance"},

	{Level: Level{ID: "healthcare-clinical", Label: "临床医疗"}, categoryID: "healthcare"},
	{Level: Level{ID: "healthcare-pharma", Label: "医药研发"}, categoryID: "healthcare"},
	{Level: Level{ID: "healthcare-services", Label: "健康服务"}, categoryID: "healthcare"},

	{Level: Level{ID: "education-k12", Label: "基础教育"}, categoryID: "education"},
	{Level: Level{ID: "education-higher", Label: "高等教育/科研"}, categoryID: "education"},
	{Level: Level{ID: "education-training", Label: "职业培训"}, categoryID: "education"},

	{Level: Level{ID: "media-content", Label: "内容创作"}, categoryID: "media"},
	{Level: Level{ID: "media-entertainment", Label: "影视/娱乐"}, categoryID: "media"},
	{Level: Level{ID: "media-marketing", Label: "市场营销/广告"}, categoryID: "media"},

	{Level: Level{ID: "consumer-retail", Label: "零售/电商"}, categoryID: "consumer"},
	{Level: Level{ID: "consumer-fnb", Label: "餐饮/食品"}, categoryID: "consumer"},
	{Level: Level{ID: "consumer-fashion", Label: "时尚/美妆"}, categoryID: "consumer"},

	{Level: Level{ID: "manufacturing-engineering", Label: "工程技术"}, categoryID: "manufacturing", niches: []Level{
		{ID: "manufacturing-engineering-mech", Label: "机械工程"},
		{ID: "manufacturing-engineering-ee", Label: "电子/电气工程"},
		{ID: "manufacturing-engineering-civil", Label: "土木/建筑工程"},
	}},
	{Level: Level{ID: "manufacturing-operations", Label: "生产运营"}, categoryID: "manufacturing"},
	{Level: Level{ID: "manufacturing-energy", Label: "能源/化工"}, categoryID: "manufacturing"},

	{Level: Level{ID: "legal-law", Label: "律师/法务"}, categoryID: "legal"},
	{Level: Level{ID: "legal-consulting", Label: "战略咨询"}, categoryID: "legal"},
	{Level: Level{ID: "legal-accounting", Label: "财务/审计"}, categoryID: "legal"},

	{Level: Level{ID: "public-government", Label: "政府/事业单位"}, categoryID: "public"},
	{Level: Level{ID: "public-nonprofit", Label: "公益/非营利"}, categoryID: "public"},

	{Level: Level{ID: "general-other", Label: "其他/暂不确定"}, categoryID: "general"},
}

var (
	categoryByID = make(map[string]Level, len(categories))
	segmentByID  = make(map[string]segment, len(segments))
	nicheByID    = make(map[string]struct {
		Level
		segmentID string
	})
	segmentsByCategory = make(map[string][]Level, len(categories))
)

func init() {
	for _, c := range categories {
		categoryByID[c.ID] = c
	}
	for _, s := range segments {
		segmentByID[s.ID] = s
		segmentsByCategory[s.categoryID] = append(segmentsByCategory[s.categoryID], s.Level)
		for _, n := range s.niches {
			nicheByID[n.ID] = struct {
				Level
				segmentID string
			}{n, s.ID}
		}
	}
}

// Categories returns all top-level categories in display order.
func Categories() []Level {
	out := make([]Level, len(categories))
	copy(out, categories)
	return out
}

// SegmentsOf returns the segments under a category, or nil for an
// unknown category.
func SegmentsOf(categoryID string) []Level {
	src := segmentsByCategory[categoryID]
	if src == nil {
		return nil
	}
	out := make([]Level, len(src))
	copy(out, src)
	return out
}

// NichesOf returns the niches under a segment. Many segments have no
// third level; those return nil.
func NichesOf(segmentID string) []Level {
	s, ok := segmentByID[segmentID]
	if !ok || len(s.niches) == 0 {
		return nil
	}
	out := make([]Level, len(s.niches))
	copy(out, s.niches)
	return out
}

// LookupCategory resolves a category ID.
func LookupCategory(id string) (Level, bool) {
	c, ok := categoryByID[id]
	return c, ok
}

// LookupSegment resolves a segment ID and reports its parent category.
func LookupSegment(id string) (seg Level, categoryID string, ok bool) {
	s, found := segmentByID[id]
	if !found {
		return Level{}, "", false
	}
	return s.Level, s.categoryID, true
}

// LookupNiche resolves a niche ID and reports its parent segment.
func LookupNiche(id string) (niche Level, segmentID string, ok bool) {
	n, found := nicheByID[id]
	if !found {
		return Level{}, "", false
	}
	return n.Level, n.segmentID, true
}

// ValidLevel reports whether l is a well-formed node reference: both ID
// and Label non-empty.
func ValidLevel(l Level) bool {
	return l.ID != "" && l.Label != ""
}

// ValidPath reports whether the (category, segment, niche) triple is
// internally consistent: the segment must belong to the category and
// the niche, when present, to the segment.
func ValidPath(categoryID, segmentID, nicheID string) bool {
	s, ok := segmentByID[segmentID]
	if !ok || s.categoryID != categoryID {
		return false
	}
	if nicheID == "" {
		return true
	}
	_, parentSeg, found := LookupNiche(nicheID)
	return found && parentSeg == segmentID
}

// ResolvePath builds a full Path from IDs, filling in labels from the
// tables. It fails when the triple is not a valid taxonomy path.
func ResolvePath(categoryID, segmentID, nicheID string) (Path, bool) {
	if !ValidPath(categoryID, segmentID, nicheID) {
		return Path{}, false
	}
	cat := categoryByID[categoryID]
	seg := segmentByID[segmentID]
	p := Path{Category: cat, Segment: seg.Level}
	if nicheID != "" {
		n, _, _ := LookupNiche(nicheID)
		p.Niche = &n
	}
	return p, true
}

// FallbackPath returns the generic bucket used when classification
// cannot produce a usable result.
func FallbackPath() Path {
	p, _ := ResolvePath(FallbackCategoryID, FallbackSegmentID, "")
	return p
}

// SegmentIDs returns every segment ID in sorted order. Used to embed
// the valid ID space into AI prompts.
func SegmentIDs() []string {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		out = append(out, s.ID)
	}
	sort.Strings(out)
	return out
}
