package classify

import (
	"sort"

	"github.com/joyjoin/industry-inference/internal/taxonomy"
)

// candidateSpec is the data form of one curated candidate: taxonomy
// IDs plus confidence and a short justification shown to the user.
type candidateSpec struct {
	categoryID string
	segmentID  string
	nicheID    string
	confidence float64
	reasoning  string
	occupation string
}

// ambiguousTerms maps inputs that are too generic to commit to a
// single answer onto ranked candidate lists. Keys are matched against
// the whole normalized description. Confidences here deliberately sit
// below the decisive threshold: these entries exist to produce
// choices, not answers.
var ambiguousTerms = map[string][]candidateSpec{
	"ai": {
		{categoryID: "tech", segmentID: "tech-ai", nicheID: "tech-ai-application", confidence: 0.55, reasoning: "“AI”最常指人工智能应用方向的从业者", occupation: "AI产品/应用"},
		{categoryID: "tech", segmentID: "tech-ai", nicheID: "tech-ai-algorithm", confidence: 0.50, reasoning: "也可能是算法或模型研究方向", occupation: "算法研究员"},
		{categoryID: "tech", segmentID: "tech-ai", nicheID: "tech-ai-infra", confidence: 0.40, reasoning: "或为训练/推理基础设施方向", occupation: "AI基础设施工程师"},
	},
	"人工智能": {
		{categoryID: "tech", segmentID: "tech-ai", nicheID: "tech-ai-application", confidence: 0.55, reasoning: "人工智能行业中应用方向占比最高"},
		{categoryID: "tech", segmentID: "tech-ai", nicheID: "tech-ai-algorithm", confidence: 0.48, reasoning: "也可能从事算法与模型研究"},
	},
	"工程师": {
		{categoryID: "tech", segmentID: "tech-software", confidence: 0.50, reasoning: "“工程师”单独出现时最常见为软件工程师", occupation: "软件工程师"},
		{categoryID: "manufacturing", segmentID: "manufacturing-engineering", nicheID: "manufacturing-engineering-mech", confidence: 0.42, reasoning: "也可能是机械方向的工程师", occupation: "机械工程师"},
		{categoryID: "manufacturing", segmentID: "manufacturing-engineering", nicheID: "manufacturing-engineering-ee", confidence: 0.38, reasoning: "或为电子/电气方向", occupation: "电气工程师"},
		{categoryID: "manufacturing", segmentID: "manufacturing-engineering", nicheID: "manufacturing-engineering-civil", confidence: 0.32, reasoning: "土木/建筑工程师也常简称工程师", occupation: "土木工程师"},
	},
	"做投资的": {
		{categoryID: "finance", segmentID: "finance-pevc", confidence: 0.60, reasoning: "口语“做投资的”通常指一级市场股权投资", occupation: "投资人"},
		{categoryID: "finance", segmentID: "finance-securities", confidence: 0.48, reasoning: "也可能指二级市场证券投资", occupation: "证券从业者"},
		{categoryID: "finance", segmentID: "finance-banking", confidence: 0.30, reasoning: "少数情况下指银行资管业务"},
	},
	"投资的": {
		{categoryID: "finance", segmentID: "finance-pevc", confidence: 0.58, reasoning: "多指一级市场股权投资"},
		{categoryID: "finance", segmentID: "finance-securities", confidence: 0.46, reasoning: "也可能指二级市场投资"},
	},
	"富二代": {
		{categoryID: "finance", segmentID: "finance-pevc", confidence: 0.40, reasoning: "常参与家族资本或投资业务", occupation: "家族办公室"},
		{categoryID: "consumer", segmentID: "consumer-retail", confidence: 0.34, reasoning: "或经营家族实业/消费品生意"},
		{categoryID: "general", segmentID: "general-other", confidence: 0.28, reasoning: "描述的是身份而非职业，建议手动选择"},
	},
	"金融": {
		{categoryID: "finance", segmentID: "finance-securities", confidence: 0.52, reasoning: "“金融”最常指证券/资管方向"},
		{categoryID: "finance", segmentID: "finance-banking", confidence: 0.46, reasoning: "也可能在银行体系工作"},
		{categoryID: "finance", segmentID: "finance-pevc", confidence: 0.40, reasoning: "或从事股权投资"},
	},
	"创业": {
		{categoryID: "tech", segmentID: "tech-product", confidence: 0.48, reasoning: "创业者多集中于互联网产品方向", occupation: "创业者"},
		{categoryID: "consumer", segmentID: "consumer-retail", confidence: 0.40, reasoning: "也常见于消费/零售创业"},
	},
	"自由职业": {
		{categoryID: "media", segmentID: "media-content", confidence: 0.42, reasoning: "自由职业者多从事内容创作"},
		{categoryID: "general", segmentID: "general-other", confidence: 0.36, reasoning: "职业方向不明确，建议手动选择"},
	},
}

// ambiguousCandidates returns the curated candidate list for a
// normalized description, ranked highest confidence first, or nil
// when the input is not a known ambiguous term. A locked category
// filters the list rather than disabling it.
func ambiguousCandidates(normalized, lockedCategoryID string) []Candidate {
	specs, ok := ambiguousTerms[normalized]
	if !ok {
		return nil
	}
	out := make([]Candidate, 0, len(specs))
	for _, s := range specs {
		if lockedCategoryID != "" && s.categoryID != lockedCategoryID {
			continue
		}
		path, valid := taxonomy.ResolvePath(s.categoryID, s.segmentID, s.nicheID)
		if !valid {
			continue
		}
		out = append(out, Candidate{
			Path:           path,
			Confidence:     s.confidence,
			Reasoning:      s.reasoning,
			OccupationName: s.occupation,
		})
	}
	if len(out) == 0 {
		return nil
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}

// mergeCandidates combines candidate lists, dropping duplicates of
// the same taxonomy path (first occurrence wins) and re-ranking by
// confidence.
func mergeCandidates(lists ...[]Candidate) []Candidate {
	seen := make(map[string]struct{})
	var out []Candidate
	for _, list := range lists {
		for _, c := range list {
			key := c.Category.ID + "/" + c.Segment.ID
			if c.Niche != nil {
				key += "/" + c.Niche.ID
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}
