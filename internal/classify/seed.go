package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/joyjoin/industry-inference/internal/taxonomy"
)

// rule maps a phrase to a taxonomy path with a fixed confidence.
// Rules are evaluated top-to-bottom, first match wins, so tuning is a
// data edit, not a code change. Patterns are matched against the
// normalized description (lowercase, half-width).
type rule struct {
	patterns   []string
	exact      bool // whole-string equality instead of substring
	categoryID string
	segmentID  string
	nicheID    string
	confidence float64
	occupation string
}

// match is a resolved deterministic hit.
type match struct {
	path       taxonomy.Path
	confidence float64
	occupation string
	tier       Source
}

// seedRules are curated high-confidence phrase → path mappings. They
// short-circuit the pipeline when their confidence clears the
// decisive threshold.
var seedRules = []rule{
	// Healthcare
	{patterns: []string{"医生", "主治医师", "外科医生", "内科医生"}, categoryID: "healthcare", segmentID: "healthcare-clinical", confidence: 0.95, occupation: "医生"},
	{patterns: []string{"护士"}, categoryID: "healthcare", segmentID: "healthcare-clinical", confidence: 0.94, occupation: "护士"},
	{patterns: []string{"药物研发", "新药研发", "药企研发"}, categoryID: "healthcare", segmentID: "healthcare-pharma", confidence: 0.9},

	// Tech: specific engineer titles before the generic ones
	{patterns: []string{"算法工程师", "机器学习工程师", "深度学习工程师"}, categoryID: "tech", segmentID: "tech-ai", nicheID: "tech-ai-algorithm", confidence: 0.93, occupation: "算法工程师"},
	{patterns: []string{"ai工程师", "人工智能工程师", "大模型工程师"}, categoryID: "tech", segmentID: "tech-ai", nicheID: "tech-ai-application", confidence: 0.9, occupation: "AI工程师"},
	{patterns: []string{"后端工程师", "后端开发", "服务端开发"}, categoryID: "tech", segmentID: "tech-software", nicheID: "tech-software-backend", confidence: 0.92, occupation: "后端工程师"},
	{patterns: []string{"前端工程师", "前端开发"}, categoryID: "tech", segmentID: "tech-software", nicheID: "tech-software-frontend", confidence: 0.92, occupation: "前端工程师"},
	{patterns: []string{"ios开发", "安卓开发", "android开发", "移动端开发"}, categoryID: "tech", segmentID: "tech-software", nicheID: "tech-software-mobile", confidence: 0.9},
	{patterns: []string{"程序员", "软件工程师", "软件开发"}, categoryID: "tech", segmentID: "tech-software", confidence: 0.86, occupation: "软件工程师"},
	{patterns: []string{"产品经理"}, categoryID: "tech", segmentID: "tech-product", confidence: 0.9, occupation: "产品经理"},

	// Finance: the bare word "投资" is a decisive PE/VC signal
	{patterns: []string{"投资人", "风投", "创投", "股权投资", "pe/vc", "vc"}, categoryID: "finance", segmentID: "finance-pevc", confidence: 0.92, occupation: "投资人"},
	{patterns: []string{"投资"}, exact: true, categoryID: "finance", segmentID: "finance-pevc", confidence: 0.85},
	{patterns: []string{"券商", "证券分析师", "基金经理", "二级市场"}, categoryID: "finance", segmentID: "finance-securities", confidence: 0.9},
	{patterns: []string{"银行柜员", "银行客户经理"}, categoryID: "finance", segmentID: "finance-banking", confidence: 0.9},
	{patterns: []string{"精算师", "保险经纪"}, categoryID: "finance", segmentID: "finance-insurance", confidence: 0.9},

	// Legal & professional services
	{patterns: []string{"律师", "法务"}, categoryID: "legal", segmentID: "legal-law", confidence: 0.95, occupation: "律师"},
	{patterns: []string{"会计师", "审计师", "注册会计"}, categoryID: "legal", segmentID: "legal-accounting", confidence: 0.92, occupation: "会计师"},
	{patterns: []string{"战略咨询", "管理咨询", "咨询顾问"}, categoryID: "legal", segmentID: "legal-consulting", confidence: 0.88},

	// Education
	{patterns: []string{"教师", "老师", "班主任"}, categoryID: "education", segmentID: "education-k12", confidence: 0.88, occupation: "教师"},
	{patterns: []string{"大学教授", "博士后", "科研人员", "研究员"}, categoryID: "education", segmentID: "education-higher", confidence: 0.9},

	// Media
	{patterns: []string{"记者", "编辑"}, categoryID: "media", segmentID: "media-content", confidence: 0.88},
	{patterns: []string{"自媒体", "博主", "up主"}, categoryID: "media", segmentID: "media-content", confidence: 0.85},
	{patterns: []string{"导演", "演员", "编剧"}, categoryID: "media", segmentID: "media-entertainment", confidence: 0.9},
	{patterns: []string{"品牌营销", "市场推广", "广告策划"}, categoryID: "media", segmentID: "media-marketing", confidence: 0.86},

	// Consumer
	{patterns: []string{"电商运营", "淘宝店", "跨境电商"}, categoryID: "consumer", segmentID: "consumer-retail", confidence: 0.88},
	{patterns: []string{"餐厅老板", "咖啡店", "主厨", "甜品师"}, categoryID: "consumer", segmentID: "consumer-fnb", confidence: 0.88},

	// Public sector
	{patterns: []string{"公务员", "事业单位"}, categoryID: "public", segmentID: "public-government", confidence: 0.92, occupation: "公务员"},
}

// ontologyRules are looser keyword → path mappings with mid-range
// confidence. They catch descriptions that mention a workplace or an
// industry rather than a title ("在银行工作", "做电商的").
var ontologyRules = []rule{
	{patterns: []string{"银行"}, categoryID: "finance", segmentID: "finance-banking", confidence: 0.82},
	{patterns: []string{"保险"}, categoryID: "finance", segmentID: "finance-insurance", confidence: 0.75},
	{patterns: []string{"基金", "证券", "炒股"}, categoryID: "finance", segmentID: "finance-securities", confidence: 0.72},
	{patterns: []string{"医院", "诊所"}, categoryID: "healthcare", segmentID: "healthcare-clinical", confidence: 0.82},
	{patterns: []string{"医药", "药厂"}, categoryID: "healthcare", segmentID: "healthcare-pharma", confidence: 0.72},
	{patterns: []string{"健身", "养生", "心理咨询"}, categoryID: "healthcare", segmentID: "healthcare-services", confidence: 0.7},
	{patterns: []string{"学校", "教育机构"}, categoryID: "education", segmentID: "education-k12", confidence: 0.7},
	{patterns: []string{"培训"}, categoryID: "education", segmentID: "education-training", confidence: 0.68},
	{patterns: []string{"互联网", "科技公司"}, categoryID: "tech", segmentID: "tech-product", confidence: 0.65},
	{patterns: []string{"人工智能", "大模型"}, categoryID: "tech", segmentID: "tech-ai", confidence: 0.72},
	{patterns: []string{"硬件", "芯片"}, categoryID: "tech", segmentID: "tech-hardware", confidence: 0.72},
	{patterns: []string{"电商", "零售"}, categoryID: "consumer", segmentID: "consumer-retail", confidence: 0.72},
	{patterns: []string{"餐饮", "食品"}, categoryID: "consumer", segmentID: "consumer-fnb", confidence: 0.72},
	{patterns: []string{"时尚", "美妆", "服装"}, categoryID: "consumer", segmentID: "consumer-fashion", confidence: 0.7},
	{patterns: []string{"律所", "法律"}, categoryID: "legal", segmentID: "legal-law", confidence: 0.72},
	{patterns: []string{"咨询公司"}, categoryID: "legal", segmentID: "legal-consulting", confidence: 0.7},
	{patterns: []string{"传媒", "媒体"}, categoryID: "media", segmentID: "media-content", confidence: 0.68},
	{patterns: []string{"影视", "娱乐"}, categoryID: "media", segmentID: "media-entertainment", confidence: 0.7},
	{patterns: []string{"广告"}, categoryID: "media", segmentID: "media-marketing", confidence: 0.7},
	{patterns: []string{"工厂", "制造"}, categoryID: "manufacturing", segmentID: "manufacturing-operations", confidence: 0.7},
	{patterns: []string{"能源", "化工", "电力"}, categoryID: "manufacturing", segmentID: "manufacturing-energy", confidence: 0.7},
	{patterns: []string{"政府", "体制内"}, categoryID: "public", segmentID: "public-government", confidence: 0.72},
	{patterns: []string{"公益", "ngo", "非营利"}, categoryID: "public", segmentID: "public-nonprofit", confidence: 0.75},
}

// matchRules runs an ordered rule list against normalized text and
// returns the first hit. Exact rules require whole-string equality;
// the rest match by substring. A lockedCategoryID discards hits
// outside that category instead of returning them.
func matchRules(rules []rule, normalized, lockedCategoryID string, tier Source) (match, bool) {
	if normalized == "" {
		return match{}, false
	}
	for _, r := range rules {
		for _, p := range r.patterns {
			hit := false
			if r.exact {
				hit = normalized == p
			} else {
				hit = strings.Contains(normalized, p)
			}
			if !hit {
				continue
			}
			if lockedCategoryID != "" && r.categoryID != lockedCategoryID {
				continue
			}
			path, ok := taxonomy.ResolvePath(r.categoryID, r.segmentID, r.nicheID)
			if !ok {
				continue
			}
			return match{path: path, confidence: r.confidence, occupation: r.occupation, tier: tier}, true
		}
	}
	return match{}, false
}

// matchSeed looks the normalized description up in the seed
// dictionary.
func matchSeed(normalized, lockedCategoryID string) (match, bool) {
	return matchRules(seedRules, normalized, lockedCategoryID, SourceSeed)
}

// matchOntology runs the looser keyword tier. Very short inputs are
// skipped: a 1–2 rune description that only names an industry keyword
// is exactly the ambiguous case the candidate layer exists for.
func matchOntology(normalized, lockedCategoryID string) (match, bool) {
	if utf8.RuneCountInString(normalized) < 2 {
		return match{}, false
	}
	return matchRules(ontologyRules, normalized, lockedCategoryID, SourceOntology)
}
