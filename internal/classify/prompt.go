package classify

import (
	"fmt"
	"strings"

	"github.com/joyjoin/industry-inference/internal/taxonomy"
)

// systemPrompt pins the model to the classification contract: JSON
// only, IDs drawn from the embedded taxonomy, honest confidence.
const systemPrompt = `你是一个行业分类助手。根据用户的职业描述，从给定的行业分类体系中选择最合适的分类。
只输出 JSON，不要输出任何其他文字。输出格式：
{"category_id":"...","segment_id":"...","niche_id":"...","confidence":0.0,"reasoning":"...","alternatives":[{"category_id":"...","segment_id":"...","niche_id":"...","confidence":0.0,"reasoning":"..."}]}
规则：
- category_id 和 segment_id 必须来自下面列出的 ID，niche_id 可为空字符串。
- confidence 取值 0 到 1，表示你对首选分类的把握。
- 当描述含糊时给出最多 3 个 alternatives，按把握从高到低排列。
- reasoning 用一句简短中文说明理由。`

// buildUserPrompt renders the taxonomy ID space and the description
// (plus any locking context) into the user message.
func buildUserPrompt(normalized string, req Request) string {
	var b strings.Builder

	b.WriteString("可用的行业分类（category_id: segment_id 列表）：\n")
	for _, cat := range taxonomy.Categories() {
		segs := taxonomy.SegmentsOf(cat.ID)
		ids := make([]string, 0, len(segs))
		for _, s := range segs {
			ids = append(ids, s.ID)
		}
		fmt.Fprintf(&b, "- %s (%s): %s\n", cat.ID, cat.Label, strings.Join(ids, ", "))
	}

	if req.LockedCategoryID != "" {
		if cat, ok := taxonomy.LookupCategory(req.LockedCategoryID); ok {
			fmt.Fprintf(&b, "\n约束：用户已选定大类 %s（%s），分类结果必须落在该大类内。\n", cat.ID, cat.Label)
		}
	}
	if req.OccupationID != "" {
		fmt.Fprintf(&b, "补充上下文：用户此前选择过职业条目 %s。\n", req.OccupationID)
	}

	fmt.Fprintf(&b, "\n职业描述：%q\n", normalized)
	return b.String()
}
