package research

import (
	"fmt"
	"strings"
)

// Lang selects the language of the generated report.
type Lang string

const (
	LangEnglish Lang = "en"
	LangChinese Lang = "zh"
)

// ParseLang accepts "en"/"english" and "zh"/"cn"/"chinese", case-insensitively.
func ParseLang(s string) (Lang, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "en", "english":
		return LangEnglish, nil
	case "zh", "cn", "chinese":
		return LangChinese, nil
	default:
		return "", fmt.Errorf("unsupported report language %q", s)
	}
}

const systemPromptEN = `You are a rigorous equity research analyst. Using only the financial report excerpts provided, write a deep investment research report in Markdown.

Requirements:
1. Lead with data. Pull out concrete figures such as revenue, net income, growth rates and margins, and present them in Markdown tables.
2. Use exactly these sections:
   ## 1. Financial Highlights (key metrics table with year-over-year changes)
   ## 2. Operational Analysis (drivers of growth or decline)
   ## 3. Risk Factors (specific operational and market risks)
   ## 4. Future Outlook (management guidance)
3. Be direct and objective. Call out problems plainly.
4. When a figure is not in the excerpts, write "Not Disclosed".`

const systemPromptZH = `你是一位严谨的证券研究分析师。请仅依据所提供的财报片段，用 Markdown 撰写一份深度投资研报。

要求：
1. 数据优先：提取营收、净利润、增长率、利润率等具体数字，并以 Markdown 表格呈现。
2. 严格使用以下章节：
   ## 一、核心财务摘要（关键指标表及同比变化）
   ## 二、经营分析（增长或下滑的原因）
   ## 三、风险提示（具体的经营与市场风险）
   ## 四、未来展望（管理层指引）
3. 客观直接，明确指出问题。
4. 片段中没有的数据请注明"未披露"。`

// BuildPrompt returns the system prompt for lang.
func BuildPrompt(lang Lang) string {
	if lang == LangChinese {
		return systemPromptZH
	}
	return systemPromptEN
}

// BuildUserMessage numbers the excerpts and wraps them in a request line.
func BuildUserMessage(excerpts []string, lang Lang) string {
	var b strings.Builder
	if lang == LangChinese {
		b.WriteString("请基于以下财报原文生成研报：\n")
	} else {
		b.WriteString("Please write the report from the following excerpts:\n")
	}
	for i, e := range excerpts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "---Excerpt %d---\n%s", i+1, e)
	}
	return b.String()
}
