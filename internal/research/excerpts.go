package research

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultQuery describes the parts of a report worth sending to the model.
const DefaultQuery = "Financial statements, revenue, net income, profit margin, balance sheet, risk factors, business outlook, management discussion"

// DefaultExcerpts is the number of chunks sent to the model.
const DefaultExcerpts = 25

// SelectExcerpts returns up to k chunks ranked by how many query terms they
// contain, then restores document order.
func SelectExcerpts(chunks []string, query string, k int) []string {
	if k <= 0 || len(chunks) == 0 {
		return nil
	}
	terms := make(map[string]struct{})
	for _, t := range tokenize(query) {
		terms[t] = struct{}{}
	}

	type ranked struct {
		idx   int
		score int
	}
	scores := make([]ranked, len(chunks))
	for i, c := range chunks {
		s := 0
		for _, tok := range tokenize(c) {
			if _, ok := terms[tok]; ok {
				s++
			}
		}
		scores[i] = ranked{idx: i, score: s}
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if len(scores) > k {
		scores = scores[:k]
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].idx < scores[j].idx })

	out := make([]string, len(scores))
	for i, r := range scores {
		out[i] = chunks[r.idx]
	}
	return out
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
