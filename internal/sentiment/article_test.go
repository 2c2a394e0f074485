package sentiment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArticle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Headline
		ok   bool
	}{
		{
			name: "flat record",
			raw:  `{"title":"Apple beats","link":"https://a","providerPublishTime":1704153600}`,
			want: Headline{Title: "Apple beats", Link: "https://a", PubDate: "2024-01-02T00:00:00Z"},
			ok:   true,
		},
		{
			name: "nested content with click-through",
			raw: `{"id":"x","content":{"title":"Nested","pubDate":"2024-05-01T12:00:00Z",
				"clickThroughUrl":{"url":"https://click"},"canonicalUrl":{"url":"https://canon"}}}`,
			want: Headline{Title: "Nested", Link: "https://click", PubDate: "2024-05-01T12:00:00Z"},
			ok:   true,
		},
		{
			name: "null click-through falls back to canonical",
			raw:  `{"content":{"title":"T","clickThroughUrl":null,"canonicalUrl":{"url":"https://canon"}}}`,
			want: Headline{Title: "T", Link: "https://canon"},
			ok:   true,
		},
		{
			name: "click-through without url does not fall through",
			raw:  `{"title":"T","clickThroughUrl":{"id":"c1"},"canonicalUrl":{"url":"https://canon"}}`,
			want: Headline{Title: "T", Link: "#"},
			ok:   true,
		},
		{
			name: "empty click-through object is skipped",
			raw:  `{"title":"T","clickThroughUrl":{},"canonicalUrl":{"url":"https://canon"}}`,
			want: Headline{Title: "T", Link: "https://canon"},
			ok:   true,
		},
		{
			name: "headline and url",
			raw:  `{"headline":"H","url":"https://u"}`,
			want: Headline{Title: "H", Link: "https://u"},
			ok:   true,
		},
		{
			name: "summary only gets placeholder link",
			raw:  `{"summary":"S"}`,
			want: Headline{Title: "S", Link: "#"},
			ok:   true,
		},
		{
			name: "empty title is skipped",
			raw:  `{"title":"","link":"https://a"}`,
			ok:   false,
		},
		{
			name: "invalid json",
			raw:  `{"title":`,
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseArticle(json.RawMessage(tt.raw))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestContainsCJK(t *testing.T) {
	assert.True(t, containsCJK("腾讯 results"))
	assert.False(t, containsCJK("Tencent results"))
	assert.False(t, containsCJK("テスト"))
}
