package sentiment

import (
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"
)

// Headline is the provider-independent view of one news record.
type Headline struct {
	Title   string
	Link    string
	PubDate string
}

// ParseArticle reads a news record in any of the shapes providers emit:
// flat, or nested under "content". It returns ok=false when no title can be
// found.
func ParseArticle(raw json.RawMessage) (Headline, bool) {
	if !gjson.ValidBytes(raw) {
		return Headline{}, false
	}
	body := gjson.ParseBytes(raw)
	if content := body.Get("content"); content.IsObject() {
		body = content
	}

	title := firstString(body, "title", "headline", "summary")
	if title == "" {
		return Headline{}, false
	}

	return Headline{Title: title, Link: resolveLink(body), PubDate: pubDate(body)}, true
}

// resolveLink picks the first non-empty link object (click-through, then
// canonical) and uses its url, or "#" when that object has none. Without
// either object it falls back to the flat link and url fields.
func resolveLink(body gjson.Result) string {
	for _, key := range []string{"clickThroughUrl", "canonicalUrl"} {
		obj := body.Get(key)
		if !obj.IsObject() || len(obj.Map()) == 0 {
			continue
		}
		if u := obj.Get("url"); u.Type == gjson.String && u.Str != "" {
			return u.Str
		}
		return "#"
	}
	if link := firstString(body, "link", "url"); link != "" {
		return link
	}
	return "#"
}

func firstString(body gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := body.Get(p); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

// pubDate prefers the ISO pubDate string and falls back to an epoch
// providerPublishTime rendered as RFC 3339.
func pubDate(body gjson.Result) string {
	if v := body.Get("pubDate"); v.Type == gjson.String && v.Str != "" {
		return v.Str
	}
	switch v := body.Get("providerPublishTime"); v.Type {
	case gjson.Number:
		return time.Unix(v.Int(), 0).UTC().Format(time.RFC3339)
	case gjson.String:
		return v.Str
	}
	return ""
}

// containsCJK reports whether s has a CJK unified ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}
