package research

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	system, user string
	reply        string
	err          error
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) Complete(_ context.Context, system, user string) (string, error) {
	f.system, f.user = system, user
	return f.reply, f.err
}

func TestGenerator_Generate(t *testing.T) {
	llm := &fakeLLM{reply: "# Report"}
	g := NewGenerator(llm, zerolog.Nop())

	text := strings.Repeat("Revenue and net income improved. ", 100)
	rep, err := g.Generate(context.Background(), text, LangChinese)
	require.NoError(t, err)

	_, err = uuid.Parse(rep.ID)
	assert.NoError(t, err)
	assert.Equal(t, "# Report", rep.Markdown)
	assert.Equal(t, "fake", rep.Provider)
	assert.Equal(t, LangChinese, rep.Lang)
	assert.Greater(t, rep.Chunks, 1)
	assert.Equal(t, rep.Chunks, rep.Excerpts)
	assert.Equal(t, BuildPrompt(LangChinese), llm.system)
	assert.Contains(t, llm.user, "---Excerpt 1---")
}

func TestGenerator_EmptyText(t *testing.T) {
	g := NewGenerator(&fakeLLM{}, zerolog.Nop())
	_, err := g.Generate(context.Background(), " \n ", LangEnglish)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestGenerator_LLMFailure(t *testing.T) {
	g := NewGenerator(&fakeLLM{err: errors.New("quota")}, zerolog.Nop())
	_, err := g.Generate(context.Background(), "revenue", LangEnglish)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestGenerator_RejectsNonPDF(t *testing.T) {
	g := NewGenerator(&fakeLLM{}, zerolog.Nop())
	data := []byte("not a pdf at all")
	_, err := g.GenerateFromPDF(context.Background(), bytes.NewReader(data), int64(len(data)), LangEnglish)
	assert.ErrorIs(t, err, ErrInvalidPDF)
}

func TestDeepSeekLLM_Complete(t *testing.T) {
	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"## 1. Financial Highlights"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	llm := NewDeepSeekLLM("sk-test", srv.URL, "")
	out, err := llm.Complete(context.Background(), "sys", "usr")
	require.NoError(t, err)

	assert.Equal(t, "## 1. Financial Highlights", out)
	assert.Equal(t, DeepSeekModel, req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "usr", req.Messages[1].Content)
}

func TestNewLLM_Validation(t *testing.T) {
	_, err := NewLLM(context.Background(), LLMConfig{Provider: "deepseek"})
	assert.Error(t, err)

	_, err = NewLLM(context.Background(), LLMConfig{Provider: "claude", APIKey: "k"})
	assert.Error(t, err)

	llm, err := NewLLM(context.Background(), LLMConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "deepseek", llm.Name())
}
