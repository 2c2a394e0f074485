package research

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Report is a generated research note.
type Report struct {
	ID        string    `json:"id"`
	Lang      Lang      `json:"lang"`
	Provider  string    `json:"provider"`
	Chunks    int       `json:"chunks"`
	Excerpts  int       `json:"excerpts"`
	Markdown  string    `json:"markdown"`
	CreatedAt time.Time `json:"created_at"`
}

// Generator runs chunking, excerpt selection and the LLM call.
type Generator struct {
	llm LLM
	log zerolog.Logger
	now func() time.Time
}

func NewGenerator(llm LLM, log zerolog.Logger) *Generator {
	return &Generator{
		llm: llm,
		log: log.With().Str("component", "research").Logger(),
		now: time.Now,
	}
}

// GenerateFromPDF extracts the document text and generates a report from it.
func (g *Generator) GenerateFromPDF(ctx context.Context, r io.ReaderAt, size int64, lang Lang) (*Report, error) {
	text, err := ExtractText(r, size)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, text, lang)
}

// Generate writes a report from already extracted text.
func (g *Generator) Generate(ctx context.Context, text string, lang Lang) (*Report, error) {
	chunks := Chunk(text, DefaultChunkSize, DefaultChunkOverlap)
	if len(chunks) == 0 {
		return nil, ErrNoText
	}
	excerpts := SelectExcerpts(chunks, DefaultQuery, DefaultExcerpts)

	id := uuid.NewString()
	log := g.log.With().Str("report_id", id).Str("provider", g.llm.Name()).Logger()
	log.Info().Int("chunks", len(chunks)).Int("excerpts", len(excerpts)).Msg("generating research report")

	start := g.now()
	md, err := g.llm.Complete(ctx, BuildPrompt(lang), BuildUserMessage(excerpts, lang))
	if err != nil {
		log.Error().Err(err).Msg("llm call failed")
		return nil, fmt.Errorf("generate report: %w", err)
	}
	log.Info().Dur("elapsed", g.now().Sub(start)).Msg("research report ready")

	return &Report{
		ID:        id,
		Lang:      lang,
		Provider:  g.llm.Name(),
		Chunks:    len(chunks),
		Excerpts:  len(excerpts),
		Markdown:  md,
		CreatedAt: g.now().UTC(),
	}, nil
}
