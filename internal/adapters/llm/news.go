package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/mindflow/sanctuary/internal/domain"
)

// Headlines implements domain.NewsProvider using search-grounded generation.
func (g *GeminiProvider) Headlines(ctx context.Context) ([]domain.NewsItem, error) {
	contents := []*genai.Content{
		genai.NewContentFromText("Generate the current mental health news feed.", genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.newsModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(newsInstruction, genai.RoleUser),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("llm: news generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return nil, fmt.Errorf("llm: news feed returned empty text")
	}

	items := ParseNewsFeed(text)
	if len(items) == 0 {
		return nil, fmt.Errorf("llm: news feed had no usable records")
	}

	// Best effort: pair grounding sources with items in order.
	var urls []string
	for _, c := range extractCitations(res) {
		if c.Web != nil {
			urls = append(urls, c.Web.URI)
		}
	}
	for i := range items {
		if i < len(urls) {
			items[i].URL = urls[i]
		}
	}

	return items, nil
}

// ArticleBody implements the best-effort article enrichment.
func (g *GeminiProvider) ArticleBody(ctx context.Context, title string) (*domain.Article, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf("Write the full article for the headline: %q", title), genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.newsModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(articleInstruction, genai.RoleUser),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("llm: article generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return nil, fmt.Errorf("llm: article returned empty text")
	}

	article := &domain.Article{HTML: text}
	for _, c := range extractCitations(res) {
		if c.Web != nil {
			article.SourceURL = c.Web.URI
			break
		}
	}
	return article, nil
}
