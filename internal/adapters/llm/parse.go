package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/mindflow/sanctuary/internal/domain"
)

// riskJSON is the analyzer's strict wire shape. Pointers distinguish a
// missing field from a zero value.
type riskJSON struct {
	SentimentScore *float64 `json:"sentimentScore"`
	RiskLevel      *string  `json:"riskLevel"`
	Flags          []string `json:"flags"`
	Reasoning      *string  `json:"reasoning"`
}

// ParseRiskAssessment validates the analyzer's JSON reply. Any deviation
// from the contracted shape is an error; out-of-range sentiment is clamped
// rather than passed through.
func ParseRiskAssessment(raw []byte, now time.Time) (*domain.RiskAssessment, error) {
	var r riskJSON
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decoding risk json: %w", err)
	}
	if r.SentimentScore == nil || r.RiskLevel == nil || r.Flags == nil || r.Reasoning == nil {
		return nil, fmt.Errorf("risk json missing required fields")
	}
	if !domain.ValidRiskLevel(*r.RiskLevel) {
		return nil, fmt.Errorf("unknown risk level %q", *r.RiskLevel)
	}

	sentiment := *r.SentimentScore
	if sentiment > 10 {
		sentiment = 10
	} else if sentiment < -10 {
		sentiment = -10
	}

	return &domain.RiskAssessment{
		Level:      domain.RiskLevel(*r.RiskLevel),
		Sentiment:  sentiment,
		Flags:      r.Flags,
		Rationale:  *r.Reasoning,
		AssessedAt: now,
	}, nil
}

// extractCitations collects web and map-place references from the response's
// grounding metadata.
func extractCitations(res *genai.GenerateContentResponse) []domain.Citation {
	var out []domain.Citation
	for _, cand := range res.Candidates {
		if cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if w := chunk.Web; w != nil && w.URI != "" {
				out = append(out, domain.Citation{
					Web: &domain.WebCitation{URI: w.URI, Title: w.Title},
				})
			}
			if m := chunk.Maps; m != nil && m.URI != "" {
				out = append(out, domain.Citation{
					Place: &domain.PlaceCitation{PlaceID: m.PlaceID, Title: m.Title, URI: m.URI},
				})
			}
		}
	}
	return out
}

const newsRecordSeparator = "%%%"

// ParseNewsFeed decodes the provider's flat delimited text into news items.
// Malformed or partial records are tolerated; a record without a non-empty
// summary is discarded.
func ParseNewsFeed(text string) []domain.NewsItem {
	var items []domain.NewsItem
	for _, record := range strings.Split(text, newsRecordSeparator) {
		item := domain.NewsItem{}
		for _, line := range strings.Split(record, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(line, "TITLE:"):
				item.Title = strings.TrimSpace(strings.TrimPrefix(line, "TITLE:"))
			case strings.HasPrefix(line, "SOURCE:"):
				item.Source = strings.TrimSpace(strings.TrimPrefix(line, "SOURCE:"))
			case strings.HasPrefix(line, "DATE:"):
				item.Date = strings.TrimSpace(strings.TrimPrefix(line, "DATE:"))
			case strings.HasPrefix(line, "CATEGORY:"):
				item.Category = domain.ParseNewsCategory(strings.TrimSpace(strings.TrimPrefix(line, "CATEGORY:")))
			case strings.HasPrefix(line, "SUMMARY:"):
				item.Summary = strings.TrimSpace(strings.TrimPrefix(line, "SUMMARY:"))
			}
		}
		if item.Summary == "" {
			continue
		}
		if item.Category == "" {
			item.Category = domain.NewsWellness
		}
		item.ID = uuid.New().String()
		item.ReadTime = estimateReadTime(item.Summary)
		items = append(items, item)
	}
	return items
}

// estimateReadTime approximates the length of the full story from the
// summary, matching the feed's "N min read" labels.
func estimateReadTime(summary string) string {
	words := len(strings.Fields(summary))
	minutes := 3 + words/25
	if minutes > 12 {
		minutes = 12
	}
	return fmt.Sprintf("%d min read", minutes)
}
