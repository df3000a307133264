package domain

// NewsCategory classifies a feed item.
type NewsCategory string

const (
	NewsResearch  NewsCategory = "Research"
	NewsCommunity NewsCategory = "Community"
	NewsWellness  NewsCategory = "Wellness"
	NewsPolicy    NewsCategory = "Policy"
)

// ParseNewsCategory maps free text from the feed onto a known category,
// defaulting to Wellness.
func ParseNewsCategory(s string) NewsCategory {
	switch NewsCategory(s) {
	case NewsResearch, NewsCommunity, NewsPolicy:
		return NewsCategory(s)
	default:
		return NewsWellness
	}
}

// NewsItem is one entry of the mental-health news feed.
type NewsItem struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Summary  string       `json:"summary"`
	Source   string       `json:"source"`
	Date     string       `json:"date"`
	Category NewsCategory `json:"category"`
	ReadTime string       `json:"read_time"`
	URL      string       `json:"url,omitempty"`
}

// Article is the best-effort full body of a news item.
type Article struct {
	HTML      string `json:"html"`
	SourceURL string `json:"source_url,omitempty"`
}

// Resource is a crisis-support contact shown alongside the chat.
type Resource struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	ContactDisplay string `json:"contact_display"`
	ActionValue    string `json:"action_value"`
	Type           string `json:"type"` // hotline, text, website
}

// CrisisResources is the fixed catalog served to every client.
var CrisisResources = []Resource{
	{
		Name:           "988 Suicide & Crisis Lifeline (US)",
		Description:    "24/7, free and confidential support.",
		ContactDisplay: "Call 988",
		ActionValue:    "988",
		Type:           "hotline",
	},
	{
		Name:           "Crisis Text Line",
		Description:    "Text HOME to connect with a Counselor.",
		ContactDisplay: "Text HOME to 741741",
		ActionValue:    "741741",
		Type:           "text",
	},
	{
		Name:           "Samaritans (UK)",
		Description:    "Whatever you're going through, call us.",
		ContactDisplay: "Call 116 123",
		ActionValue:    "116123",
		Type:           "hotline",
	},
	{
		Name:           "Canada Suicide Prevention",
		Description:    "24/7 support across Canada.",
		ContactDisplay: "1-833-456-4566",
		ActionValue:    "18334564566",
		Type:           "hotline",
	},
}
