package model

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryEarnings    Category = "earnings"
	CategoryAnalyst     Category = "analyst"
	CategoryPartnership Category = "partnership"
	CategoryRegulatory  Category = "regulatory"
	CategoryMarket      Category = "market"
	CategoryProduct     Category = "product"
	CategoryManagement  Category = "management"
	CategoryCorporate   Category = "corporate"
)

var categoryKeywords = []struct {
	category Category
	words    []string
}{
	{CategoryEarnings, []string{"earnings", "revenue", "quarter", "q1", "q2", "q3", "q4", "eps", "guidance", "profit"}},
	{CategoryAnalyst, []string{"analyst", "upgrade", "downgrade", "price target", "rating", "outperform", "underperform"}},
	{CategoryPartnership, []string{"partner", "partnership", "collaborat", "alliance", "joint venture"}},
	{CategoryRegulatory, []string{"sec ", "regulator", "lawsuit", "antitrust", "probe", "fined", "court", "ftc", "doj"}},
	{CategoryProduct, []string{"launch", "product", "unveil", "release", "device", "model"}},
	{CategoryManagement, []string{"ceo", "cfo", "executive", "resign", "appoint", "board"}},
	{CategoryCorporate, []string{"acquisition", "acquire", "merger", "buyback", "dividend", "split", "spin-off"}},
}

// InferCategory guesses a category from headline text, defaulting to market.
func InferCategory(text string) Category {
	lower := strings.ToLower(text)
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(lower, w) {
				return ck.category
			}
		}
	}
	return CategoryMarket
}

type NewsRecord struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	SourceName     string         `json:"source_name"`
	Publisher      string         `json:"publisher,omitempty"`
	PublishedAt    time.Time      `json:"published_at"`
	URL            string         `json:"url"`
	Symbols        []string       `json:"symbols,omitempty"`
	Sentiment      *float64       `json:"sentiment,omitempty"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	Category       Category       `json:"category"`
	Confidence     float64        `json:"confidence"`
	Provenance     Provenance     `json:"provenance"`
}

// Text is the string the text scorer reads.
func (r NewsRecord) Text() string {
	if r.Description == "" {
		return r.Title
	}
	return r.Title + " " + r.Description
}
