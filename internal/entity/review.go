package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a single customer review collected from an external source.
type Review struct {
	ID             uuid.UUID  `json:"id"`
	CompanyID      uuid.UUID  `json:"company_id"`
	Source         string     `json:"source"`
	AuthorName     *string    `json:"author_name,omitempty"`
	AuthorLocation *string    `json:"author_location,omitempty"`
	Rating         *float64   `json:"rating,omitempty"`
	Content        *string    `json:"content,omitempty"`
	SentimentTags  []string   `json:"sentiment_tags,omitempty"`
	ReviewDate     *time.Time `json:"review_date,omitempty"`
	SourceURL      *string    `json:"source_url,omitempty"`
	IsFeatured     bool       `json:"is_featured"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ReviewSummary aggregates the reviews of a company.
type ReviewSummary struct {
	CompanyID        uuid.UUID  `json:"company_id"`
	TotalReviews     int        `json:"total_reviews"`
	AverageRating    *float64   `json:"average_rating,omitempty"`
	GoogleRating     *float64   `json:"google_rating,omitempty"`
	FacebookRating   *float64   `json:"facebook_rating,omitempty"`
	TopSentimentTags []string   `json:"top_sentiment_tags,omitempty"`
	LastScrapedAt    *time.Time `json:"last_scraped_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

var sentimentLabels = map[string]string{
	"profesionalism":  "Profesionalism",
	"raspuns_rapid":   "Răspuns Rapid",
	"empatie":         "Empatie",
	"preturi_corecte": "Prețuri Corecte",
	"comunicare":      "Comunicare Bună",
	"punctualitate":   "Punctualitate",
	"respect":         "Respect",
	"calitate":        "Calitate Servicii",
	"disponibilitate": "Disponibilitate",
	"curatenie":       "Curățenie",
}

// SentimentLabel returns the Romanian label of a sentiment tag and whether it is known.
func SentimentLabel(tag string) (string, bool) {
	label, ok := sentimentLabels[tag]
	return label, ok
}
