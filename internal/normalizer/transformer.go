package normalizer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"newsgate/internal/models"
)

// ErrMalformedDate is returned when a provider date cannot be parsed.
var ErrMalformedDate = errors.New("malformed publishedAt")

// PublishedAtLayout is the canonical form of Article.PublishedAt.
const PublishedAtLayout = "2006-01-02T15:04:05.000Z"

// Transformer maps provider records onto the canonical schema.
type Transformer struct{}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{}
}

// Article converts a provider article. Nullable fields keep their nil-ness.
func (t *Transformer) Article(raw models.ProviderArticle) (models.Article, error) {
	published, err := CanonicalPublishedAt(raw.PublishedAt)
	if err != nil {
		return models.Article{}, err
	}

	return models.Article{
		Title:       raw.Title,
		URL:         raw.URL,
		Description: raw.Description,
		ImageURL:    raw.URLToImage,
		PublishedAt: published,
		Category:    strings.ToLower(raw.Source.Name),
	}, nil
}

// Source converts a provider source. Fields pass through unchanged.
func (t *Transformer) Source(raw models.ProviderSource) models.Source {
	return models.Source{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		URL:         raw.URL,
		Category:    raw.Category,
		Language:    raw.Language,
		Country:     raw.Country,
	}
}

// CanonicalPublishedAt re-emits raw as a UTC timestamp with millisecond
// precision. Dates without a zone are read as UTC.
func CanonicalPublishedAt(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	// time.Parse accepts fractional seconds after the seconds field even
	// when the layout omits them.
	for _, layout := range models.DateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC().Format(PublishedAtLayout), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrMalformedDate, raw)
}
