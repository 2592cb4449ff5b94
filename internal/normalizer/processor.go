// Package normalizer maps raw provider responses into the canonical schema.
package normalizer

import (
	"errors"
	"fmt"

	"newsgate/internal/models"
)

// ErrNonConforming marks a provider record that could not be normalized.
var ErrNonConforming = errors.New("provider returned a non-conforming record")

// Processor transforms and validates whole provider responses.
// A single bad record fails the batch; no partial results are returned.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// Articles normalizes every provider article.
func (p *Processor) Articles(raw []models.ProviderArticle) ([]models.Article, error) {
	out := make([]models.Article, 0, len(raw))

	for i, r := range raw {
		a, err := p.transformer.Article(r)
		if err != nil {
			return nil, fmt.Errorf("%w: article %d: %w", ErrNonConforming, i, err)
		}

		if err := p.validator.Article(a); err != nil {
			return nil, fmt.Errorf("%w: article %d: %w", ErrNonConforming, i, err)
		}

		out = append(out, a)
	}

	return out, nil
}

// Sources normalizes every provider source.
func (p *Processor) Sources(raw []models.ProviderSource) ([]models.Source, error) {
	out := make([]models.Source, 0, len(raw))

	for i, r := range raw {
		s := p.transformer.Source(r)

		if err := p.validator.Source(s); err != nil {
			return nil, fmt.Errorf("%w: source %d: %w", ErrNonConforming, i, err)
		}

		out = append(out, s)
	}

	return out, nil
}
