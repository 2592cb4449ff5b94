package normalizer

import (
	"errors"
	"fmt"

	"newsgate/internal/models"
	"newsgate/pkg/utils"
)

// Shape errors for canonical records.
var (
	ErrInvalidArticleURL = errors.New("article url is not an absolute http(s) URL")
	ErrInvalidImageURL   = errors.New("article imageUrl is not an absolute http(s) URL")
	ErrMissingSourceID   = errors.New("source id is empty")
	ErrMissingSourceName = errors.New("source name is empty")
	ErrInvalidSourceURL  = errors.New("source url is not an absolute http(s) URL")
)

// Validator checks canonical records against the output schema.
type Validator struct {
	http *utils.HTTPHelper
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{http: utils.NewHTTPHelper("")}
}

// Article checks the shape of a canonical article.
func (v *Validator) Article(a models.Article) error {
	if !v.http.IsValidURL(a.URL) {
		return fmt.Errorf("%w: %q", ErrInvalidArticleURL, a.URL)
	}

	if a.ImageURL != nil && !v.http.IsValidURL(*a.ImageURL) {
		return fmt.Errorf("%w: %q", ErrInvalidImageURL, *a.ImageURL)
	}

	return nil
}

// Source checks the shape of a canonical source.
func (v *Validator) Source(s models.Source) error {
	if s.ID == "" {
		return ErrMissingSourceID
	}

	if s.Name == "" {
		return ErrMissingSourceName
	}

	if !v.http.IsValidURL(s.URL) {
		return fmt.Errorf("%w: %q", ErrInvalidSourceURL, s.URL)
	}

	return nil
}
