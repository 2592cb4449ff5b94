// Package provider defines the contract of an upstream news provider.
package provider

import (
	"context"
	"errors"

	"newsgate/internal/models"
)

// Provider failure classes. Adapters wrap one of these with %w so callers can
// classify the failure without knowing the transport.
var (
	ErrUnauthorized = errors.New("provider rejected credentials")
	ErrRateLimited  = errors.New("provider rate limit exceeded")
	ErrUpstream     = errors.New("provider request failed")
)

// Provider fetches raw records from an upstream news service.
type Provider interface {
	// Everything runs a full-text search across all articles.
	Everything(ctx context.Context, args models.AdapterArguments) ([]models.ProviderArticle, error)

	// TopHeadlines returns the current breaking headlines.
	TopHeadlines(ctx context.Context, args models.AdapterArguments) ([]models.ProviderArticle, error)

	// Sources lists the publishers the provider knows about.
	Sources(ctx context.Context, args models.AdapterArguments) ([]models.ProviderSource, error)
}
