// Package providertest provides a configurable provider for tests.
package providertest

import (
	"context"

	"newsgate/internal/models"
	"newsgate/internal/provider"
)

// Mock is a provider.Provider whose behavior is set per test. A nil func
// returns no records and no error.
type Mock struct {
	EverythingFunc   func(ctx context.Context, args models.AdapterArguments) ([]models.ProviderArticle, error)
	TopHeadlinesFunc func(ctx context.Context, args models.AdapterArguments) ([]models.ProviderArticle, error)
	SourcesFunc      func(ctx context.Context, args models.AdapterArguments) ([]models.ProviderSource, error)
}

var _ provider.Provider = (*Mock)(nil)

// Everything implements provider.Provider.
func (m *Mock) Everything(ctx context.Context, args models.AdapterArguments) ([]models.ProviderArticle, error) {
	if m.EverythingFunc != nil {
		return m.EverythingFunc(ctx, args)
	}

	return nil, nil
}

// TopHeadlines implements provider.Provider.
func (m *Mock) TopHeadlines(ctx context.Context, args models.AdapterArguments) ([]models.ProviderArticle, error) {
	if m.TopHeadlinesFunc != nil {
		return m.TopHeadlinesFunc(ctx, args)
	}

	return nil, nil
}

// Sources implements provider.Provider.
func (m *Mock) Sources(ctx context.Context, args models.AdapterArguments) ([]models.ProviderSource, error) {
	if m.SourcesFunc != nil {
		return m.SourcesFunc(ctx, args)
	}

	return nil, nil
}
