// Package pipeline runs a query through validation, option merging, the
// provider call and normalization, classifying any failure on the way out.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"newsgate/internal/apierr"
	"newsgate/internal/logger"
	"newsgate/internal/merger"
	"newsgate/internal/models"
	"newsgate/internal/normalizer"
	"newsgate/internal/provider"
	"newsgate/internal/validator"
)

// Service serves the three read operations. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	provider  provider.Provider
	processor *normalizer.Processor
	logger    *logger.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the clock used for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(log *logger.Logger) Option {
	return func(s *Service) { s.logger = log }
}

// NewService creates a service over p.
func NewService(p provider.Provider, opts ...Option) *Service {
	s := &Service{
		provider:  p,
		processor: normalizer.NewProcessor(),
		logger:    logger.Discard(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Search runs a full-text search. Errors are always *apierr.Error.
func (s *Service) Search(ctx context.Context, query url.Values) (*models.ArticlesResponse, error) {
	args, err := prepare(models.OpSearch, query)
	if err != nil {
		return nil, s.fail(ctx, models.OpSearch, err)
	}

	articles, err := s.articles(ctx, s.provider.Everything, args)
	if err != nil {
		return nil, s.fail(ctx, models.OpSearch, err)
	}

	return models.NewArticlesResponse(articles, s.now()), nil
}

// Headlines returns top headlines. Errors are always *apierr.Error.
func (s *Service) Headlines(ctx context.Context, query url.Values) (*models.ArticlesResponse, error) {
	args, err := prepare(models.OpHeadlines, query)
	if err != nil {
		return nil, s.fail(ctx, models.OpHeadlines, err)
	}

	articles, err := s.articles(ctx, s.provider.TopHeadlines, args)
	if err != nil {
		return nil, s.fail(ctx, models.OpHeadlines, err)
	}

	return models.NewArticlesResponse(articles, s.now()), nil
}

// Sources lists publishers. Errors are always *apierr.Error.
func (s *Service) Sources(ctx context.Context, query url.Values) (*models.SourcesResponse, error) {
	args, err := prepare(models.OpSources, query)
	if err != nil {
		return nil, s.fail(ctx, models.OpSources, err)
	}

	raw, err := s.provider.Sources(ctx, args)
	if err != nil {
		return nil, s.fail(ctx, models.OpSources, asUpstream(err))
	}

	sources, err := s.processor.Sources(raw)
	if err != nil {
		return nil, s.fail(ctx, models.OpSources, err)
	}

	return models.NewSourcesResponse(sources, s.now()), nil
}

// Run dispatches op. The result is *models.ArticlesResponse or
// *models.SourcesResponse depending on op.
func (s *Service) Run(ctx context.Context, op models.Operation, query url.Values) (any, error) {
	switch op {
	case models.OpSearch:
		return s.Search(ctx, query)
	case models.OpHeadlines:
		return s.Headlines(ctx, query)
	case models.OpSources:
		return s.Sources(ctx, query)
	}

	return nil, s.fail(ctx, op, fmt.Errorf("%w: %q", validator.ErrUnknownOperation, op))
}

// prepare validates query for op and merges it into adapter arguments.
func prepare(op models.Operation, query url.Values) (models.AdapterArguments, error) {
	opts, err := validator.Validate(op, query)
	if err != nil {
		return models.AdapterArguments{}, err
	}

	return merger.Merge(opts)
}

type articleFetcher func(context.Context, models.AdapterArguments) ([]models.ProviderArticle, error)

func (s *Service) articles(ctx context.Context, fetch articleFetcher, args models.AdapterArguments) ([]models.Article, error) {
	raw, err := fetch(ctx, args)
	if err != nil {
		return nil, asUpstream(err)
	}

	return s.processor.Articles(raw)
}

// asUpstream makes sure an adapter failure is classified as at least an
// upstream error, whatever the adapter wrapped.
func asUpstream(err error) error {
	if errors.Is(err, provider.ErrUnauthorized) ||
		errors.Is(err, provider.ErrRateLimited) ||
		errors.Is(err, provider.ErrUpstream) {
		return err
	}

	return fmt.Errorf("%w: %w", provider.ErrUpstream, err)
}

func (s *Service) fail(ctx context.Context, op models.Operation, err error) *apierr.Error {
	classified := apierr.Classify(op, err)

	attrs := []any{"operation", string(op), "kind", classified.Kind.String(), "error", err}
	if id := RequestID(ctx); id != "" {
		attrs = append(attrs, "request_id", id)
	}

	if classified.Kind == apierr.KindValidation {
		s.logger.Debug("Rejected query", attrs...)
	} else {
		s.logger.Error("Request failed", attrs...)
	}

	return classified
}
