package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/util/ptr"

	"newsgate/internal/apierr"
	"newsgate/internal/logger"
	"newsgate/internal/models"
	"newsgate/internal/provider"
	"newsgate/internal/provider/providertest"
	"newsgate/internal/validator"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func rawArticle(source string) models.ProviderArticle {
	return models.ProviderArticle{
		Source:      models.ProviderSourceRef{Name: source},
		Title:       "Headline from " + source,
		URL:         "https://example.com/" + source,
		PublishedAt: "2024-03-01T10:00:00Z",
	}
}

func newTestService(p provider.Provider, logs *bytes.Buffer) *Service {
	opts := []Option{WithClock(func() time.Time { return fixedNow })}
	if logs != nil {
		opts = append(opts, WithLogger(logger.New("debug", "text", logs)))
	}

	return NewService(p, opts...)
}

func asAPIError(t *testing.T, err error) *apierr.Error {
	t.Helper()

	var classified *apierr.Error
	require.ErrorAs(t, err, &classified)

	return classified
}

func TestHeadlines_MergesDefaultLanguage(t *testing.T) {
	var got models.AdapterArguments

	p := &providertest.Mock{
		TopHeadlinesFunc: func(_ context.Context, args models.AdapterArguments) ([]models.ProviderArticle, error) {
			got = args
			return []models.ProviderArticle{rawArticle("CNN")}, nil
		},
	}

	resp, err := newTestService(p, nil).Headlines(context.Background(), url.Values{
		"category": {"technology"},
		"country":  {"us"},
	})
	require.NoError(t, err)

	assert.Equal(t, "en", got.Language)
	assert.Equal(t, models.CategoryTechnology, got.Category)
	assert.Equal(t, "us", got.Country)

	require.Len(t, resp.Articles, 1)
	assert.Equal(t, "cnn", resp.Articles[0].Category)
	assert.Equal(t, fixedNow.UnixMilli(), resp.Timestamp.UnixMilli())
}

func TestHeadlines_IgnoresLanguageParameter(t *testing.T) {
	var got models.AdapterArguments

	p := &providertest.Mock{
		TopHeadlinesFunc: func(_ context.Context, args models.AdapterArguments) ([]models.ProviderArticle, error) {
			got = args
			return []models.ProviderArticle{}, nil
		},
	}

	// Headlines has no language parameter; an unknown key is ignored.
	_, err := newTestService(p, nil).Headlines(context.Background(), url.Values{"language": {"fr"}})
	require.NoError(t, err)
	assert.Equal(t, "en", got.Language)
}

func TestSearch_ZonelessDatesReachAdapter(t *testing.T) {
	var got models.AdapterArguments

	p := &providertest.Mock{
		EverythingFunc: func(_ context.Context, args models.AdapterArguments) ([]models.ProviderArticle, error) {
			got = args
			return []models.ProviderArticle{}, nil
		},
	}

	_, err := newTestService(p, nil).Search(context.Background(), url.Values{
		"q":    {"climate"},
		"from": {"2024-03-01T10:00:00"},
		"to":   {"2024-03-02"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T10:00:00", got.From)
	assert.Equal(t, "2024-03-02", got.To)
}

func TestSources_EmptyCodeRejectedBeforeAdapter(t *testing.T) {
	called := false

	p := &providertest.Mock{
		SourcesFunc: func(context.Context, models.AdapterArguments) ([]models.ProviderSource, error) {
			called = true
			return nil, nil
		},
	}

	_, err := newTestService(p, nil).Sources(context.Background(), url.Values{"country": {""}, "category": {""}})

	classified := asAPIError(t, err)
	assert.Equal(t, apierr.KindValidation, classified.Kind)
	require.Len(t, classified.Violations, 2)
	assert.Equal(t, validator.ParamCategory, classified.Violations[0].Field)
	assert.Equal(t, validator.ParamCountry, classified.Violations[1].Field)
	assert.False(t, called)
}

func TestSearch_PageSizeRejectedBeforeAdapter(t *testing.T) {
	called := false

	p := &providertest.Mock{
		EverythingFunc: func(context.Context, models.AdapterArguments) ([]models.ProviderArticle, error) {
			called = true
			return nil, nil
		},
	}

	_, err := newTestService(p, nil).Search(context.Background(), url.Values{"q": {"ai"}, "pageSize": {"150"}})

	classified := asAPIError(t, err)
	assert.Equal(t, apierr.KindValidation, classified.Kind)
	assert.Equal(t, 400, classified.Status())
	require.Len(t, classified.Violations, 1)
	assert.Equal(t, validator.ParamPageSize, classified.Violations[0].Field)
	assert.False(t, called, "adapter must not be called for an invalid query")
}

func TestSearch_PageSizeBounds(t *testing.T) {
	calls := 0

	p := &providertest.Mock{
		EverythingFunc: func(context.Context, models.AdapterArguments) ([]models.ProviderArticle, error) {
			calls++
			return []models.ProviderArticle{}, nil
		},
	}

	svc := newTestService(p, nil)

	for _, size := range []string{"1", "100"} {
		_, err := svc.Search(context.Background(), url.Values{"pageSize": {size}})
		require.NoError(t, err, "pageSize=%s", size)
	}

	for _, size := range []string{"0", "101"} {
		_, err := svc.Search(context.Background(), url.Values{"pageSize": {size}})
		assert.Equal(t, apierr.KindValidation, asAPIError(t, err).Kind, "pageSize=%s", size)
	}

	assert.Equal(t, 2, calls)
}

func TestSearch_PassesArgumentsThrough(t *testing.T) {
	var got models.AdapterArguments

	p := &providertest.Mock{
		EverythingFunc: func(_ context.Context, args models.AdapterArguments) ([]models.ProviderArticle, error) {
			got = args
			return nil, nil
		},
	}

	resp, err := newTestService(p, nil).Search(context.Background(), url.Values{
		"q":        {"bitcoin"},
		"sortBy":   {"popularity"},
		"page":     {"2"},
		"pageSize": {"10"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.AdapterArguments{Q: "bitcoin", SortBy: "popularity", Page: 2, PageSize: 10}, got)
	assert.NotNil(t, resp.Articles)
	assert.Empty(t, resp.Articles)
}

func TestAuthFailureIsGeneric(t *testing.T) {
	const secret = "sk-live-abcdef"

	var logs bytes.Buffer

	p := &providertest.Mock{
		TopHeadlinesFunc: func(context.Context, models.AdapterArguments) ([]models.ProviderArticle, error) {
			return nil, fmt.Errorf("%w: status 401: apiKeyInvalid: key %s rejected", provider.ErrUnauthorized, secret)
		},
	}

	ctx := WithRequestID(context.Background(), "req-1")
	_, err := newTestService(p, &logs).Headlines(ctx, url.Values{})

	classified := asAPIError(t, err)
	assert.Equal(t, apierr.KindUpstreamAuth, classified.Kind)
	assert.Equal(t, 401, classified.Status())
	assert.NotContains(t, classified.Message, secret)
	assert.NotContains(t, classified.Message, "apiKeyInvalid")
	assert.Contains(t, logs.String(), "request_id=req-1")
}

func TestAdapterFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apierr.Kind
	}{
		{"rate limited", fmt.Errorf("%w: 429", provider.ErrRateLimited), apierr.KindUpstreamRateLimit},
		{"upstream", fmt.Errorf("%w: 500", provider.ErrUpstream), apierr.KindUpstream},
		{"unwrapped adapter error", errors.New("socket closed"), apierr.KindUpstream},
		{"cancelled", context.Canceled, apierr.KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &providertest.Mock{
				EverythingFunc: func(context.Context, models.AdapterArguments) ([]models.ProviderArticle, error) {
					return nil, tt.err
				},
				SourcesFunc: func(context.Context, models.AdapterArguments) ([]models.ProviderSource, error) {
					return nil, tt.err
				},
			}

			svc := newTestService(p, nil)

			_, err := svc.Search(context.Background(), url.Values{})
			assert.Equal(t, tt.kind, asAPIError(t, err).Kind)

			_, err = svc.Sources(context.Background(), url.Values{})
			assert.Equal(t, tt.kind, asAPIError(t, err).Kind)
			assert.Equal(t, "Failed to fetch sources", asAPIError(t, err).Message)
		})
	}
}

func TestMalformedDateIsInternal(t *testing.T) {
	bad := rawArticle("BBC News")
	bad.PublishedAt = "last tuesday"

	p := &providertest.Mock{
		TopHeadlinesFunc: func(context.Context, models.AdapterArguments) ([]models.ProviderArticle, error) {
			return []models.ProviderArticle{rawArticle("CNN"), bad}, nil
		},
	}

	resp, err := newTestService(p, nil).Headlines(context.Background(), url.Values{})
	assert.Nil(t, resp)

	classified := asAPIError(t, err)
	assert.Equal(t, apierr.KindInternal, classified.Kind)
	assert.Equal(t, "Failed to fetch headlines", classified.Message)
}

func TestSources_Normalized(t *testing.T) {
	var got models.AdapterArguments

	p := &providertest.Mock{
		SourcesFunc: func(_ context.Context, args models.AdapterArguments) ([]models.ProviderSource, error) {
			got = args
			return []models.ProviderSource{{
				ID: "abc-news", Name: "ABC News", Description: "d", URL: "https://abcnews.go.com",
				Category: "general", Language: "en", Country: "us",
			}}, nil
		},
	}

	resp, err := newTestService(p, nil).Sources(context.Background(), url.Values{"category": {"general"}, "country": {"us"}})
	require.NoError(t, err)

	assert.Equal(t, models.AdapterArguments{Category: models.CategoryGeneral, Country: "us"}, got)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "ABC News", resp.Sources[0].Name)
}

func TestNullsSurviveTheWholePipeline(t *testing.T) {
	withImage := rawArticle("Reuters")
	withImage.Description = ptr.Ptr("Summary")
	withImage.URLToImage = ptr.Ptr("https://img.example.com/1.jpg")

	p := &providertest.Mock{
		EverythingFunc: func(context.Context, models.AdapterArguments) ([]models.ProviderArticle, error) {
			return []models.ProviderArticle{rawArticle("Reuters"), withImage}, nil
		},
	}

	resp, err := newTestService(p, nil).Search(context.Background(), url.Values{"q": {"x"}})
	require.NoError(t, err)
	require.Len(t, resp.Articles, 2)

	assert.Nil(t, resp.Articles[0].Description)
	assert.Nil(t, resp.Articles[0].ImageURL)
	assert.Equal(t, "Summary", *resp.Articles[1].Description)
	assert.Equal(t, "2024-03-01T10:00:00.000Z", resp.Articles[1].PublishedAt)
}

func TestRun_Dispatch(t *testing.T) {
	svc := newTestService(&providertest.Mock{}, nil)

	out, err := svc.Run(context.Background(), models.OpSources, url.Values{})
	require.NoError(t, err)
	assert.IsType(t, &models.SourcesResponse{}, out)

	out, err = svc.Run(context.Background(), models.OpHeadlines, url.Values{})
	require.NoError(t, err)
	assert.IsType(t, &models.ArticlesResponse{}, out)

	_, err = svc.Run(context.Background(), "archive", url.Values{})
	assert.Equal(t, apierr.KindInternal, asAPIError(t, err).Kind)
}
