// Package merger builds upstream adapter arguments from validated options.
package merger

import (
	"errors"
	"fmt"

	"newsgate/internal/models"
)

// ErrUnsupportedOptions is returned by Merge for an option set it does not know.
var ErrUnsupportedOptions = errors.New("unsupported option set")

// DefaultHeadlinesLanguage is applied to headlines unless the caller supplies a language.
const DefaultHeadlinesLanguage = "en"

// Merge builds the adapter arguments for opts.
//
// Headlines are layered as default < caller fields < validated category.
// Search and sources pass through without defaults.
func Merge(opts models.Options) (models.AdapterArguments, error) {
	switch o := opts.(type) {
	case models.SearchOptions:
		return Search(o), nil
	case models.HeadlinesOptions:
		return Headlines(o), nil
	case models.SourcesOptions:
		return Sources(o), nil
	}

	return models.AdapterArguments{}, fmt.Errorf("%w: %T", ErrUnsupportedOptions, opts)
}

// Search returns the arguments of a full-text search.
func Search(o models.SearchOptions) models.AdapterArguments {
	return fromSearch(o)
}

// Headlines returns the arguments of a top-headlines request.
func Headlines(o models.HeadlinesOptions) models.AdapterArguments {
	args := models.AdapterArguments{Language: DefaultHeadlinesLanguage}
	overlay(&args, fromHeadlines(o))

	if o.Category != "" {
		args.Category = o.Category
	}

	return args
}

// Sources returns the arguments of a source listing.
func Sources(o models.SourcesOptions) models.AdapterArguments {
	return fromSources(o)
}

func fromSearch(o models.SearchOptions) models.AdapterArguments {
	return models.AdapterArguments{
		Q:              o.Q,
		SearchIn:       o.SearchIn,
		Sources:        o.Sources,
		Domains:        o.Domains,
		ExcludeDomains: o.ExcludeDomains,
		From:           o.From,
		To:             o.To,
		Language:       o.Language,
		SortBy:         o.SortBy,
		Page:           o.Page,
		PageSize:       o.PageSize,
	}
}

func fromHeadlines(o models.HeadlinesOptions) models.AdapterArguments {
	return models.AdapterArguments{
		Q:        o.Q,
		Sources:  o.Sources,
		Category: o.Category,
		Country:  o.Country,
		Page:     o.Page,
		PageSize: o.PageSize,
	}
}

func fromSources(o models.SourcesOptions) models.AdapterArguments {
	return models.AdapterArguments{
		Category: o.Category,
		Language: o.Language,
		Country:  o.Country,
	}
}

// overlay copies every supplied (non-zero) field of src over dst.
func overlay(dst *models.AdapterArguments, src models.AdapterArguments) {
	set := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}

	set(&dst.Q, src.Q)
	set(&dst.SearchIn, src.SearchIn)
	set(&dst.Sources, src.Sources)
	set(&dst.Domains, src.Domains)
	set(&dst.ExcludeDomains, src.ExcludeDomains)
	set(&dst.From, src.From)
	set(&dst.To, src.To)
	set(&dst.Language, src.Language)
	set(&dst.SortBy, src.SortBy)
	set(&dst.Country, src.Country)

	if src.Category != "" {
		dst.Category = src.Category
	}

	if src.Page != 0 {
		dst.Page = src.Page
	}

	if src.PageSize != 0 {
		dst.PageSize = src.PageSize
	}
}
